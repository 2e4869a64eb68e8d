package controllers

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MixinNetwork/homes.one/durable"
	"github.com/MixinNetwork/homes.one/listing"
	"github.com/MixinNetwork/homes.one/middlewares"
	"github.com/MixinNetwork/homes.one/models"
	"github.com/MixinNetwork/homes.one/notifier"
	"github.com/dimfeld/httptreemux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
)

type testResponse struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Status      int    `json:"status"`
		Code        int    `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func setupTestServer() (*httptest.Server, context.CancelFunc) {
	db := durable.NewDatabase(durable.Latency{Scale: 0})
	if err := models.Seed(db, "", ""); err != nil {
		log.Panicln(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	hub := notifier.NewHub()
	go hub.Run(ctx)
	registry := listing.NewRegistry(models.NewPropertyService(db), models.NewSavedPropertyService(db), nil)

	router := httptreemux.New()
	RegisterHanders(router)
	RegisterRoutes(router, registry, hub)
	handler := middlewares.Limit(router)
	handler = middlewares.Constraint(handler)
	handler = middlewares.Context(handler, db, nil, render.New())
	handler = middlewares.Stats(handler, "http", false, "test")
	handler = middlewares.Log(handler, nil, "http")
	return httptest.NewServer(handler), cancel
}

func doTestRequest(t *testing.T, server *httptest.Server, method, path, body string, data interface{}) *testResponse {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.Nil(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.Nil(t, err)
	defer resp.Body.Close()
	var out testResponse
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&out))
	if data != nil && out.Error == nil {
		require.Nil(t, json.Unmarshal(out.Data, data))
	}
	return &out
}

type testListing struct {
	ListingId  string `json:"listing_id"`
	State      string `json:"state"`
	Showing    int    `json:"showing"`
	Total      int    `json:"total"`
	Summary    string `json:"summary"`
	SavedCount int    `json:"saved_count"`
	Properties []struct {
		PropertyId     string `json:"property_id"`
		FormattedPrice string `json:"formatted_price"`
		Saved          bool   `json:"saved"`
	} `json:"properties"`
	FiltersApplied bool `json:"filters_applied"`
}

func TestPropertiesEndpoints(t *testing.T) {
	assert := assert.New(t)
	server, cancel := setupTestServer()
	defer cancel()
	defer server.Close()

	var properties []map[string]interface{}
	resp := doTestRequest(t, server, "GET", "/properties", "", &properties)
	assert.Nil(resp.Error)
	assert.Len(properties, 8)
	assert.Equal("$850,000", properties[0]["formatted_price"])
	assert.Equal("3,200", properties[0]["formatted_square_feet"])

	resp = doTestRequest(t, server, "GET", "/properties/nonexistent", "", nil)
	require.NotNil(t, resp.Error)
	assert.Equal(20101, resp.Error.Code)
	assert.Equal(http.StatusAccepted, resp.Error.Status)

	var created map[string]interface{}
	resp = doTestRequest(t, server, "POST", "/properties", `{"title":"Loft","price":410000,"bedrooms":1,"bathrooms":1,"property_type":"Loft","square_feet":900}`, &created)
	assert.Nil(resp.Error)
	id := created["property_id"].(string)
	assert.NotEmpty(id)

	var updated map[string]interface{}
	resp = doTestRequest(t, server, "POST", "/properties/"+id, `{"price":399000}`, &updated)
	assert.Nil(resp.Error)
	assert.Equal(399000.0, updated["price"])
	assert.Equal("Loft", updated["title"])

	var options map[string]interface{}
	resp = doTestRequest(t, server, "GET", "/property_types", "", &options)
	assert.Nil(resp.Error)
	assert.Equal([]interface{}{"Apartment", "Condo", "House", "Loft", "Townhouse"}, options["property_types"])

	resp = doTestRequest(t, server, "DELETE", "/properties/"+id, "", nil)
	assert.Nil(resp.Error)
	resp = doTestRequest(t, server, "DELETE", "/properties/"+id, "", nil)
	require.NotNil(t, resp.Error)
	assert.Equal(20101, resp.Error.Code)

	resp = doTestRequest(t, server, "POST", "/properties", `{"title":`, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(http.StatusBadRequest, resp.Error.Code)

	resp = doTestRequest(t, server, "GET", "/unknown", "", nil)
	require.NotNil(t, resp.Error)
	assert.Equal(http.StatusNotFound, resp.Error.Code)
}

func TestSavedPropertiesEndpoints(t *testing.T) {
	assert := assert.New(t)
	server, cancel := setupTestServer()
	defer cancel()
	defer server.Close()

	var saved []map[string]interface{}
	resp := doTestRequest(t, server, "GET", "/saved_properties", "", &saved)
	assert.Nil(resp.Error)
	assert.Len(saved, 2)

	resp = doTestRequest(t, server, "POST", "/saved_properties", `{"property_id":"5b0d8f3e-2c1a-4c7e-9d4f-1a2b3c4d5e02"}`, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(20103, resp.Error.Code)

	var created map[string]interface{}
	resp = doTestRequest(t, server, "POST", "/saved_properties", `{"property_id":"5b0d8f3e-2c1a-4c7e-9d4f-1a2b3c4d5e05"}`, &created)
	assert.Nil(resp.Error)
	id := created["saved_property_id"].(string)

	var found map[string]interface{}
	resp = doTestRequest(t, server, "GET", "/saved_properties/"+id, "", &found)
	assert.Nil(resp.Error)
	assert.Equal(created, found)

	resp = doTestRequest(t, server, "POST", "/saved_properties/"+id, `{"saved_date":"2024-05-01T00:00:00Z"}`, &found)
	assert.Nil(resp.Error)
	assert.Equal("2024-05-01T00:00:00Z", found["saved_date"])

	resp = doTestRequest(t, server, "DELETE", "/saved_properties/"+id, "", nil)
	assert.Nil(resp.Error)
	resp = doTestRequest(t, server, "GET", "/saved_properties/nonexistent", "", nil)
	require.NotNil(t, resp.Error)
	assert.Equal(20102, resp.Error.Code)
}

func TestListingsEndpoints(t *testing.T) {
	assert := assert.New(t)
	server, cancel := setupTestServer()
	defer cancel()
	defer server.Close()

	var view testListing
	resp := doTestRequest(t, server, "POST", "/listings", "", &view)
	require.Nil(t, resp.Error)
	assert.Equal("ready", view.State)
	assert.Equal(8, view.Total)
	assert.Equal(8, view.Showing)
	assert.Equal("Showing 8 of 8 properties", view.Summary)
	assert.Equal(2, view.SavedCount)
	assert.False(view.FiltersApplied)
	assert.Equal("$850,000", view.Properties[0].FormattedPrice)
	assert.True(view.Properties[1].Saved)
	id := view.ListingId

	resp = doTestRequest(t, server, "POST", "/listings/"+id+"/filters", `{"location":"tx","bedrooms":"4"}`, &view)
	require.Nil(t, resp.Error)
	assert.Equal(2, view.Showing)
	assert.Equal(8, view.Total)
	assert.True(view.FiltersApplied)

	resp = doTestRequest(t, server, "POST", "/listings/"+id+"/filters", `{"price_range":[10,1]}`, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(10002, resp.Error.Code)

	resp = doTestRequest(t, server, "POST", "/listings/"+id+"/filters/clear", "", &view)
	require.Nil(t, resp.Error)
	assert.Equal(8, view.Showing)
	assert.False(view.FiltersApplied)

	propertyId := "5b0d8f3e-2c1a-4c7e-9d4f-1a2b3c4d5e01"
	var state map[string]interface{}
	resp = doTestRequest(t, server, "POST", "/listings/"+id+"/saved/"+propertyId, "", &state)
	require.Nil(t, resp.Error)
	assert.Equal(true, state["saved"])

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/listings/" + id + "/notifications"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.Nil(t, err)
	defer conn.Close()
	notification := readTestNotification(t, conn)
	assert.Equal("success", notification["severity"])
	assert.Equal("Property saved to favorites", notification["message"])

	resp = doTestRequest(t, server, "POST", "/listings/"+id+"/saved/"+propertyId, "", &state)
	require.Nil(t, resp.Error)
	assert.Equal(false, state["saved"])
	notification = readTestNotification(t, conn)
	assert.Equal("Property removed from favorites", notification["message"])

	resp = doTestRequest(t, server, "POST", "/listings/"+id+"/retry", "", nil)
	require.NotNil(t, resp.Error)
	assert.Equal(20105, resp.Error.Code)

	resp = doTestRequest(t, server, "DELETE", "/listings/"+id, "", nil)
	assert.Nil(resp.Error)
	resp = doTestRequest(t, server, "GET", "/listings/"+id, "", nil)
	require.NotNil(t, resp.Error)
	assert.Equal(20106, resp.Error.Code)
}

func readTestNotification(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	require.Nil(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, r, err := conn.NextReader()
	require.Nil(t, err)
	gz, err := gzip.NewReader(r)
	require.Nil(t, err)
	data, err := io.ReadAll(gz)
	require.Nil(t, err)
	var msg notifier.Message
	require.Nil(t, json.NewDecoder(bytes.NewReader(data)).Decode(&msg))
	require.Equal(t, notifier.ActionEmit, msg.Action)
	n, ok := msg.Data.(map[string]interface{})["notification"].(map[string]interface{})
	require.True(t, ok)
	return n
}
