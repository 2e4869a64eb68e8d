package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MixinNetwork/homes.one/models"
	"github.com/MixinNetwork/homes.one/session"
	"github.com/MixinNetwork/homes.one/views"
	"github.com/dimfeld/httptreemux"
)

type savedPropertiesImpl struct{}

type savedPropertyRequest struct {
	PropertyId string    `json:"property_id"`
	SavedDate  time.Time `json:"saved_date"`
}

func registerSavedProperties(router *httptreemux.TreeMux) {
	impl := &savedPropertiesImpl{}

	router.GET("/saved_properties", impl.index)
	router.POST("/saved_properties", impl.create)
	router.GET("/saved_properties/:id", impl.show)
	router.POST("/saved_properties/:id", impl.update)
	router.DELETE("/saved_properties/:id", impl.destroy)
}

func savedPropertyService(r *http.Request) *models.SavedPropertyService {
	return models.NewSavedPropertyService(session.Database(r.Context()))
}

func (impl *savedPropertiesImpl) index(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	saved, err := savedPropertyService(r).All(r.Context())
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderSavedProperties(w, r, saved)
}

func (impl *savedPropertiesImpl) create(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var body savedPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		views.RenderErrorResponse(w, r, session.BadRequestError(r.Context()))
		return
	}
	sp, err := savedPropertyService(r).Create(r.Context(), body.PropertyId, body.SavedDate)
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderSavedProperty(w, r, sp)
}

func (impl *savedPropertiesImpl) show(w http.ResponseWriter, r *http.Request, params map[string]string) {
	sp, err := savedPropertyService(r).Find(r.Context(), params["id"])
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderSavedProperty(w, r, sp)
}

func (impl *savedPropertiesImpl) update(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var body models.SavedPropertyPatch
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		views.RenderErrorResponse(w, r, session.BadRequestError(r.Context()))
		return
	}
	sp, err := savedPropertyService(r).Update(r.Context(), params["id"], body)
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderSavedProperty(w, r, sp)
}

func (impl *savedPropertiesImpl) destroy(w http.ResponseWriter, r *http.Request, params map[string]string) {
	sp, err := savedPropertyService(r).Delete(r.Context(), params["id"])
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderSavedProperty(w, r, sp)
}
