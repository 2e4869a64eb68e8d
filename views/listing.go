package views

import (
	"fmt"
	"net/http"

	"github.com/MixinNetwork/homes.one/listing"
)

type ListingView struct {
	Type           string              `json:"type"`
	ListingId      string              `json:"listing_id"`
	State          string              `json:"state"`
	Error          string              `json:"error,omitempty"`
	Properties     []PropertyView      `json:"properties"`
	Showing        int                 `json:"showing"`
	Total          int                 `json:"total"`
	Summary        string              `json:"summary"`
	SavedCount     int                 `json:"saved_count"`
	Filters        listing.FilterState `json:"filters"`
	FiltersApplied bool                `json:"filters_applied"`
}

func RenderListing(w http.ResponseWriter, r *http.Request, view listing.View) {
	properties := make([]PropertyView, 0, len(view.Items))
	for _, item := range view.Items {
		pv := buildPropertyView(item.Property)
		pv.FormattedPrice = item.Price
		saved := item.Saved
		pv.Saved = &saved
		properties = append(properties, pv)
	}
	RenderDataResponse(w, r, ListingView{
		Type:           "listing",
		ListingId:      view.ListingId,
		State:          string(view.State),
		Error:          view.Error,
		Properties:     properties,
		Showing:        len(properties),
		Total:          view.Total,
		Summary:        fmt.Sprintf("Showing %d of %d properties", len(properties), view.Total),
		SavedCount:     view.SavedCount,
		Filters:        view.Filters,
		FiltersApplied: view.FiltersApplied,
	})
}

func RenderSavedState(w http.ResponseWriter, r *http.Request, propertyId string, saved bool) {
	RenderDataResponse(w, r, map[string]interface{}{
		"type":        "saved_state",
		"property_id": propertyId,
		"saved":       saved,
	})
}
