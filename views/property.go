package views

import (
	"net/http"
	"time"

	"github.com/MixinNetwork/homes.one/listing"
	"github.com/MixinNetwork/homes.one/models"
)

type AddressView struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type AgentView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PropertyView struct {
	Type                string       `json:"type"`
	PropertyId          string       `json:"property_id"`
	Title               string       `json:"title"`
	Price               float64      `json:"price"`
	FormattedPrice      string       `json:"formatted_price"`
	Bedrooms            int          `json:"bedrooms"`
	Bathrooms           float64      `json:"bathrooms"`
	PropertyType        string       `json:"property_type"`
	SquareFeet          int          `json:"square_feet"`
	FormattedSquareFeet string       `json:"formatted_square_feet"`
	Address             *AddressView `json:"address"`
	Images              []string     `json:"images"`
	Features            []string     `json:"features"`
	Agent               *AgentView   `json:"agent"`
	Description         string       `json:"description"`
	ListingDate         time.Time    `json:"listing_date"`
	Saved               *bool        `json:"saved,omitempty"`
}

type SavedPropertyView struct {
	Type            string    `json:"type"`
	SavedPropertyId string    `json:"saved_property_id"`
	PropertyId      string    `json:"property_id"`
	SavedDate       time.Time `json:"saved_date"`
}

func buildPropertyView(p *models.Property) PropertyView {
	view := PropertyView{
		Type:                "property",
		PropertyId:          p.PropertyId,
		Title:               p.Title,
		Price:               p.Price,
		FormattedPrice:      listing.FormatPrice(p.Price),
		Bedrooms:            p.Bedrooms,
		Bathrooms:           p.Bathrooms,
		PropertyType:        p.PropertyType,
		SquareFeet:          p.SquareFeet,
		FormattedSquareFeet: listing.FormatNumber(p.SquareFeet),
		Images:              p.Images,
		Features:            p.Features,
		Description:         p.Description,
		ListingDate:         p.ListingDate,
	}
	if view.Images == nil {
		view.Images = []string{}
	}
	if view.Features == nil {
		view.Features = []string{}
	}
	if a := p.Address; a != nil {
		view.Address = &AddressView{Street: a.Street, City: a.City, State: a.State, ZipCode: a.ZipCode}
	}
	if a := p.Agent; a != nil {
		view.Agent = &AgentView{Name: a.Name, Email: a.Email}
	}
	return view
}

func buildSavedPropertyView(sp *models.SavedProperty) SavedPropertyView {
	return SavedPropertyView{
		Type:            "saved_property",
		SavedPropertyId: sp.SavedPropertyId,
		PropertyId:      sp.PropertyId,
		SavedDate:       sp.SavedDate,
	}
}

func RenderProperty(w http.ResponseWriter, r *http.Request, p *models.Property) {
	RenderDataResponse(w, r, buildPropertyView(p))
}

func RenderProperties(w http.ResponseWriter, r *http.Request, properties []*models.Property) {
	views := make([]PropertyView, 0, len(properties))
	for _, p := range properties {
		views = append(views, buildPropertyView(p))
	}
	RenderDataResponse(w, r, views)
}

func RenderSavedProperty(w http.ResponseWriter, r *http.Request, sp *models.SavedProperty) {
	RenderDataResponse(w, r, buildSavedPropertyView(sp))
}

func RenderSavedProperties(w http.ResponseWriter, r *http.Request, saved []*models.SavedProperty) {
	views := make([]SavedPropertyView, 0, len(saved))
	for _, sp := range saved {
		views = append(views, buildSavedPropertyView(sp))
	}
	RenderDataResponse(w, r, views)
}

func RenderFilterOptions(w http.ResponseWriter, r *http.Request, options listing.Options) {
	RenderDataResponse(w, r, map[string]interface{}{
		"property_types": options.PropertyTypes,
		"bedrooms":       options.Bedrooms,
		"bathrooms":      options.Bathrooms,
		"price_range":    options.PriceRange,
		"price_step":     options.PriceStep,
	})
}
