package controllers

import (
	"net/http"

	"github.com/MixinNetwork/homes.one/listing"
	"github.com/MixinNetwork/homes.one/views"
	"github.com/dimfeld/httptreemux"
)

func registerPropertyTypes(router *httptreemux.TreeMux) {
	router.GET("/property_types", propertyTypes)
}

func propertyTypes(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	properties, err := propertyService(r).All(r.Context())
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderFilterOptions(w, r, listing.FilterOptions(properties))
}
