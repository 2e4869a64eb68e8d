package controllers

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/MixinNetwork/homes.one/config"
	"github.com/MixinNetwork/homes.one/listing"
	"github.com/MixinNetwork/homes.one/notifier"
	"github.com/MixinNetwork/homes.one/session"
	"github.com/MixinNetwork/homes.one/views"
	"github.com/bugsnag/bugsnag-go/errors"
	"github.com/dimfeld/httptreemux"
)

func RegisterHanders(router *httptreemux.TreeMux) {
	router.MethodNotAllowedHandler = func(w http.ResponseWriter, r *http.Request, _ map[string]httptreemux.HandlerFunc) {
		views.RenderErrorResponse(w, r, session.NotFoundError(r.Context()))
	}
	router.NotFoundHandler = func(w http.ResponseWriter, r *http.Request) {
		views.RenderErrorResponse(w, r, session.NotFoundError(r.Context()))
	}
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, rcv interface{}) {
		err := fmt.Errorf("%s", errors.New(rcv, 2).Stack())
		views.RenderErrorResponse(w, r, session.ServerError(r.Context(), err))
	}
}

func RegisterRoutes(router *httptreemux.TreeMux, registry *listing.Registry, hub *notifier.Hub) {
	router.GET("/", root)
	router.GET("/_hc", healthCheck)

	registerProperties(router)
	registerSavedProperties(router)
	registerPropertyTypes(router)
	registerListings(router, registry, hub)
}

func root(w http.ResponseWriter, r *http.Request, params map[string]string) {
	views.RenderDataResponse(w, r, map[string]string{
		"build":      config.BuildVersion + "-" + runtime.Version(),
		"developers": "https://github.com/MixinNetwork/homes.one",
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request, params map[string]string) {
	views.RenderBlankResponse(w, r)
}
