package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/MixinNetwork/homes.one/listing"
	"github.com/MixinNetwork/homes.one/notifier"
	"github.com/MixinNetwork/homes.one/session"
	"github.com/MixinNetwork/homes.one/uuid"
	"github.com/MixinNetwork/homes.one/views"
	"github.com/dimfeld/httptreemux"
)

type listingsImpl struct {
	registry *listing.Registry
	hub      *notifier.Hub
}

func registerListings(router *httptreemux.TreeMux, registry *listing.Registry, hub *notifier.Hub) {
	impl := &listingsImpl{registry: registry, hub: hub}

	router.POST("/listings", impl.create)
	router.GET("/listings/:id", impl.show)
	router.DELETE("/listings/:id", impl.destroy)
	router.POST("/listings/:id/filters", impl.filters)
	router.POST("/listings/:id/filters/clear", impl.clearFilters)
	router.POST("/listings/:id/saved/:property_id", impl.toggleSaved)
	router.POST("/listings/:id/retry", impl.retry)
	router.GET("/listings/:id/notifications", impl.notifications)
}

func (impl *listingsImpl) find(w http.ResponseWriter, r *http.Request, id string) *listing.Controller {
	if !uuid.Valid(id) {
		views.RenderErrorResponse(w, r, session.ListingNotFoundError(r.Context(), id))
		return nil
	}
	c, found := impl.registry.Get(id)
	if !found {
		views.RenderErrorResponse(w, r, session.ListingNotFoundError(r.Context(), id))
		return nil
	}
	return c
}

// A failed load is part of the listing state, so it renders as a listing.
func (impl *listingsImpl) renderLoad(w http.ResponseWriter, r *http.Request, c *listing.Controller, err error) {
	if err != nil && !session.HasCode(err, session.CodeListingLoadFailure) {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderListing(w, r, c.View())
}

func (impl *listingsImpl) create(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	c := impl.registry.Create(func(id string) listing.Notifier {
		return impl.hub.Channel(id)
	})
	impl.renderLoad(w, r, c, c.Load(r.Context()))
}

func (impl *listingsImpl) show(w http.ResponseWriter, r *http.Request, params map[string]string) {
	if c := impl.find(w, r, params["id"]); c != nil {
		views.RenderListing(w, r, c.View())
	}
}

func (impl *listingsImpl) destroy(w http.ResponseWriter, r *http.Request, params map[string]string) {
	if !impl.registry.Remove(params["id"]) {
		views.RenderErrorResponse(w, r, session.ListingNotFoundError(r.Context(), params["id"]))
		return
	}
	impl.hub.Forget(params["id"])
	views.RenderBlankResponse(w, r)
}

func (impl *listingsImpl) filters(w http.ResponseWriter, r *http.Request, params map[string]string) {
	c := impl.find(w, r, params["id"])
	if c == nil {
		return
	}
	var body listing.FilterPatch
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		views.RenderErrorResponse(w, r, session.BadRequestError(r.Context()))
		return
	}
	if err := c.UpdateFilters(r.Context(), body); err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderListing(w, r, c.View())
}

func (impl *listingsImpl) clearFilters(w http.ResponseWriter, r *http.Request, params map[string]string) {
	c := impl.find(w, r, params["id"])
	if c == nil {
		return
	}
	if err := c.ClearFilters(r.Context()); err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderListing(w, r, c.View())
}

func (impl *listingsImpl) toggleSaved(w http.ResponseWriter, r *http.Request, params map[string]string) {
	c := impl.find(w, r, params["id"])
	if c == nil {
		return
	}
	saved, err := c.ToggleSaved(r.Context(), params["property_id"])
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderSavedState(w, r, params["property_id"], saved)
}

func (impl *listingsImpl) retry(w http.ResponseWriter, r *http.Request, params map[string]string) {
	c := impl.find(w, r, params["id"])
	if c == nil {
		return
	}
	impl.renderLoad(w, r, c, c.Retry(r.Context()))
}

func (impl *listingsImpl) notifications(w http.ResponseWriter, r *http.Request, params map[string]string) {
	c := impl.find(w, r, params["id"])
	if c == nil {
		return
	}
	if err := impl.hub.Serve(w, r, c.Id()); err != nil {
		if logger := session.Logger(r.Context()); logger != nil {
			logger.Infof("NOTIFICATIONS %s %s", c.Id(), err.Error())
		}
	}
}
