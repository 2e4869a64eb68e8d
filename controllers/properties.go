package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/MixinNetwork/homes.one/models"
	"github.com/MixinNetwork/homes.one/session"
	"github.com/MixinNetwork/homes.one/views"
	"github.com/dimfeld/httptreemux"
)

type propertiesImpl struct{}

func registerProperties(router *httptreemux.TreeMux) {
	impl := &propertiesImpl{}

	router.GET("/properties", impl.index)
	router.POST("/properties", impl.create)
	router.GET("/properties/:id", impl.show)
	router.POST("/properties/:id", impl.update)
	router.DELETE("/properties/:id", impl.destroy)
}

func propertyService(r *http.Request) *models.PropertyService {
	return models.NewPropertyService(session.Database(r.Context()))
}

func (impl *propertiesImpl) index(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	properties, err := propertyService(r).All(r.Context())
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderProperties(w, r, properties)
}

func (impl *propertiesImpl) create(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var body models.Property
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		views.RenderErrorResponse(w, r, session.BadRequestError(r.Context()))
		return
	}
	p, err := propertyService(r).Create(r.Context(), &body)
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderProperty(w, r, p)
}

func (impl *propertiesImpl) show(w http.ResponseWriter, r *http.Request, params map[string]string) {
	p, err := propertyService(r).Find(r.Context(), params["id"])
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderProperty(w, r, p)
}

func (impl *propertiesImpl) update(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var body models.PropertyPatch
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		views.RenderErrorResponse(w, r, session.BadRequestError(r.Context()))
		return
	}
	p, err := propertyService(r).Update(r.Context(), params["id"], body)
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderProperty(w, r, p)
}

func (impl *propertiesImpl) destroy(w http.ResponseWriter, r *http.Request, params map[string]string) {
	p, err := propertyService(r).Delete(r.Context(), params["id"])
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderProperty(w, r, p)
}
