package views

import (
	"net/http"

	"github.com/MixinNetwork/homes.one/session"
	"github.com/unrolled/render"
)

var fallbackRender = render.New(render.Options{UnEscapeHTML: true})

type ResponseView struct {
	Data  interface{} `json:"data,omitempty"`
	Error error       `json:"error,omitempty"`
}

func RenderDataResponse(w http.ResponseWriter, r *http.Request, view interface{}) {
	renderer(r).JSON(w, http.StatusOK, ResponseView{Data: view})
}

func RenderErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	sessionError, ok := err.(session.Error)
	if !ok {
		sessionError = session.ServerError(r.Context(), err)
	}
	if sessionError.Code == session.CodeTransaction {
		sessionError.Code = session.CodeServer
	}
	renderer(r).JSON(w, sessionError.Status, ResponseView{Error: sessionError})
}

func RenderBlankResponse(w http.ResponseWriter, r *http.Request) {
	renderer(r).JSON(w, http.StatusOK, ResponseView{})
}

// Requests rejected before the context middleware runs have no render.
func renderer(r *http.Request) *render.Render {
	if rd := session.Render(r.Context()); rd != nil {
		return rd
	}
	return fallbackRender
}
