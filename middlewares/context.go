package middlewares

import (
	"net/http"

	"github.com/MixinNetwork/homes.one/durable"
	"github.com/MixinNetwork/homes.one/session"
	"github.com/unrolled/render"
)

func Context(handler http.Handler, db *durable.Database, limiter *durable.Limiter, render *render.Render) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := session.WithRequest(r.Context(), r)
		ctx = session.WithDatabase(ctx, db)
		if limiter != nil {
			ctx = session.WithLimiter(ctx, limiter)
		}
		ctx = session.WithRender(ctx, render)
		handler.ServeHTTP(w, r.WithContext(ctx))
	})
}
