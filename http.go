package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/MixinNetwork/homes.one/config"
	"github.com/MixinNetwork/homes.one/controllers"
	"github.com/MixinNetwork/homes.one/durable"
	"github.com/MixinNetwork/homes.one/listing"
	"github.com/MixinNetwork/homes.one/middlewares"
	"github.com/MixinNetwork/homes.one/models"
	"github.com/MixinNetwork/homes.one/notifier"
	"github.com/MixinNetwork/homes.one/session"
	"github.com/bugsnag/bugsnag-go"
	"github.com/dimfeld/httptreemux"
	"github.com/facebookgo/grace/gracehttp"
	"github.com/gorilla/handlers"
	"github.com/unrolled/render"
)

func StartServer(db *durable.Database) error {
	logger, err := durable.NewLoggerClient(config.GoogleCloudProject, config.Environment != "production")
	if err != nil {
		return err
	}
	defer logger.Close()

	var limiter *durable.Limiter
	if config.RedisRateLimiterAddress != "" {
		limiter, err = durable.NewLimiter(config.RedisRateLimiterAddress, config.RedisRateLimiterDatabase)
		if err != nil {
			return err
		}
		defer limiter.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := notifier.NewHub()
	session.Go(func() {
		if err := hub.Run(ctx); err != nil {
			log.Println("hub", err)
		}
	}, ctx)

	registry := listing.NewRegistry(models.NewPropertyService(db), models.NewSavedPropertyService(db), logger)

	router := httptreemux.New()
	controllers.RegisterHanders(router)
	controllers.RegisterRoutes(router, registry, hub)
	handler := middlewares.Limit(router)
	handler = middlewares.Constraint(handler)
	handler = middlewares.Context(handler, db, limiter, render.New(render.Options{UnEscapeHTML: true}))
	handler = middlewares.Stats(handler, "http", config.HTTPLogRequestBody, config.BuildVersion)
	handler = middlewares.Log(handler, logger, "http")
	handler = handlers.ProxyHeaders(handler)
	handler = bugsnag.Handler(handler)

	return gracehttp.Serve(&http.Server{Addr: fmt.Sprintf(":%d", config.HTTPListenPort), Handler: handler})
}
