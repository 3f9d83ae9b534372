package main

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "studyhall/highlighter/docs"
)

func (app *application) routes(handlers *Handlers) http.Handler {
	router := httprouter.New()

	router.RedirectFixedPath = false
	router.RedirectTrailingSlash = false

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	handlers.HighlightClass.RegisterRoutes(router)
	handlers.Highlight.RegisterRoutes(router)
	handlers.Notebook.RegisterRoutes(router)
	handlers.Session.RegisterRoutes(router)
	handlers.Export.RegisterRoutes(router)

	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())
	router.HandlerFunc(http.MethodGet, "/swagger/*any", httpSwagger.WrapHandler)

	return app.metrics(app.recoverPanic(app.enableCORS(router)))
}
