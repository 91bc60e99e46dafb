package main

import (
	"github.com/julienschmidt/httprouter"
	httpswagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/readify/bookstore-api/docs"
)

// MiddlewareMap contains middlewares chains to use
// for public-facing and ops requests.
type MiddlewareMap struct {
	public func(httprouter.Handle) httprouter.Handle
	ops    func(httprouter.Handle) httprouter.Handle
}

// SetupRoutes injects resource and ops related endpoints if required.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.NotFound = api.NotFound()
	api.SetupBookRoutes(router, m)
	api.SetupAuthorRoutes(router, m)
	if api.config.OpsEndpointsEnable {
		api.SetupOpsRoutes(router, m)
	}
	router.GET("/api-docs/*any", m.public(api.OpsHandlerWrapper(httpswagger.Handler(
		httpswagger.URL("/api-docs/doc.json"),
	))))
	return router
}
