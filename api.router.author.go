package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupAuthorRoutes injects the author related api endpoints.
func (api *APIHandler) SetupAuthorRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/api/v1/authors", m.public(api.GetAllAuthors))
	router.POST("/api/v1/authors", m.public(api.CreateAuthor))
	router.GET("/api/v1/authors/:id", m.public(api.GetOneAuthor))
	return router
}
