package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupBookRoutes injects the book related api endpoints.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/", m.public(api.Index))
	router.GET("/health", m.public(api.Health))
	router.GET("/api/v1/books", m.public(api.GetAllBooks))
	router.POST("/api/v1/books", m.public(api.CreateBook))
	router.GET("/api/v1/books/:id", m.public(api.GetOneBook))
	router.PUT("/api/v1/books/:id", m.public(api.UpdateBook))
	router.PATCH("/api/v1/books/:id", m.public(api.PatchBook))
	router.DELETE("/api/v1/books/:id", m.public(api.DeleteOneBook))
	return router
}
