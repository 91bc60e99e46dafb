package main

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// ServiceName is the public name of the api exposed by the health endpoint.
const ServiceName = "Readify Bookstore API"

// AvailableRoutes is the fixed list of known routes returned on
// unmatched paths.
var AvailableRoutes = []string{
	"GET /api/v1/books",
	"POST /api/v1/books",
	"GET /api/v1/books/:id",
	"PUT /api/v1/books/:id",
	"PATCH /api/v1/books/:id",
	"DELETE /api/v1/books/:id",
	"GET /api/v1/authors",
	"POST /api/v1/authors",
	"GET /api/v1/authors/:id",
	"GET /health",
	"GET /api-docs",
}

// Statistics holds app stats for ops.
type Statistics struct {
	version   string
	container bool
	runtime   string
	platform  string
	called    uint64
	started   time.Time
	status    map[int]uint64
	mu        *sync.RWMutex
}

// Maintenance holds app maintenance mode infos.
type Maintenance struct {
	enabled atomic.Bool
	message string
	started time.Time
}

// APIHandler defines the API handler.
type APIHandler struct {
	logger        *zap.Logger
	config        *Config
	stats         *Statistics
	mode          *Maintenance
	clock         Clocker
	ids           UIDGenerator
	bookService   BookServiceProvider
	authorService AuthorServiceProvider
}

// NewAPIHandler provides a new instance of APIHandler.
func NewAPIHandler(logger *zap.Logger, config *Config, stats *Statistics, clock Clocker, ids UIDGenerator, bs BookServiceProvider, as AuthorServiceProvider) *APIHandler {
	m := &Maintenance{}
	m.enabled.Store(false)
	stats.status = make(map[int]uint64)
	stats.mu = &sync.RWMutex{}
	return &APIHandler{
		logger:        logger,
		config:        config,
		stats:         stats,
		mode:          m,
		clock:         clock,
		ids:           ids,
		bookService:   bs,
		authorService: as,
	}
}

// Index redirects to the health endpoint.
func (api *APIHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, "/health", http.StatusSeeOther)
}

// Health is the liveness probe of the service.
func (api *APIHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := jsonAPI.NewEncoder(w).Encode(
		map[string]interface{}{
			"status":    "healthy",
			"service":   ServiceName,
			"version":   api.stats.version,
			"timestamp": api.clock.Now().UTC(),
			"uptime":    fmt.Sprintf("%.0f seconds", time.Since(api.stats.started).Seconds()),
		},
	); err != nil {
		api.logger.Error("failed to send health response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// NotFound serves the failure envelope for unmatched routes along with
// the fixed list of known routes.
func (api *APIHandler) NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		failure := &APIFailure{
			Success: false,
			Error: APIErrorBody{
				Code:            "ROUTE_NOT_FOUND",
				Message:         fmt.Sprintf("Route '%s %s' not found", r.Method, r.URL.Path),
				AvailableRoutes: AvailableRoutes,
			},
			Timestamp: api.clock.Now().UTC(),
			Path:      r.URL.Path,
		}
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		w.WriteHeader(http.StatusNotFound)
		if err := jsonAPI.NewEncoder(w).Encode(failure); err != nil {
			api.logger.Error("failed to send route not found response", zap.Error(err))
		}
	})
}
