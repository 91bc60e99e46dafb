package main

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MiddlewareFunc is a custom type for ease of use.
type MiddlewareFunc func(httprouter.Handle) httprouter.Handle

// Middlewares is a custom type to represent a stack of
// middleware functions used to build a single chain.
type Middlewares []MiddlewareFunc

// Chain wraps a given httprouter.Handle with a list of middlewares.
// It does so by starting from the last middleware of the list.
func (m *Middlewares) Chain(h httprouter.Handle) httprouter.Handle {
	if len(*m) == 0 {
		return h
	}
	lg := len(*m)
	handle := (*m)[lg-1](h)

	for i := lg - 2; i >= 0; i-- {
		handle = (*m)[i](handle)
	}

	return handle
}

// MiddlewaresStacks provides the middlewares to be chained on
// public-facing requests and on internal ops requests.
func (api *APIHandler) MiddlewaresStacks() (*Middlewares, *Middlewares) {
	public := Middlewares{
		api.PanicRecoveryMiddleware,
		api.RequestsCounterMiddleware,
		api.RequestIDMiddleware,
		CORSMiddleware,
		api.MaintenanceModeMiddleware,
		api.RateLimitMiddleware(),
		api.CoreMiddleware,
	}
	ops := Middlewares{
		api.PanicRecoveryMiddleware,
		api.RequestIDMiddleware,
		api.CoreMiddleware,
	}
	return &public, &ops
}

// CoreMiddleware sets up the duration measurement for each request, logs its
// result and records the response status code into the requests statistics.
func (api *APIHandler) CoreMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := time.Now()
		requestID := GetValueFromContext(r.Context(), ContextRequestID)

		api.logger.Info(
			"request",
			zap.String("request.id", requestID),
			zap.Uint64("request.number", GetRequestNumberFromContext(r.Context())),
			zap.String("request.method", r.Method),
			zap.String("request.path", r.URL.Path),
			zap.String("request.ip", GetRequestSourceIP(r)),
			zap.String("request.agent", r.UserAgent()),
			zap.String("request.referer", r.Referer()),
		)

		recorder := NewStatusRecorder(w)
		next(recorder, r, ps)

		api.stats.mu.Lock()
		api.stats.status[recorder.Status()]++
		api.stats.mu.Unlock()

		api.logger.Info(
			"request",
			zap.String("request.id", requestID),
			zap.String("request.method", r.Method),
			zap.String("request.path", r.URL.Path),
			zap.Int("request.status", recorder.Status()),
			zap.Duration("request.duration", time.Since(start)),
		)
	}
}

// RequestsCounterMiddleware increments the number of received requests
// statistics and adds this new value to the request context to be used
// during logging as the `request.number` field.
func (api *APIHandler) RequestsCounterMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), ContextRequestNumber, atomic.AddUint64(&api.stats.called, 1))
		r = r.WithContext(ctx)
		next(w, r, ps)
	}
}

// RequestIDMiddleware generates and adds a unique id to the request context.
func (api *APIHandler) RequestIDMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), ContextRequestID, api.ids.Generate())
		r = r.WithContext(ctx)
		next(w, r, ps)
	}
}

// CORSMiddleware intercepts each incoming HTTP call then applies cors headers on it.
func CORSMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Access-Control-Request-Method, Access-Control-Request-Headers, Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, User-Agent, Accept-Language, Referer, DNT, Connection, Pragma, Cache-Control, TE")
		next(w, r, ps)
	}
}

// MaintenanceModeMiddleware short-circuits public requests with 503 while
// the maintenance mode is on.
func (api *APIHandler) MaintenanceModeMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if api.mode.enabled.Load() {
			api.Maintenance(w, r, httprouter.Params{httprouter.Param{Key: "status", Value: "show"}})
			return
		}
		next(w, r, ps)
	}
}

// RateLimitMiddleware builds a token-bucket limiter shared by all public
// requests and rejects with 429 once the burst is consumed.
func (api *APIHandler) RateLimitMiddleware() MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Limit(api.config.RateLimit.RPS), api.config.RateLimit.Burst)
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			if api.config.RateLimit.Enable && !limiter.Allow() {
				requestID := GetValueFromContext(r.Context(), ContextRequestID)
				api.logger.Warn("request rate limited",
					zap.String("request.id", requestID),
					zap.String("request.ip", GetRequestSourceIP(r)),
				)
				failure := &APIFailure{
					Success: false,
					Error: APIErrorBody{
						Code:    "TOO_MANY_REQUESTS",
						Message: "rate limit exceeded, retry later",
					},
					Timestamp: api.clock.Now().UTC(),
					Path:      r.URL.Path,
				}
				w.Header().Set("Content-Type", "application/json; charset=UTF-8")
				w.WriteHeader(http.StatusTooManyRequests)
				if err := jsonAPI.NewEncoder(w).Encode(failure); err != nil {
					api.logger.Error("failed to send rate limit response", zap.String("request.id", requestID), zap.Error(err))
				}
				return
			}
			next(w, r, ps)
		}
	}
}

// PanicRecoveryMiddleware catches any panic during the request lifecycle and
// produces an error log for further analysis. It sends a failure response to
// the client with 500.
func (api *APIHandler) PanicRecoveryMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		recovery := func() {
			if p := recover(); p != nil {
				requestID := GetValueFromContext(r.Context(), ContextRequestID)
				api.logger.Error("panic occurred", zap.String("request.id", requestID), zap.Any("error", p))
				api.Fail(w, r, InternalError(fmt.Errorf("failed to process the request: %v", p)))
			}
		}
		defer recovery()
		next(w, r, ps)
	}
}
