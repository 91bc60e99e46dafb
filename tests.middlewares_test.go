package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestMiddlewaresChain ensures the chaining preserves the middlewares
// declaration order.
func TestMiddlewaresChain(t *testing.T) {
	var calls []string
	tag := func(name string) MiddlewareFunc {
		return func(next httprouter.Handle) httprouter.Handle {
			return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
				calls = append(calls, name)
				next(w, r, ps)
			}
		}
	}
	stack := Middlewares{tag("first"), tag("second"), tag("third")}
	handle := stack.Chain(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		calls = append(calls, "handler")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handle(httptest.NewRecorder(), req, httprouter.Params{})
	assert.Equal(t, []string{"first", "second", "third", "handler"}, calls)
}

func TestMiddlewaresChainEmptyStack(t *testing.T) {
	called := false
	stack := Middlewares{}
	handle := stack.Chain(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		called = true
	})
	handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Params{})
	assert.True(t, called)
}

// TestRequestIDMiddleware ensures each request gets a unique id
// attached to its context.
func TestRequestIDMiddleware(t *testing.T) {
	api := newTestAPIHandler(zap.NewNop())
	var seen []string
	handle := api.RequestIDMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		seen = append(seen, GetValueFromContext(r.Context(), ContextRequestID))
	})

	for i := 0; i < 2; i++ {
		handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil), httprouter.Params{})
	}

	require.Len(t, seen, 2)
	assert.NotEmpty(t, seen[0])
	assert.NotEmpty(t, seen[1])
	assert.NotEqual(t, seen[0], seen[1])
}

// TestRequestsCounterMiddleware ensures the requests statistics counter
// moves and lands into the request context.
func TestRequestsCounterMiddleware(t *testing.T) {
	api := newTestAPIHandler(zap.NewNop())
	var numbers []uint64
	handle := api.RequestsCounterMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		numbers = append(numbers, GetRequestNumberFromContext(r.Context()))
	})

	for i := 0; i < 3; i++ {
		handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil), httprouter.Params{})
	}

	assert.Equal(t, []uint64{1, 2, 3}, numbers)
}

func TestCORSMiddleware(t *testing.T) {
	handle := CORSMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})
	w := httptest.NewRecorder()
	handle(w, httptest.NewRequest(http.MethodGet, "/health", nil), httprouter.Params{})

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

// TestMaintenanceModeMiddleware ensures public traffic is short-circuited
// with 503 while maintenance mode is on.
func TestMaintenanceModeMiddleware(t *testing.T) {
	api := newTestAPIHandler(zap.NewNop())
	reached := false
	handle := api.MaintenanceModeMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/books", nil), httprouter.Params{})
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, w.Code)

	api.mode.enabled.Store(true)
	api.mode.message = "upgrade in progress"
	reached = false
	w = httptest.NewRecorder()
	handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/books", nil), httprouter.Params{})
	assert.False(t, reached)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// TestRateLimitMiddleware ensures requests above the configured burst
// are rejected with the failure envelope once the limiter is enabled.
func TestRateLimitMiddleware(t *testing.T) {
	api := newTestAPIHandler(zap.NewNop())
	api.config.RateLimit = RateLimitConfig{Enable: true, RPS: 1, Burst: 2}
	handle := api.RateLimitMiddleware()(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/books", nil), httprouter.Params{})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/books", nil), httprouter.Params{})
	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	block := errorBlock(t, decodeBody(t, res))
	assert.Equal(t, "TOO_MANY_REQUESTS", block["code"])
}

func TestRateLimitMiddlewareDisabled(t *testing.T) {
	api := newTestAPIHandler(zap.NewNop())
	api.config.RateLimit = RateLimitConfig{Enable: false, RPS: 1, Burst: 1}
	handle := api.RateLimitMiddleware()(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/books", nil), httprouter.Params{})
		require.Equal(t, http.StatusOK, w.Code)
	}
}

// TestPanicRecoveryMiddleware ensures a panicking handler translates
// into a 500 failure envelope instead of tearing the server down.
func TestPanicRecoveryMiddleware(t *testing.T) {
	api := newTestAPIHandler(zap.NewNop())
	handle := api.PanicRecoveryMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/books", nil), httprouter.Params{})
	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	block := errorBlock(t, decodeBody(t, res))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", block["code"])
}

// TestCoreMiddleware ensures final statuses are recorded into the
// requests statistics.
func TestCoreMiddleware(t *testing.T) {
	api := newTestAPIHandler(zap.NewNop())
	handle := api.CoreMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusTeapot)
	})

	for i := 0; i < 2; i++ {
		handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/books", nil), httprouter.Params{})
	}

	api.stats.mu.RLock()
	defer api.stats.mu.RUnlock()
	assert.Equal(t, uint64(2), api.stats.status[http.StatusTeapot])
}
