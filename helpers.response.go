package main

import (
	"net/http"
	"runtime/debug"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Pagination is the summary block returned alongside paginated listings.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// APIResponse is the data model sent when a request succeeds.
// Total is only set on author listings and Pagination on book listings.
type APIResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data"`
	Total      *int        `json:"total,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// APIErrorBody is the error block of a failure response.
type APIErrorBody struct {
	Code            string   `json:"code"`
	Message         string   `json:"message"`
	AvailableRoutes []string `json:"availableRoutes,omitempty"`
	Stack           string   `json:"stack,omitempty"`
}

// APIFailure is the data model sent when an error occurred during
// request processing.
type APIFailure struct {
	Success   bool         `json:"success"`
	Error     APIErrorBody `json:"error"`
	Timestamp time.Time    `json:"timestamp"`
	Path      string       `json:"path"`
}

// SuccessResponse builds a success envelope around the given data.
func SuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{Success: true, Data: data}
}

// WriteResponse is used to send a success api response to the client.
func WriteResponse(w http.ResponseWriter, status int, resp *APIResponse) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return jsonAPI.NewEncoder(w).Encode(resp)
}

// Fail is the single translation point between domain errors and http
// failure responses. It logs the failure with its request details then
// emits the uniform error envelope. Outside production the stack trace
// is exposed in the response body as well.
func (api *APIHandler) Fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	derr, ok := err.(*DomainError)
	if !ok {
		derr = InternalError(err)
	}

	api.logger.Error("request failed",
		zap.String("request.id", requestID),
		zap.String("request.method", r.Method),
		zap.String("request.path", r.URL.Path),
		zap.String("request.ip", GetRequestSourceIP(r)),
		zap.String("error.code", derr.Code()),
		zap.String("error.message", derr.Message),
	)

	failure := &APIFailure{
		Success: false,
		Error: APIErrorBody{
			Code:    derr.Code(),
			Message: derr.Message,
		},
		Timestamp: api.clock.Now().UTC(),
		Path:      r.URL.Path,
	}
	if !api.config.IsProduction {
		failure.Error.Stack = string(debug.Stack())
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(derr.Status())
	if err := jsonAPI.NewEncoder(w).Encode(failure); err != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// statusRecorder is a wrapper for http.ResponseWriter used to record
// the response status code for the requests statistics.
type statusRecorder struct {
	http.ResponseWriter
	code  int
	wrote bool
}

// NewStatusRecorder provides a statusRecorder with 200 as status code.
func NewStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, code: http.StatusOK}
}

// WriteHeader implements the http.ResponseWriter interface.
func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.wrote {
		sr.code = code
		sr.wrote = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

// Status returns the written status code.
func (sr *statusRecorder) Status() int {
	return sr.code
}
