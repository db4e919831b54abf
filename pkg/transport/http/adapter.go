// Package http serves the relayout conversion API over HTTP. The Adapter
// routes requests and serializes responses; the Server wraps it with an
// http.Server lifecycle including graceful shutdown.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/relayout-dev/relayout/pkg/api"
	"github.com/relayout-dev/relayout/pkg/storage"
	"github.com/relayout-dev/relayout/pkg/transport"
)

// healthMessage is the payload of the healthchecker endpoint.
const healthMessage = "keyboard layout conversion service is up"

// Adapter serves the conversion API over HTTP.
// It routes requests to the appropriate handler and serializes responses.
type Adapter struct {
	converter transport.TextConverter
	store     transport.ConversionStore // nil if history is disabled
	mux       *http.ServeMux
	config    Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	Addr            string
	MaxBodySize     int64
	ShutdownTimeout int // seconds
	Validation      api.ValidationConfig
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8000",
		MaxBodySize:     4 << 20, // 4 MB
		ShutdownTimeout: 30,
		Validation:      api.DefaultValidationConfig(),
	}
}

// NewAdapter creates an HTTP adapter with the given TextConverter and options.
// The ConversionStore is optional; when nil, the history endpoints return
// an error indicating the operation is not available.
// Middleware is applied to the TextConverter in the given order.
func NewAdapter(converter transport.TextConverter, store transport.ConversionStore, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if len(middlewares) > 0 {
		converter = transport.Chain(middlewares...)(converter)
	}

	a := &Adapter{
		converter: converter,
		store:     store,
		mux:       http.NewServeMux(),
		config:    cfg,
	}

	a.mux.HandleFunc("POST /api/convert", a.handleConvert)
	a.mux.HandleFunc("GET /api/healthchecker", a.handleHealthChecker)
	a.mux.HandleFunc("GET /api/conversions", a.handleListConversions)
	a.mux.HandleFunc("GET /api/conversions/{id}", a.handleGetConversion)
	a.mux.HandleFunc("DELETE /api/conversions/{id}", a.handleDeleteConversion)

	return a
}

// Handler returns the http.Handler for this adapter. Use this to integrate
// with an http.Server or test with httptest. The returned handler includes
// HTTP-level middleware for request ID propagation.
func (a *Adapter) Handler() http.Handler {
	return httpRequestIDMiddleware(a.mux)
}

// httpRequestIDMiddleware is HTTP-level middleware that propagates the
// X-Request-ID header. If present in the request, it is forwarded into the
// context; after the handler runs, the effective request ID is reflected
// back in the response headers.
func httpRequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Request-ID"); id != "" {
			ctx := transport.ContextWithRequestID(r.Context(), id)
			r = r.WithContext(ctx)
		}
		rw := &requestIDResponseWriter{ResponseWriter: w, r: r}
		next.ServeHTTP(rw, r)
	})
}

// requestIDResponseWriter wraps http.ResponseWriter to inject the
// X-Request-ID header before the first write.
type requestIDResponseWriter struct {
	http.ResponseWriter
	r           *http.Request
	headersSent bool
}

func (w *requestIDResponseWriter) WriteHeader(statusCode int) {
	w.ensureRequestIDHeader()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *requestIDResponseWriter) Write(b []byte) (int, error) {
	w.ensureRequestIDHeader()
	return w.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for http.NewResponseController.
func (w *requestIDResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *requestIDResponseWriter) ensureRequestIDHeader() {
	if w.headersSent {
		return
	}
	w.headersSent = true
	if id := transport.RequestIDFromContext(w.r.Context()); id != "" {
		w.ResponseWriter.Header().Set("X-Request-ID", id)
	}
}

// handleConvert handles POST /api/convert.
func (a *Adapter) handleConvert(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
			http.StatusUnsupportedMediaType,
		)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	var req api.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("body", fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge,
			)
			return
		}
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("body", "invalid JSON: "+err.Error()),
			http.StatusBadRequest,
		)
		return
	}

	if apiErr := api.ValidateConvertRequest(&req, a.config.Validation); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	result, err := a.converter.ConvertText(r.Context(), &req)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			transport.WriteAPIError(w, apiErr)
		} else {
			transport.WriteAPIError(w, api.NewServerError(err.Error()))
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleHealthChecker handles GET /api/healthchecker. When a store is
// configured its connectivity is part of the health verdict.
func (a *Adapter) handleHealthChecker(w http.ResponseWriter, r *http.Request) {
	if a.store != nil {
		if err := a.store.HealthCheck(r.Context()); err != nil {
			transport.WriteErrorResponse(w,
				api.NewServerError("history store unavailable: "+err.Error()),
				http.StatusServiceUnavailable,
			)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(api.HealthStatus{Status: "success", Message: healthMessage})
}

// handleGetConversion handles GET /api/conversions/{id}.
func (a *Adapter) handleGetConversion(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("", "conversion history is not available (no store configured)"),
			http.StatusNotImplemented,
		)
		return
	}

	id := r.PathValue("id")
	if !api.ValidateConversionID(id) {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("id", "malformed conversion ID"),
			http.StatusBadRequest,
		)
		return
	}

	conv, err := a.store.GetConversion(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, id, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(conv)
}

// handleDeleteConversion handles DELETE /api/conversions/{id}.
func (a *Adapter) handleDeleteConversion(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("", "conversion history is not available (no store configured)"),
			http.StatusNotImplemented,
		)
		return
	}

	id := r.PathValue("id")
	if !api.ValidateConversionID(id) {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("id", "malformed conversion ID"),
			http.StatusBadRequest,
		)
		return
	}

	if err := a.store.DeleteConversion(r.Context(), id); err != nil {
		a.writeStoreError(w, id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListConversions handles GET /api/conversions.
func (a *Adapter) handleListConversions(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("", "conversion history is not available (no store configured)"),
			http.StatusNotImplemented,
		)
		return
	}

	q := r.URL.Query()
	opts := transport.ListOptions{
		After:  q.Get("after"),
		Before: q.Get("before"),
		From:   q.Get("from"),
		To:     q.Get("to"),
		Order:  q.Get("order"),
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("limit", "limit must be an integer between 1 and 100"),
				http.StatusBadRequest,
			)
			return
		}
		opts.Limit = limit
	}
	if opts.Order != "" && opts.Order != "asc" && opts.Order != "desc" {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("order", "order must be \"asc\" or \"desc\""),
			http.StatusBadRequest,
		)
		return
	}

	list, err := a.store.ListConversions(r.Context(), opts)
	if err != nil {
		transport.WriteAPIError(w, api.NewServerError(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// writeStoreError maps store errors to API errors.
func (a *Adapter) writeStoreError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		transport.WriteAPIError(w, api.NewNotFoundError("conversion "+id+" not found"))
		return
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		transport.WriteAPIError(w, apiErr)
		return
	}
	transport.WriteAPIError(w, api.NewServerError(err.Error()))
}
