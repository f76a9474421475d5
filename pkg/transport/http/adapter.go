package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/graphgate/graphgate/pkg/api"
	"github.com/graphgate/graphgate/pkg/transport"
)

// Adapter serves the Responses API over HTTP. It routes requests to the
// gateway handler and serializes responses and streaming events.
type Adapter struct {
	creator  transport.ResponseCreator
	inflight *transport.InFlightRegistry
	mux      *http.ServeMux
	config   Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	// BasePath prefixes the API routes (default "/v1"). The health
	// endpoint is always served at /health, outside the base path.
	BasePath string

	// MaxBodySize limits the request body in bytes.
	MaxBodySize int64

	// AgentName and Version identify the gateway in /health.
	AgentName string
	Version   string

	// ModelName and OwnedBy describe the single advertised model.
	ModelName string
	OwnedBy   string
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		BasePath:    "/v1",
		MaxBodySize: 10 << 20, // 10 MB
		AgentName:   "graphgate",
		Version:     "0.1.0",
		ModelName:   "graph-agent",
		OwnedBy:     "graphgate",
	}
}

// NewAdapter creates an HTTP adapter with the given ResponseCreator.
// Middleware is applied to the creator in the given order.
func NewAdapter(creator transport.ResponseCreator, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if len(middlewares) > 0 {
		creator = transport.Chain(middlewares...)(creator)
	}

	if cfg.BasePath == "" {
		cfg.BasePath = "/v1"
	}
	cfg.BasePath = strings.TrimSuffix(cfg.BasePath, "/")

	a := &Adapter{
		creator:  creator,
		inflight: transport.NewInFlightRegistry(),
		mux:      http.NewServeMux(),
		config:   cfg,
	}

	a.mux.HandleFunc("POST "+cfg.BasePath+"/responses", a.handleCreateResponse)
	a.mux.HandleFunc("GET "+cfg.BasePath+"/models", a.handleListModels)
	a.mux.HandleFunc("GET /health", a.handleHealth)

	return a
}

// Handler returns the http.Handler for this adapter. The returned handler
// includes HTTP-level middleware for request ID propagation.
func (a *Adapter) Handler() http.Handler {
	return httpRequestIDMiddleware(a.mux)
}

// InFlight exposes the in-flight stream registry so the server can abandon
// active streams on shutdown.
func (a *Adapter) InFlight() *transport.InFlightRegistry {
	return a.inflight
}

// httpRequestIDMiddleware propagates the X-Request-ID header. If present in
// the request it is forwarded into the context; the transport-level
// RequestID middleware generates one otherwise, and the response carries it
// back in the header.
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

func (w *requestIDResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
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

// handleCreateResponse handles POST {base}/responses.
func (a *Adapter) handleCreateResponse(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "application/json") {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
			http.StatusUnsupportedMediaType,
		)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	var req api.CreateResponseRequest
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

	if req.Stream {
		a.handleStreamingResponse(w, r, &req)
		return
	}

	rw := newSSEResponseWriter(w, nil)
	if err := a.creator.CreateResponse(r.Context(), &req, rw); err != nil {
		a.writeHandlerError(w, rw, err)
	}
}

// handleStreamingResponse handles streaming POST requests (stream: true).
// The stream's context is registered so shutdown can abandon it; a client
// disconnect cancels r.Context() and with it the graph iteration.
func (a *Adapter) handleStreamingResponse(w http.ResponseWriter, r *http.Request, req *api.CreateResponseRequest) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var registeredID string
	rw := newSSEResponseWriter(w, func(id string) {
		registeredID = id
		a.inflight.Register(id, cancel)
	})

	err := a.creator.CreateResponse(ctx, req, rw)

	if registeredID != "" {
		a.inflight.Remove(registeredID)
	}

	if err != nil {
		a.writeHandlerError(w, rw, err)
	}
}

// handleListModels handles GET {base}/models.
func (a *Adapter) handleListModels(w http.ResponseWriter, r *http.Request) {
	list := api.ModelList{
		Object: "list",
		Data: []api.ModelInfo{
			{ID: a.config.ModelName, Object: "model", OwnedBy: a.config.OwnedBy},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// handleHealth handles GET /health.
func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(api.HealthStatus{
		Status:  "healthy",
		Agent:   a.config.AgentName,
		Version: a.config.Version,
	})
}

// writeHandlerError writes an error from the handler. If streaming has
// already started, the HTTP status line is gone; the only signal left is a
// single error event on the stream. Otherwise a standard JSON error body
// is written with the mapped status code.
func (a *Adapter) writeHandlerError(w http.ResponseWriter, rw *sseResponseWriter, err error) {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		apiErr = api.NewServerError(err.Error())
	}

	if rw.hasStartedStreaming() {
		rw.WriteEvent(context.Background(), api.StreamEvent{
			Type:  api.EventError,
			Error: apiErr,
		})
		return
	}

	transport.WriteAPIError(w, apiErr)
}
