// Package server exposes the invoice operations over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sheetinvoicer/docs" // swagger document
	"github.com/sheetinvoicer/pkg/dispatch"
	"github.com/sheetinvoicer/pkg/logger"
	"github.com/sheetinvoicer/pkg/store"
)

// Generator runs the generate-invoice operation.
type Generator interface {
	Generate(ctx context.Context, req dispatch.Request) (*dispatch.Summary, error)
}

// BatchLister reads recorded dispatch outcomes.
type BatchLister interface {
	ListBatch(ctx context.Context, batchID string) ([]store.Dispatch, error)
}

// CheckFunc reports the health of one dependency.
type CheckFunc func(ctx context.Context) error

// Handler serves the HTTP API.
type Handler struct {
	generator    Generator
	batches      BatchLister
	checks       map[string]CheckFunc
	logger       *slog.Logger
	maxBodyBytes int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithBatches enables the batch lookup endpoint.
func WithBatches(b BatchLister) Option {
	return func(h *Handler) {
		h.batches = b
	}
}

// WithCheck adds a named health check.
func WithCheck(name string, fn CheckFunc) Option {
	return func(h *Handler) {
		if fn != nil {
			h.checks[name] = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMaxBodyBytes limits request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// New creates a Handler.
func New(g Generator, opts ...Option) *Handler {
	h := &Handler{
		generator:    g,
		checks:       make(map[string]CheckFunc),
		logger:       logger.NewNope(),
		maxBodyBytes: 10 << 20,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router builds the route table.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(requestID, h.recoverer, h.accessLog)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/generate-invoice", h.generateInvoice).Methods(http.MethodPost)
	api.HandleFunc("/parse-csv", h.parseCSV).Methods(http.MethodPost)
	api.HandleFunc("/batches/{id}", h.getBatch).Methods(http.MethodGet)

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
