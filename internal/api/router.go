// Package api exposes pipeline validation over HTTP for the visual editor.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/leapstack-labs/leapflow/internal/config"
	"github.com/leapstack-labs/leapflow/internal/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures the router.
type Options struct {
	Registry       *registry.Registry
	Logger         *slog.Logger
	Version        string
	MaxBodyBytes   int64
	AllowedOrigins []string
	// Registerer receives the submission metrics and Gatherer serves /metrics.
	// A private registry is used unless both are set.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds the HTTP handler for the pipeline service.
func NewRouter(opts Options) http.Handler {
	if opts.Registry == nil {
		opts.Registry = registry.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	if opts.Registerer == nil || opts.Gatherer == nil {
		reg := prometheus.NewRegistry()
		opts.Registerer, opts.Gatherer = reg, reg
	}

	h := &handlers{
		registry:     opts.Registry,
		logger:       opts.Logger,
		metrics:      NewMetrics(opts.Registerer),
		version:      opts.Version,
		maxBodyBytes: opts.MaxBodyBytes,
		now:          time.Now,
	}

	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(opts.Logger),
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	r.Get("/", h.root)
	r.Get("/health", h.health)
	r.Get("/node-types", h.nodeTypes)
	r.Route("/pipelines", func(r chi.Router) {
		r.Post("/parse", h.parse)
		r.Get("/test", h.pipelineTest)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, opts.Logger, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, opts.Logger, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// requestLogger logs one line per request at debug level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
