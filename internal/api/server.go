package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"taskboard/internal/metrics"
	"taskboard/internal/middleware"
)

// RouterConfig holds what the API router needs beyond the schema.
type RouterConfig struct {
	AllowedOrigins []string
	Metrics        *metrics.Collector
	Tracer         trace.Tracer
	Logger         *zap.Logger
}

func (c RouterConfig) withDefaults() RouterConfig {
	if c.Metrics == nil {
		c.Metrics = metrics.NewCollector()
	}
	if c.Tracer == nil {
		c.Tracer = noop.NewTracerProvider().Tracer("taskboard/api")
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// NewRouter mounts the GraphQL endpoint, health check and metrics.
func NewRouter(schema *Schema, cfg RouterConfig) http.Handler {
	cfg = cfg.withDefaults()
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.Metrics(cfg.Metrics))
	router.Use(middleware.Tracing(cfg.Tracer))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	graphqlHandler := NewHandler(schema, cfg.Metrics, cfg.Tracer, cfg.Logger)
	router.Method(http.MethodPost, "/graphql", graphqlHandler)
	router.Method(http.MethodGet, "/graphql", graphqlHandler)

	router.Get("/health", Health)
	router.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	return router
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
