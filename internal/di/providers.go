package di

import (
	"context"
	"net/http"
	"time"

	"github.com/google/wire"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"taskboard/internal/api"
	"taskboard/internal/client"
	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/metrics"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/server"
	"taskboard/internal/services"
	"taskboard/internal/tracing"
	"taskboard/internal/views"
	"taskboard/internal/web"
)

// DefaultOrganizationName names the organization created by Seed.
const DefaultOrganizationName = "Voice AI"

// APIServer is the assembled GraphQL server.
type APIServer struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *metrics.Collector
	Tracer   trace.Tracer
	Services *services.ServiceContainer
	Schema   *api.Schema
}

// Handler builds the HTTP surface of the server.
func (s *APIServer) Handler() http.Handler {
	return api.NewRouter(s.Schema, api.RouterConfig{
		AllowedOrigins: s.Config.Server.AllowedOrigins,
		Metrics:        s.Metrics,
		Tracer:         s.Tracer,
		Logger:         s.Logger,
	})
}

// Seed makes sure the configured organization exists.
func (s *APIServer) Seed(ctx context.Context) error {
	org, created, err := s.Services.Organizations.Ensure(ctx, DefaultOrganizationName, s.Config.API.OrgSlug, "")
	if err != nil {
		return err
	}
	if created {
		s.Logger.Info("seeded organization", zap.String("slug", org.Slug), zap.String("id", org.ID))
	}
	return nil
}

// Run serves until ctx is cancelled.
func (s *APIServer) Run(ctx context.Context) error {
	return server.Serve(ctx, s.Config.Server.Addr, s.Handler(), s.Logger)
}

// Terminal is what the terminal commands need: a client and the view options.
type Terminal struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Collector
	API     client.API
}

// ViewOptions returns the options views should be created with.
func (t *Terminal) ViewOptions() views.Options {
	return views.Options{Logger: t.Logger, Metrics: t.Metrics}
}

// Dashboard creates the polling dashboard for the configured organization.
func (t *Terminal) Dashboard() *views.Dashboard {
	return views.NewDashboard(t.API, t.Config.API.OrgSlug, t.Config.Web.PollInterval, t.ViewOptions())
}

// WebClient is the assembled browser front end.
type WebClient struct {
	Config    *config.Config
	Logger    *zap.Logger
	Dashboard *views.Dashboard
	Server    *web.Server
}

// Run polls and serves until ctx is cancelled.
func (w *WebClient) Run(ctx context.Context) error {
	return w.Server.Run(ctx, w.Config.Web.Addr)
}

// ProvideLogger creates the process logger from the log section.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Environment, cfg.Log.Level)
}

// ProvideMetrics creates a collector on its own registry.
func ProvideMetrics() *metrics.Collector {
	return metrics.NewCollector()
}

// ProvideTracing starts the tracer provider; the cleanup flushes it.
func ProvideTracing(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*tracing.Provider, func(), error) {
	provider, err := tracing.Init(ctx, tracing.Config{
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.OTLPEndpoint,
	})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}
	return provider, cleanup, nil
}

// ProvideTracer returns the service tracer.
func ProvideTracer(provider *tracing.Provider) trace.Tracer {
	return provider.Tracer()
}

// ProvideRepository opens the database for the configured environment.
func ProvideRepository(cfg *config.Config, logger *zap.Logger) (sqlite.Repository, func(), error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := repo.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}
	return repo, cleanup, nil
}

// ProvideServices builds the service layer over repo.
func ProvideServices(repo sqlite.Repository) *services.ServiceContainer {
	return services.NewServiceContainer(repo)
}

// ProvideSchema builds the GraphQL schema.
func ProvideSchema(svc *services.ServiceContainer, logger *zap.Logger) (*api.Schema, error) {
	return api.NewSchema(svc, logger)
}

// ProvideClient creates the GraphQL client for the configured endpoint.
func ProvideClient(cfg *config.Config, collector *metrics.Collector, tracer trace.Tracer, logger *zap.Logger) *client.Client {
	return client.New(cfg.API.Endpoint,
		client.WithMetrics(collector),
		client.WithTracer(tracer),
		client.WithLogger(logger),
	)
}

// ProvideDashboard creates the shared dashboard view.
func ProvideDashboard(cfg *config.Config, api client.API, collector *metrics.Collector, logger *zap.Logger) *views.Dashboard {
	return views.NewDashboard(api, cfg.API.OrgSlug, cfg.Web.PollInterval, views.Options{
		Logger:  logger,
		Metrics: collector,
	})
}

// ProvideWebServer creates the browser front end.
func ProvideWebServer(dashboard *views.Dashboard, api client.API, collector *metrics.Collector, tracer trace.Tracer, logger *zap.Logger) (*web.Server, error) {
	return web.NewServer(dashboard, api, web.Config{
		Logger:  logger,
		Metrics: collector,
		Tracer:  tracer,
	})
}

// ObservabilitySet provides logging, metrics and tracing.
var ObservabilitySet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideTracing,
	ProvideTracer,
)

// ServerSet provides the GraphQL server and its storage.
var ServerSet = wire.NewSet(
	ObservabilitySet,
	ProvideRepository,
	ProvideServices,
	ProvideSchema,
	wire.Struct(new(APIServer), "*"),
)

// ClientSet provides the GraphQL client behind client.API.
var ClientSet = wire.NewSet(
	ObservabilitySet,
	ProvideClient,
	wire.Bind(new(client.API), new(*client.Client)),
)
