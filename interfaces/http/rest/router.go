package rest

import (
	"context"
	"net/http"
	"time"

	"careergraph/application/commands/bus"
	querybus "careergraph/application/queries/bus"
	"careergraph/infrastructure/config"
	"careergraph/interfaces/http/rest/handlers"
	"careergraph/interfaces/http/rest/middleware"
	v1 "careergraph/interfaces/http/rest/v1"
	"careergraph/pkg/common"
	apperrors "careergraph/pkg/errors"
	"careergraph/pkg/observability"
	"careergraph/pkg/ratelimit"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// ReadinessFunc reports whether the service can answer queries
type ReadinessFunc func(ctx context.Context) error

// Router creates and configures the HTTP router
type Router struct {
	cfg          *config.Config
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	errorHandler *apperrors.ErrorHandler
	limiter      *ratelimit.TokenBucketLimiter
	metrics      *observability.Collector
	ready        ReadinessFunc
	logger       *zap.Logger
}

// NewRouter creates a new router instance. metrics and limiter may be nil.
func NewRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	limiter *ratelimit.TokenBucketLimiter,
	metrics *observability.Collector,
	ready ReadinessFunc,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:          cfg,
		commandBus:   commandBus,
		queryBus:     queryBus,
		errorHandler: errorHandler,
		limiter:      limiter,
		metrics:      metrics,
		ready:        ready,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil && rt.cfg.EnableMetrics {
		router.Use(middleware.Metrics(rt.metrics))
	}

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.metrics != nil && rt.cfg.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	queryLimit := rt.queryLimit()

	router.Mount("/api/v1", v1.NewRouter(v1.Handlers{
		Dataset:    handlers.NewDatasetHandler(rt.commandBus, rt.queryBus, rt.errorHandler, rt.logger),
		Officers:   handlers.NewOfficerHandler(rt.queryBus, rt.errorHandler, rt.logger),
		Overlaps:   handlers.NewOverlapHandler(rt.queryBus, rt.errorHandler, rt.logger),
		Similarity: handlers.NewSimilarityHandler(rt.queryBus, rt.errorHandler, rt.logger),
	}, queryLimit))

	router.Route("/dashboards", func(r chi.Router) {
		r.Use(queryLimit)
		dashboardHandler := handlers.NewDashboardHandler(rt.queryBus, rt.errorHandler, rt.logger)
		r.Get("/colleagues/{identityNo}/{index}", dashboardHandler.Colleagues)
		r.Get("/similarity/{identityNo}", dashboardHandler.Similarity)
	})

	return router
}

func (rt *Router) queryLimit() func(http.Handler) http.Handler {
	if rt.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	limit := rt.limiter.MaxTokens()
	window := (rt.cfg.RateLimitRefill * time.Duration(limit)).String()
	return middleware.RateLimit(rt.limiter, limit, window, rt.errorHandler, rt.logger)
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondRaw(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck reports ready once the dataset is loaded and the graph backend answers
func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	if rt.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := rt.ready(ctx); err != nil {
			rt.logger.Warn("Readiness check failed", zap.Error(err))
			common.RespondRaw(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": err.Error(),
			})
			return
		}
	}
	common.RespondRaw(w, http.StatusOK, map[string]string{"status": "ready"})
}
