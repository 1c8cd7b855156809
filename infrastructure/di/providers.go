package di

import (
	"context"
	"fmt"

	"careergraph/application/commands"
	"careergraph/application/commands/bus"
	commands_handlers "careergraph/application/commands/handlers"
	"careergraph/application/ports"
	"careergraph/application/queries"
	querybus "careergraph/application/queries/bus"
	queries_handlers "careergraph/application/queries/handlers"
	"careergraph/application/services"
	domainconfig "careergraph/domain/config"
	"careergraph/infrastructure/config"
	"careergraph/infrastructure/persistence/dataset"
	"careergraph/infrastructure/persistence/memory"
	"careergraph/infrastructure/persistence/neo4j"
	apperrors "careergraph/pkg/errors"
	"careergraph/pkg/observability"
	"careergraph/pkg/ratelimit"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", cfg.ServiceName)), nil
}

// ProvideDomainConfig derives the domain rules from the application config
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	domainCfg := domainconfig.DefaultDomainConfig()
	domainCfg.MaxOverlapRows = cfg.MaxOverlapRows
	return domainCfg
}

// ProvideMetrics creates the metrics collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("careergraph")
}

// ProvideOfficerStore loads the dataset. A missing required column fails startup.
func ProvideOfficerStore(
	ctx context.Context,
	cfg *config.Config,
	domainCfg *domainconfig.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*dataset.Store, error) {
	store := dataset.NewStore(cfg.DatasetPath, domainCfg, logger)
	if err := newDatasetReloader(store, metrics).Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return store, nil
}

// datasetReloader reloads the store and records the outcome
type datasetReloader struct {
	store   *dataset.Store
	metrics *observability.Collector
}

func newDatasetReloader(store *dataset.Store, metrics *observability.Collector) *datasetReloader {
	return &datasetReloader{store: store, metrics: metrics}
}

// Reload implements ports.DatasetReloader
func (r *datasetReloader) Reload(ctx context.Context) error {
	if err := r.store.Reload(ctx); err != nil {
		r.metrics.ObserveReload(0, 0, err)
		return err
	}
	report, err := r.store.Report(ctx)
	if err != nil {
		return err
	}
	r.metrics.ObserveReload(report.RowsKept, report.OutliersRemoved, nil)
	return nil
}

// ProvideDatasetReloader exposes reloads to the command bus
func ProvideDatasetReloader(store *dataset.Store, metrics *observability.Collector) ports.DatasetReloader {
	return newDatasetReloader(store, metrics)
}

// ProvideOfficerRepository exposes the store through its port
func ProvideOfficerRepository(store *dataset.Store) ports.OfficerRepository {
	return store
}

// ProvideDatasetWatcher reloads the dataset when its file changes. Watching
// is off inside Lambda, where the file is part of the deployment. Reloads go
// through the command bus so they queue behind on-demand reloads.
func ProvideDatasetWatcher(
	cfg *config.Config,
	store *dataset.Store,
	commandBus *bus.CommandBus,
	logger *zap.Logger,
) (*config.FileWatcher, func(), error) {
	if !cfg.WatchDataset || cfg.IsLambda {
		return nil, func() {}, nil
	}

	watcher, err := config.NewFileWatcher(store.Path(), reloadThroughBus(commandBus), logger)
	if err != nil {
		return nil, nil, err
	}
	return watcher, func() { watcher.Close() }, nil
}

// reloadThroughBus sends a ReloadDatasetCommand for each file change
func reloadThroughBus(commandBus *bus.CommandBus) config.ReloadFunc {
	return func(ctx context.Context) error {
		return commandBus.Send(ctx, commands.ReloadDatasetCommand{Reason: "dataset file changed"})
	}
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(reloader ports.DatasetReloader, logger *zap.Logger) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.SerialMiddleware(),
	)
	if err := commandBus.Register(commands.ReloadDatasetCommand{}, commands_handlers.NewReloadDatasetHandler(reloader, logger)); err != nil {
		return nil, err
	}
	return commandBus, nil
}

// ProvideOverlapRepository selects the graph backend
func ProvideOverlapRepository(
	cfg *config.Config,
	officers ports.OfficerRepository,
	logger *zap.Logger,
) (ports.OverlapRepository, func(), error) {
	if cfg.GraphBackend == config.BackendMemory {
		logger.Info("Using in-memory overlap backend")
		return memory.NewOverlapRepository(officers, logger), func() {}, nil
	}

	neoCfg := neo4j.Config{
		URI:                cfg.Neo4jURI,
		Username:           cfg.Neo4jUsername,
		Password:           cfg.Neo4jPassword,
		Database:           cfg.Neo4jDatabase,
		QueryTimeout:       cfg.Neo4jQueryTimeout,
		BreakerMaxRequests: cfg.BreakerMaxRequests,
		BreakerInterval:    cfg.BreakerInterval,
		BreakerTimeout:     cfg.BreakerTimeout,
	}
	driver, err := neo4j.NewDriver(neoCfg)
	if err != nil {
		return nil, nil, err
	}
	repo := neo4j.NewOverlapRepository(driver, neoCfg, logger)
	cleanup := func() {
		if err := repo.Close(context.Background()); err != nil {
			logger.Warn("Failed to close neo4j driver", zap.Error(err))
		}
	}
	logger.Info("Using neo4j overlap backend", zap.String("uri", cfg.Neo4jURI))
	return repo, cleanup, nil
}

// ProvideRelationshipGraphBuilder creates the relationship graph builder
func ProvideRelationshipGraphBuilder(domainCfg *domainconfig.DomainConfig, logger *zap.Logger) *services.RelationshipGraphBuilder {
	return services.NewRelationshipGraphBuilder(domainCfg, logger)
}

// ProvideSimilarityGraphBuilder creates the similarity graph builder
func ProvideSimilarityGraphBuilder(domainCfg *domainconfig.DomainConfig, logger *zap.Logger) *services.SimilarityGraphBuilder {
	return services.NewSimilarityGraphBuilder(domainCfg, services.DefaultSpringLayout(), logger)
}

// ProvideOfficerHandler creates the Record Store query handler
func ProvideOfficerHandler(officers ports.OfficerRepository, logger *zap.Logger) *queries_handlers.OfficerHandler {
	return queries_handlers.NewOfficerHandler(officers, logger)
}

// ProvideOverlapHandler creates the overlap query handler
func ProvideOverlapHandler(
	officers ports.OfficerRepository,
	overlaps ports.OverlapRepository,
	builder *services.RelationshipGraphBuilder,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *queries_handlers.OverlapHandler {
	return queries_handlers.NewOverlapHandler(officers, overlaps, builder, domainCfg, logger)
}

// ProvideSimilarityHandler creates the similarity query handler
func ProvideSimilarityHandler(
	officers ports.OfficerRepository,
	builder *services.SimilarityGraphBuilder,
	logger *zap.Logger,
) *queries_handlers.SimilarityHandler {
	return queries_handlers.NewSimilarityHandler(officers, builder, logger)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	officerHandler *queries_handlers.OfficerHandler,
	overlapHandler *queries_handlers.OverlapHandler,
	similarityHandler *queries_handlers.SimilarityHandler,
	metrics *observability.Collector,
) (*querybus.QueryBus, error) {
	return NewQueryBus(officerHandler, overlapHandler, similarityHandler, metrics)
}

// NewQueryBus registers every query on a new bus. metrics may be nil.
func NewQueryBus(
	officerHandler *queries_handlers.OfficerHandler,
	overlapHandler *queries_handlers.OverlapHandler,
	similarityHandler *queries_handlers.SimilarityHandler,
	metrics querybus.Metrics,
) (*querybus.QueryBus, error) {
	var middleware []querybus.Middleware
	if metrics != nil {
		middleware = append(middleware, querybus.NewMetricsMiddleware(metrics))
	}
	queryBus := querybus.NewQueryBus(middleware...)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetOfficerQuery{}, querybus.Typed(officerHandler.GetOfficer)},
		{queries.GetOfficerByNameQuery{}, querybus.Typed(officerHandler.GetOfficerByName)},
		{queries.ListOfficersQuery{}, querybus.Typed(officerHandler.ListOfficers)},
		{queries.ListNamesQuery{}, querybus.Typed(officerHandler.ListNames)},
		{queries.DatasetReportQuery{}, querybus.Typed(officerHandler.DatasetReport)},
		{queries.FindOverlapsQuery{}, querybus.Typed(overlapHandler.FindOverlaps)},
		{queries.ExperienceColleaguesQuery{}, querybus.Typed(overlapHandler.ExperienceColleagues)},
		{queries.SimilarOfficersQuery{}, querybus.Typed(similarityHandler.SimilarOfficers)},
	}
	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, reg.handler); err != nil {
			return nil, err
		}
	}
	return queryBus, nil
}

// ProvideRateLimiter creates the per-client limiter for graph queries
func ProvideRateLimiter(cfg *config.Config) (*ratelimit.TokenBucketLimiter, func()) {
	limiter := ratelimit.NewTokenBucketLimiter(cfg.RateLimitBurst, cfg.RateLimitRefill)
	return limiter, limiter.Stop
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger, cfg.IsDevelopment())
}
