// Injector for the provider set in wire.go, written out in the form wire
// emits. go generate ./infrastructure/di replaces it with the generated file.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"context"

	"careergraph/infrastructure/config"
)

// Injectors from wire.go:

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	domainConfig := ProvideDomainConfig(cfg)
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	collector := ProvideMetrics()
	store, err := ProvideOfficerStore(ctx, cfg, domainConfig, collector, logger)
	if err != nil {
		return nil, nil, err
	}
	datasetReloader := ProvideDatasetReloader(store, collector)
	commandBus, err := ProvideCommandBus(datasetReloader, logger)
	if err != nil {
		return nil, nil, err
	}
	fileWatcher, cleanup, err := ProvideDatasetWatcher(cfg, store, commandBus, logger)
	if err != nil {
		return nil, nil, err
	}
	officerRepository := ProvideOfficerRepository(store)
	overlapRepository, cleanup2, err := ProvideOverlapRepository(cfg, officerRepository, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	officerHandler := ProvideOfficerHandler(officerRepository, logger)
	relationshipGraphBuilder := ProvideRelationshipGraphBuilder(domainConfig, logger)
	overlapHandler := ProvideOverlapHandler(officerRepository, overlapRepository, relationshipGraphBuilder, domainConfig, logger)
	similarityGraphBuilder := ProvideSimilarityGraphBuilder(domainConfig, logger)
	similarityHandler := ProvideSimilarityHandler(officerRepository, similarityGraphBuilder, logger)
	queryBus, err := ProvideQueryBus(officerHandler, overlapHandler, similarityHandler, collector)
	if err != nil {
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	tokenBucketLimiter, cleanup3 := ProvideRateLimiter(cfg)
	errorHandler := ProvideErrorHandler(cfg, logger)
	container := &Container{
		Config:       cfg,
		DomainConfig: domainConfig,
		Logger:       logger,
		Store:        store,
		Watcher:      fileWatcher,
		Overlaps:     overlapRepository,
		QueryBus:     queryBus,
		CommandBus:   commandBus,
		Metrics:      collector,
		RateLimiter:  tokenBucketLimiter,
		ErrorHandler: errorHandler,
	}
	return container, func() {
		cleanup3()
		cleanup2()
		cleanup()
	}, nil
}
