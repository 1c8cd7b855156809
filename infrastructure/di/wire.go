//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"careergraph/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideMetrics,
	ProvideOfficerStore,
	ProvideDatasetReloader,
	ProvideOfficerRepository,
	ProvideDatasetWatcher,
	ProvideOverlapRepository,
	ProvideRelationshipGraphBuilder,
	ProvideSimilarityGraphBuilder,
	ProvideOfficerHandler,
	ProvideOverlapHandler,
	ProvideSimilarityHandler,
	ProvideQueryBus,
	ProvideCommandBus,
	ProvideRateLimiter,
	ProvideErrorHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil // Wire will replace this
}
