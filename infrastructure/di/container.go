package di

import (
	"context"

	"careergraph/application/commands/bus"
	"careergraph/application/ports"
	querybus "careergraph/application/queries/bus"
	domainconfig "careergraph/domain/config"
	"careergraph/infrastructure/config"
	"careergraph/infrastructure/persistence/dataset"
	apperrors "careergraph/pkg/errors"
	"careergraph/pkg/observability"
	"careergraph/pkg/ratelimit"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	DomainConfig *domainconfig.DomainConfig
	Logger       *zap.Logger
	Store        *dataset.Store
	Watcher      *config.FileWatcher
	Overlaps     ports.OverlapRepository
	QueryBus     *querybus.QueryBus
	CommandBus   *bus.CommandBus
	Metrics      *observability.Collector
	RateLimiter  *ratelimit.TokenBucketLimiter
	ErrorHandler *apperrors.ErrorHandler
}

// Ready reports whether the dataset is loaded and the graph backend answers
func (c *Container) Ready(ctx context.Context) error {
	if !c.Store.Loaded() {
		return ports.ErrDatasetNotLoaded
	}
	return c.Overlaps.Ping(ctx)
}
