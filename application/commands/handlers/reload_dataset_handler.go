package handlers

import (
	"context"
	"fmt"

	"careergraph/application/commands"
	"careergraph/application/commands/bus"
	"careergraph/application/ports"
	apperrors "careergraph/pkg/errors"

	"go.uber.org/zap"
)

// ReloadDatasetHandler handles dataset reload commands
type ReloadDatasetHandler struct {
	reloader ports.DatasetReloader
	logger   *zap.Logger
}

// NewReloadDatasetHandler creates a new reload handler
func NewReloadDatasetHandler(reloader ports.DatasetReloader, logger *zap.Logger) *ReloadDatasetHandler {
	return &ReloadDatasetHandler{
		reloader: reloader,
		logger:   logger,
	}
}

// Handle implements bus.CommandHandler
func (h *ReloadDatasetHandler) Handle(ctx context.Context, cmd bus.Command) error {
	reload, ok := cmd.(commands.ReloadDatasetCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	h.logger.Info("Reloading dataset", zap.String("reason", reload.Reason))
	if err := h.reloader.Reload(ctx); err != nil {
		return apperrors.NewUnavailableError("dataset reload").
			WithCode("RELOAD_FAILED").
			WithCause(err)
	}
	return nil
}
