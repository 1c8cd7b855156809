package handlers

import (
	"encoding/json"
	"net/http"

	"careergraph/application/commands"
	"careergraph/application/commands/bus"
	"careergraph/application/queries"
	querybus "careergraph/application/queries/bus"
	"careergraph/pkg/common"
	apperrors "careergraph/pkg/errors"

	"go.uber.org/zap"
)

// DatasetHandler handles dataset maintenance requests
type DatasetHandler struct {
	base
	commandBus *bus.CommandBus
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *DatasetHandler {
	return &DatasetHandler{
		base:       newBase(queryBus, errorHandler, logger),
		commandBus: commandBus,
	}
}

// Report handles GET /dataset
func (h *DatasetHandler) Report(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, queries.DatasetReportQuery{})
}

// Reload handles POST /dataset/reload and returns the new cleaning report
func (h *DatasetHandler) Reload(w http.ResponseWriter, r *http.Request) {
	var cmd commands.ReloadDatasetCommand
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body").WithCause(err))
			return
		}
	}
	if cmd.Reason == "" {
		cmd.Reason = "api"
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	report, ok := h.ask(w, r, queries.DatasetReportQuery{})
	if !ok {
		return
	}
	common.RespondJSON(w, r, http.StatusOK, report)
}
