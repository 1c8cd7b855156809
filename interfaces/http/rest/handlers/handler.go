package handlers

import (
	"net/http"

	querybus "careergraph/application/queries/bus"
	"careergraph/pkg/common"
	apperrors "careergraph/pkg/errors"

	"go.uber.org/zap"
)

// base carries what every HTTP handler needs to dispatch a query
type base struct {
	queryBus *querybus.QueryBus
	errors   *apperrors.ErrorHandler
	logger   *zap.Logger
}

func newBase(queryBus *querybus.QueryBus, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) base {
	return base{
		queryBus: queryBus,
		errors:   errorHandler,
		logger:   logger,
	}
}

// ask dispatches query and writes the error envelope on failure
func (b base) ask(w http.ResponseWriter, r *http.Request, query querybus.Query) (interface{}, bool) {
	result, err := b.queryBus.Ask(r.Context(), query)
	if err != nil {
		b.errors.Handle(w, r, err)
		return nil, false
	}
	return result, true
}

// serve dispatches query and writes its result in the standard envelope
func (b base) serve(w http.ResponseWriter, r *http.Request, query querybus.Query) {
	result, ok := b.ask(w, r, query)
	if !ok {
		return
	}
	common.RespondJSON(w, r, http.StatusOK, result)
}
