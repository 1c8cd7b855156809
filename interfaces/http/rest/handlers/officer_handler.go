package handlers

import (
	"net/http"

	"careergraph/application/queries"
	querybus "careergraph/application/queries/bus"
	"careergraph/pkg/common"
	apperrors "careergraph/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OfficerHandler handles Record Store HTTP requests
type OfficerHandler struct {
	base
}

// NewOfficerHandler creates a new officer handler
func NewOfficerHandler(queryBus *querybus.QueryBus, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *OfficerHandler {
	return &OfficerHandler{base: newBase(queryBus, errorHandler, logger)}
}

// ListOfficers handles GET /officers
func (h *OfficerHandler) ListOfficers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, queries.ListOfficersQuery{
		Name:       r.URL.Query().Get("name"),
		Pagination: common.ExtractPaginationParams(r),
	})
}

// ListNames handles GET /officers/names
func (h *OfficerHandler) ListNames(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, queries.ListNamesQuery{})
}

// GetOfficerByName handles GET /officers/names/{name}
func (h *OfficerHandler) GetOfficerByName(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, queries.GetOfficerByNameQuery{Name: chi.URLParam(r, "name")})
}

// GetOfficer handles GET /officers/{identityNo}
func (h *OfficerHandler) GetOfficer(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, queries.GetOfficerQuery{IdentityNo: chi.URLParam(r, "identityNo")})
}
