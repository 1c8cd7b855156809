package handlers

import (
	"net/http"

	"careergraph/application/queries"
	querybus "careergraph/application/queries/bus"
	apperrors "careergraph/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SimilarityHandler handles similarity graph HTTP requests
type SimilarityHandler struct {
	base
}

// NewSimilarityHandler creates a new similarity handler
func NewSimilarityHandler(queryBus *querybus.QueryBus, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *SimilarityHandler {
	return &SimilarityHandler{base: newBase(queryBus, errorHandler, logger)}
}

// SimilarOfficers handles GET /officers/{identityNo}/similar?attribute=
func (h *SimilarityHandler) SimilarOfficers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, similarQuery(r))
}

func similarQuery(r *http.Request) queries.SimilarOfficersQuery {
	return queries.SimilarOfficersQuery{
		IdentityNo: chi.URLParam(r, "identityNo"),
		Attribute:  r.URL.Query().Get("attribute"),
	}
}
