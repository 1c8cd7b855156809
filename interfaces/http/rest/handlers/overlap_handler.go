package handlers

import (
	"net/http"
	"strconv"

	"careergraph/application/queries"
	querybus "careergraph/application/queries/bus"
	apperrors "careergraph/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OverlapHandler handles colleague overlap HTTP requests
type OverlapHandler struct {
	base
}

// NewOverlapHandler creates a new overlap handler
func NewOverlapHandler(queryBus *querybus.QueryBus, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *OverlapHandler {
	return &OverlapHandler{base: newBase(queryBus, errorHandler, logger)}
}

// FindOverlaps handles GET /overlaps?person=&ministry=&from=&to=
func (h *OverlapHandler) FindOverlaps(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.serve(w, r, queries.FindOverlapsQuery{
		SelectedPerson: q.Get("person"),
		MinistryName:   q.Get("ministry"),
		PeriodStart:    q.Get("from"),
		PeriodEnd:      q.Get("to"),
	})
}

// ExperienceColleagues handles GET /officers/{identityNo}/experiences/{index}/colleagues
func (h *OverlapHandler) ExperienceColleagues(w http.ResponseWriter, r *http.Request) {
	query, err := colleaguesQuery(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.serve(w, r, query)
}

func colleaguesQuery(r *http.Request) (queries.ExperienceColleaguesQuery, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return queries.ExperienceColleaguesQuery{}, apperrors.NewValidationError("experience index must be an integer").
			WithDetails(map[string]interface{}{"index": raw})
	}
	return queries.ExperienceColleaguesQuery{
		IdentityNo:      chi.URLParam(r, "identityNo"),
		ExperienceIndex: index,
	}, nil
}
