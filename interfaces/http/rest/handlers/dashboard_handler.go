package handlers

import (
	"bytes"
	"net/http"

	"careergraph/application/queries"
	querybus "careergraph/application/queries/bus"
	"careergraph/interfaces/http/render"
	apperrors "careergraph/pkg/errors"

	"go.uber.org/zap"
)

// DashboardHandler serves the embeddable HTML dashboards
type DashboardHandler struct {
	base
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(queryBus *querybus.QueryBus, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{base: newBase(queryBus, errorHandler, logger)}
}

// Colleagues handles GET /dashboards/colleagues/{identityNo}/{index}
func (h *DashboardHandler) Colleagues(w http.ResponseWriter, r *http.Request) {
	query, err := colleaguesQuery(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	detail, ok := h.ask(w, r, queries.GetOfficerQuery{IdentityNo: query.IdentityNo})
	if !ok {
		return
	}
	result, ok := h.ask(w, r, query)
	if !ok {
		return
	}

	page := render.NewColleaguesPage(detail.(*queries.OfficerDetail), result.(*queries.ExperienceColleaguesResult))
	h.writePage(w, r, func(buf *bytes.Buffer) error { return render.Colleagues(buf, page) })
}

// Similarity handles GET /dashboards/similarity/{identityNo}?attribute=
func (h *DashboardHandler) Similarity(w http.ResponseWriter, r *http.Request) {
	result, ok := h.ask(w, r, similarQuery(r))
	if !ok {
		return
	}

	page := render.NewSimilarityPage(result.(*queries.SimilarOfficersResult))
	h.writePage(w, r, func(buf *bytes.Buffer) error { return render.Similarity(buf, page) })
}

// writePage renders into a buffer first so a template failure still yields an error envelope
func (h *DashboardHandler) writePage(w http.ResponseWriter, r *http.Request, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		h.logger.Error("Failed to render dashboard", zap.String("path", r.URL.Path), zap.Error(err))
		h.errors.Handle(w, r, apperrors.NewInternalError("failed to render dashboard").WithCause(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
