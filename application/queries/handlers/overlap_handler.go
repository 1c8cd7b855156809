package handlers

import (
	"context"
	"fmt"

	"careergraph/application/ports"
	"careergraph/application/queries"
	"careergraph/application/services"
	"careergraph/domain/config"
	"careergraph/domain/core/entities"
	"careergraph/domain/core/valueobjects"
	apperrors "careergraph/pkg/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// OverlapHandler runs the overlap engine and builds the relationship graph
type OverlapHandler struct {
	officers ports.OfficerRepository
	overlaps ports.OverlapRepository
	builder  *services.RelationshipGraphBuilder
	cfg      *config.DomainConfig
	logger   *zap.Logger
}

// NewOverlapHandler creates a new overlap handler
func NewOverlapHandler(
	officers ports.OfficerRepository,
	overlaps ports.OverlapRepository,
	builder *services.RelationshipGraphBuilder,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *OverlapHandler {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &OverlapHandler{
		officers: officers,
		overlaps: overlaps,
		builder:  builder,
		cfg:      cfg,
		logger:   logger,
	}
}

// FindOverlaps runs the engine with explicit parameters
func (h *OverlapHandler) FindOverlaps(ctx context.Context, query queries.FindOverlapsQuery) (*queries.FindOverlapsResult, error) {
	start, _ := valueobjects.ParsePeriodDate(query.PeriodStart).Time()
	end, _ := valueobjects.ParsePeriodDate(query.PeriodEnd).Time()

	rows, graph, err := h.run(ctx, ports.OverlapCriteria{
		SelectedPerson: query.SelectedPerson,
		MinistryName:   query.MinistryName,
		PeriodStart:    start,
		PeriodEnd:      end,
		Limit:          h.cfg.MaxOverlapRows,
	})
	if err != nil {
		return nil, err
	}

	result := &queries.FindOverlapsResult{
		Rows:  rows,
		Graph: graph,
	}
	if len(rows) == 0 {
		result.NoResults = true
		result.Message = queries.NoResultsMessage
	}
	return result, nil
}

// ExperienceColleagues resolves one experience of an officer and queries its colleagues.
// An experience without an inferred ministry is skipped without querying.
func (h *OverlapHandler) ExperienceColleagues(ctx context.Context, query queries.ExperienceColleaguesQuery) (*queries.ExperienceColleaguesResult, error) {
	officer, err := h.officers.RecordByIdentity(ctx, query.IdentityNo)
	if err != nil {
		return nil, translateError(err, "officer")
	}

	exp, ok := officer.ExperienceAt(query.ExperienceIndex)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("experience %d", query.ExperienceIndex))
	}

	result := &queries.ExperienceColleaguesResult{
		IdentityNo: officer.IdentityNo,
		Name:       officer.Name,
		Experience: exp,
		Rows:       []entities.OverlapRow{},
	}

	ministry, ok := exp.ResolvedMinistry()
	if !ok {
		h.logger.Info("Skipping overlap query for experience without inferred ministry",
			zap.String("identity_no", officer.IdentityNo),
			zap.Int("experience_index", query.ExperienceIndex),
		)
		result.Skipped = true
		return result, nil
	}

	periodStart, okFrom := exp.PeriodFrom.Time()
	periodEnd, okTo := exp.PeriodTo.Time()
	if !okFrom || !okTo {
		return nil, apperrors.NewValidationError("selected experience has no valid period").
			WithDetails(map[string]interface{}{
				"period_from": exp.PeriodFrom.Raw(),
				"period_to":   exp.PeriodTo.Raw(),
			})
	}

	rows, graph, err := h.run(ctx, ports.OverlapCriteria{
		SelectedPerson: officer.Name,
		MinistryName:   ministry,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		Limit:          h.cfg.MaxOverlapRows,
	})
	if err != nil {
		return nil, err
	}

	result.Rows = rows
	result.Graph = graph
	if len(rows) == 0 {
		result.NoResults = true
		result.Message = queries.NoResultsMessage
	}
	return result, nil
}

func (h *OverlapHandler) run(ctx context.Context, criteria ports.OverlapCriteria) ([]entities.OverlapRow, *queries.GraphData, error) {
	ctx, span := otel.Tracer("careergraph/queries").Start(ctx, "overlaps.run")
	defer span.End()
	span.SetAttributes(attribute.String("overlap.ministry", criteria.MinistryName))

	rows, err := h.overlaps.FindOverlaps(ctx, criteria)
	if err != nil {
		h.logger.Error("Overlap query failed",
			zap.String("ministry", criteria.MinistryName),
			zap.Error(err),
		)
		span.RecordError(err)
		return nil, nil, translateError(err, "overlaps")
	}
	if rows == nil {
		rows = []entities.OverlapRow{}
	}

	graph, err := h.builder.Build(criteria.SelectedPerson, rows)
	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to build relationship graph").WithCause(err)
	}
	return rows, queries.NewGraphData(graph), nil
}
