package handlers

import (
	"context"

	"careergraph/application/ports"
	"careergraph/application/queries"
	"careergraph/application/services"
	"careergraph/domain/core/valueobjects"
	apperrors "careergraph/pkg/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SimilarityHandler builds similarity graphs
type SimilarityHandler struct {
	officers ports.OfficerRepository
	builder  *services.SimilarityGraphBuilder
	logger   *zap.Logger
}

// NewSimilarityHandler creates a new similarity handler
func NewSimilarityHandler(officers ports.OfficerRepository, builder *services.SimilarityGraphBuilder, logger *zap.Logger) *SimilarityHandler {
	return &SimilarityHandler{
		officers: officers,
		builder:  builder,
		logger:   logger,
	}
}

// SimilarOfficers builds the similarity graph for the selected officer
func (h *SimilarityHandler) SimilarOfficers(ctx context.Context, query queries.SimilarOfficersQuery) (*queries.SimilarOfficersResult, error) {
	ctx, span := otel.Tracer("careergraph/queries").Start(ctx, "similarity.build")
	defer span.End()

	attr, err := valueobjects.ParseAttribute(query.Attribute)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	span.SetAttributes(attribute.String("similarity.attribute", string(attr)))

	selected, err := h.officers.ByIdentity(ctx, query.IdentityNo)
	if err != nil {
		return nil, translateError(err, "officer")
	}
	officers, err := h.officers.Officers(ctx)
	if err != nil {
		return nil, translateError(err, "officers")
	}

	graph, err := h.builder.Build(officers, selected, attr)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build similarity graph").WithCause(err)
	}

	result := &queries.SimilarOfficersResult{
		IdentityNo:     selected.IdentityNo,
		Name:           selected.Name,
		Attribute:      string(attr),
		AttributeLabel: attr.Label(),
		Graph:          queries.NewGraphData(graph),
	}
	if value, ok := selected.AttributeValue(attr); ok {
		result.Value = &value
	}
	span.SetAttributes(attribute.Int("similarity.nodes", graph.NodeCount()))
	return result, nil
}
