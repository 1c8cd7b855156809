package services

import (
	"errors"
	"fmt"

	"careergraph/domain/config"
	"careergraph/domain/core/aggregates"
	"careergraph/domain/core/entities"

	"go.uber.org/zap"
)

// RelationshipGraphBuilder turns overlap rows into a people graph
type RelationshipGraphBuilder struct {
	cfg    *config.DomainConfig
	logger *zap.Logger
}

// NewRelationshipGraphBuilder creates a relationship graph builder
func NewRelationshipGraphBuilder(cfg *config.DomainConfig, logger *zap.Logger) *RelationshipGraphBuilder {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &RelationshipGraphBuilder{
		cfg:    cfg,
		logger: logger,
	}
}

// OverlapTooltip is the hover text shared by both people of a row and their edge
func OverlapTooltip(row entities.OverlapRow) string {
	return fmt.Sprintf("Worked at %s from %s to %s", row.Ministry, row.OverlapStart, row.OverlapEnd)
}

// Build adds one edge per row between the path's first and last person.
// Nodes are keyed by name; a later row restyles an existing node, an edge
// already present for the pair is kept, and self pairs add no edge.
func (b *RelationshipGraphBuilder) Build(selectedName string, rows []entities.OverlapRow) (*aggregates.Graph, error) {
	graph := aggregates.NewGraphWithConfig(aggregates.KindRelationship, b.cfg)

	for _, row := range rows {
		person1 := row.PathStart()
		person2 := row.PathEnd()
		if person1 == "" || person2 == "" {
			b.logger.Warn("Skipping overlap row without path endpoints",
				zap.String("matched", row.MatchedPerson),
			)
			continue
		}
		tooltip := OverlapTooltip(row)

		if _, err := graph.UpsertNode(person1, person1, tooltip, b.colorFor(person1, selectedName)); err != nil {
			return nil, fmt.Errorf("failed to add node %q: %w", person1, err)
		}
		if _, err := graph.UpsertNode(person2, person2, tooltip, b.colorFor(person2, selectedName)); err != nil {
			return nil, fmt.Errorf("failed to add node %q: %w", person2, err)
		}

		if _, _, err := graph.ConnectNodes(person1, person2, tooltip); err != nil {
			if errors.Is(err, aggregates.ErrSelfConnection) {
				continue
			}
			return nil, fmt.Errorf("failed to connect %q and %q: %w", person1, person2, err)
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return graph, nil
}

func (b *RelationshipGraphBuilder) colorFor(name, selectedName string) string {
	if name == selectedName {
		return b.cfg.SelectedNodeColor
	}
	return b.cfg.DefaultNodeColor
}
