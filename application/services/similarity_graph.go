package services

import (
	"fmt"

	"careergraph/domain/config"
	"careergraph/domain/core/aggregates"
	"careergraph/domain/core/entities"
	"careergraph/domain/core/valueobjects"

	"go.uber.org/zap"
)

const (
	minNodeSize = 10
	maxNodeSize = 40
)

// Layouter positions the nodes of a graph
type Layouter interface {
	Apply(g *aggregates.Graph)
}

// SimilarityGraphBuilder links a selected officer to every officer sharing an attribute value
type SimilarityGraphBuilder struct {
	cfg    *config.DomainConfig
	layout Layouter
	colors *ColorScale
	logger *zap.Logger
}

// NewSimilarityGraphBuilder creates a similarity graph builder
func NewSimilarityGraphBuilder(cfg *config.DomainConfig, layout Layouter, logger *zap.Logger) *SimilarityGraphBuilder {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if layout == nil {
		layout = DefaultSpringLayout()
	}
	return &SimilarityGraphBuilder{
		cfg:    cfg,
		layout: layout,
		colors: NewReversedYlGnBu(),
		logger: logger,
	}
}

// Build always contains the selected officer. Node size and color follow
// degree, and positions are recomputed on every call.
func (b *SimilarityGraphBuilder) Build(officers []*entities.Officer, selected *entities.Officer, attr valueobjects.Attribute) (*aggregates.Graph, error) {
	graph := aggregates.NewGraphWithConfig(aggregates.KindSimilarity, b.cfg)

	if _, err := graph.UpsertNode(selected.IdentityNo, selected.Name, tooltipFor(selected, attr), ""); err != nil {
		return nil, fmt.Errorf("failed to add selected officer: %w", err)
	}

	for _, other := range officers {
		if other.IdentityNo == selected.IdentityNo {
			continue
		}
		if !selected.SharesAttribute(other, attr) {
			continue
		}
		if _, err := graph.UpsertNode(other.IdentityNo, other.Name, tooltipFor(other, attr), ""); err != nil {
			return nil, fmt.Errorf("failed to add officer %q: %w", other.IdentityNo, err)
		}
		if _, _, err := graph.ConnectNodes(selected.IdentityNo, other.IdentityNo, attr.Label()); err != nil {
			return nil, fmt.Errorf("failed to connect officer %q: %w", other.IdentityNo, err)
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}
	b.paint(graph)
	b.layout.Apply(graph)

	b.logger.Debug("Similarity graph built",
		zap.String("identity_no", selected.IdentityNo),
		zap.String("attribute", string(attr)),
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("edges", graph.EdgeCount()),
	)
	return graph, nil
}

// paint sets node size and color from degree
func (b *SimilarityGraphBuilder) paint(graph *aggregates.Graph) {
	degrees := graph.Degrees()
	lo, hi := 0, 0
	first := true
	for _, d := range degrees {
		if first {
			lo, hi = d, d
			first = false
			continue
		}
		lo = min(lo, d)
		hi = max(hi, d)
	}

	for _, node := range graph.Nodes() {
		d := degrees[node.ID()]
		size := float64(minNodeSize)
		if hi > lo {
			size += float64(maxNodeSize-minNodeSize) * float64(d-lo) / float64(hi-lo)
		}
		node.Paint(b.colors.At(float64(d), float64(lo), float64(hi)), size)
	}
}

func tooltipFor(o *entities.Officer, attr valueobjects.Attribute) string {
	value, ok := o.AttributeValue(attr)
	if !ok {
		value = "missing"
	}
	return fmt.Sprintf("%s (%s) - %s: %s", o.Name, o.IdentityNo, attr.Label(), value)
}
