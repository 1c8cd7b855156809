package services

import (
	"careergraph/domain/core/aggregates"

	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
)

// SpringLayout places graph nodes with the Eades spring embedder
type SpringLayout struct {
	Updates   int
	Repulsion float64
	Rate      float64
	Theta     float64
}

// DefaultSpringLayout returns the layout used by the similarity dashboard
func DefaultSpringLayout() SpringLayout {
	return SpringLayout{
		Updates:   100,
		Repulsion: 1,
		Rate:      0.05,
		Theta:     0.2,
	}
}

// Apply computes a position for every node of g. Graphs with fewer than two
// nodes are placed at the origin.
func (l SpringLayout) Apply(g *aggregates.Graph) {
	nodes := g.Nodes()
	if len(nodes) < 2 {
		for _, n := range nodes {
			n.MoveTo(0, 0)
		}
		return
	}

	ids := make(map[string]int64, len(nodes))
	ug := simple.NewUndirectedGraph()
	for i, n := range nodes {
		id := int64(i)
		ids[n.ID()] = id
		ug.AddNode(simple.Node(id))
	}
	for _, e := range g.Edges() {
		from, to := ids[e.SourceID], ids[e.TargetID]
		if from == to {
			continue
		}
		ug.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	eades := layout.EadesR2{
		Updates:   l.Updates,
		Repulsion: l.Repulsion,
		Rate:      l.Rate,
		Theta:     l.Theta,
	}
	optimizer := layout.NewOptimizerR2(ug, eades.Update)
	for optimizer.Update() {
	}

	for _, n := range nodes {
		pos := optimizer.Coord2(ids[n.ID()])
		n.MoveTo(pos.X, pos.Y)
	}
}
