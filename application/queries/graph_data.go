package queries

import (
	"careergraph/domain/core/aggregates"
)

// GraphData is the renderer-facing form of a built graph
type GraphData struct {
	ID     string      `json:"id"`
	Kind   string      `json:"kind"`
	Layout string      `json:"layout"`
	Nodes  []GraphNode `json:"nodes"`
	Edges  []GraphEdge `json:"edges"`
	Stats  GraphStats  `json:"stats"`
}

// GraphNode is one rendered node
type GraphNode struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Title    string    `json:"title"`
	Color    string    `json:"color"`
	Size     float64   `json:"size,omitempty"`
	Degree   int       `json:"degree"`
	Position *Position `json:"position,omitempty"`
}

// Position is a layout coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GraphEdge is one rendered undirected edge
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Title  string `json:"title"`
}

// GraphStats contains graph statistics
type GraphStats struct {
	NodeCount int     `json:"node_count"`
	EdgeCount int     `json:"edge_count"`
	MaxDegree int     `json:"max_degree"`
	Density   float64 `json:"density"`
}

// NewGraphData converts a graph aggregate for rendering
func NewGraphData(g *aggregates.Graph) *GraphData {
	degrees := g.Degrees()
	data := &GraphData{
		ID:     g.ID().String(),
		Kind:   string(g.Kind()),
		Layout: string(g.Layout()),
		Nodes:  make([]GraphNode, 0, g.NodeCount()),
		Edges:  make([]GraphEdge, 0, g.EdgeCount()),
		Stats: GraphStats{
			NodeCount: g.NodeCount(),
			EdgeCount: g.EdgeCount(),
			Density:   g.Density(),
		},
	}

	for _, node := range g.Nodes() {
		gn := GraphNode{
			ID:     node.ID(),
			Label:  node.Label(),
			Title:  node.Title(),
			Color:  node.Color(),
			Size:   node.Size(),
			Degree: degrees[node.ID()],
		}
		if pos := node.Position(); pos != nil {
			gn.Position = &Position{X: pos.X, Y: pos.Y}
		}
		data.Stats.MaxDegree = max(data.Stats.MaxDegree, gn.Degree)
		data.Nodes = append(data.Nodes, gn)
	}

	for _, edge := range g.Edges() {
		data.Edges = append(data.Edges, GraphEdge{
			Source: edge.SourceID,
			Target: edge.TargetID,
			Title:  edge.Title,
		})
	}

	return data
}
