package aggregates

import (
	"errors"
	"time"

	"careergraph/domain/config"
	"careergraph/domain/core/entities"

	"github.com/google/uuid"
)

var (
	ErrNodeNotFound    = errors.New("node not found")
	ErrSelfConnection  = errors.New("cannot connect node to itself")
	ErrMaxNodesReached = errors.New("maximum nodes reached")
	ErrEmptyNodeID     = errors.New("node id cannot be empty")
)

// GraphID represents a unique graph identifier
type GraphID string

// NewGraphID creates a new random GraphID
func NewGraphID() GraphID {
	return GraphID(uuid.New().String())
}

// String returns the string representation
func (id GraphID) String() string {
	return string(id)
}

// GraphKind tells which dashboard produced a graph
type GraphKind string

const (
	KindRelationship GraphKind = "relationship"
	KindSimilarity   GraphKind = "similarity"
)

// LayoutType defines graph layout algorithms
type LayoutType string

const (
	LayoutForceDirected LayoutType = "force_directed"
	LayoutPhysics       LayoutType = "physics"
)

// Edge is an undirected connection between two nodes
type Edge struct {
	SourceID string
	TargetID string
	Title    string
}

type edgeKey struct {
	a, b string
}

func makeEdgeKey(x, y string) edgeKey {
	if x > y {
		x, y = y, x
	}
	return edgeKey{a: x, b: y}
}

// Graph is a rendering artifact built fresh for each query. Nodes and edges
// keep insertion order so that output is reproducible for the same input.
type Graph struct {
	id        GraphID
	kind      GraphKind
	layout    LayoutType
	nodes     map[string]*entities.Node
	nodeOrder []string
	edges     map[edgeKey]*Edge
	edgeOrder []edgeKey
	cfg       *config.DomainConfig
	createdAt time.Time
}

// NewGraph creates an empty graph with the default domain configuration
func NewGraph(kind GraphKind) *Graph {
	return NewGraphWithConfig(kind, nil)
}

// NewGraphWithConfig creates an empty graph
func NewGraphWithConfig(kind GraphKind, cfg *config.DomainConfig) *Graph {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	layout := LayoutPhysics
	if kind == KindSimilarity {
		layout = LayoutForceDirected
	}
	return &Graph{
		id:        NewGraphID(),
		kind:      kind,
		layout:    layout,
		nodes:     make(map[string]*entities.Node),
		edges:     make(map[edgeKey]*Edge),
		cfg:       cfg,
		createdAt: time.Now(),
	}
}

// ID returns the graph's unique identifier
func (g *Graph) ID() GraphID {
	return g.id
}

// Kind returns the dashboard kind
func (g *Graph) Kind() GraphKind {
	return g.kind
}

// Layout returns the layout the renderer should apply
func (g *Graph) Layout() LayoutType {
	return g.layout
}

// CreatedAt returns when the graph was built
func (g *Graph) CreatedAt() time.Time {
	return g.createdAt
}

// UpsertNode adds a node or, if the identity exists, rewrites its display
// attributes. Re-adding never duplicates a node.
func (g *Graph) UpsertNode(id, label, title, color string) (*entities.Node, error) {
	if id == "" {
		return nil, ErrEmptyNodeID
	}
	if node, exists := g.nodes[id]; exists {
		node.Restyle(label, title, color)
		return node, nil
	}
	if len(g.nodes) >= g.cfg.MaxNodesPerGraph {
		return nil, ErrMaxNodesReached
	}

	node := entities.NewNode(id, label, title, color)
	g.nodes[id] = node
	g.nodeOrder = append(g.nodeOrder, id)
	return node, nil
}

// ConnectNodes adds an undirected edge. An existing edge for the same pair is
// kept as first inserted and returned with added=false.
func (g *Graph) ConnectNodes(sourceID, targetID, title string) (edge *Edge, added bool, err error) {
	if _, ok := g.nodes[sourceID]; !ok {
		return nil, false, ErrNodeNotFound
	}
	if _, ok := g.nodes[targetID]; !ok {
		return nil, false, ErrNodeNotFound
	}
	if sourceID == targetID && !g.cfg.AllowSelfConnections {
		return nil, false, ErrSelfConnection
	}

	key := makeEdgeKey(sourceID, targetID)
	if existing, ok := g.edges[key]; ok {
		return existing, false, nil
	}

	edge = &Edge{SourceID: sourceID, TargetID: targetID, Title: title}
	g.edges[key] = edge
	g.edgeOrder = append(g.edgeOrder, key)
	return edge, true, nil
}

// GetNode retrieves a node by ID
func (g *Graph) GetNode(id string) (*entities.Node, error) {
	node, exists := g.nodes[id]
	if !exists {
		return nil, ErrNodeNotFound
	}
	return node, nil
}

// HasEdge checks for an edge between two nodes in either direction
func (g *Graph) HasEdge(x, y string) bool {
	_, exists := g.edges[makeEdgeKey(x, y)]
	return exists
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*entities.Node {
	nodes := make([]*entities.Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		edges = append(edges, g.edges[key])
	}
	return edges
}

// Degree counts the edges touching a node; a self loop counts twice.
func (g *Graph) Degree(id string) int {
	degree := 0
	for _, edge := range g.edges {
		if edge.SourceID == id {
			degree++
		}
		if edge.TargetID == id {
			degree++
		}
	}
	return degree
}

// Degrees returns the degree of every node
func (g *Graph) Degrees() map[string]int {
	degrees := make(map[string]int, len(g.nodes))
	for id := range g.nodes {
		degrees[id] = 0
	}
	for _, edge := range g.edges {
		degrees[edge.SourceID]++
		degrees[edge.TargetID]++
	}
	return degrees
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// IsEmpty reports whether the graph has no nodes
func (g *Graph) IsEmpty() bool {
	return len(g.nodes) == 0
}

// Density returns edges over the maximum possible undirected edges
func (g *Graph) Density() float64 {
	n := len(g.nodes)
	if n < 2 {
		return 0
	}
	return float64(len(g.edges)) / float64(n*(n-1)/2)
}

// Validate ensures graph invariants
func (g *Graph) Validate() error {
	for _, edge := range g.edges {
		if _, sourceExists := g.nodes[edge.SourceID]; !sourceExists {
			return errors.New("edge references non-existent source node")
		}
		if _, targetExists := g.nodes[edge.TargetID]; !targetExists {
			return errors.New("edge references non-existent target node")
		}
	}
	if len(g.nodes) != len(g.nodeOrder) {
		return errors.New("node count mismatch")
	}
	if len(g.edges) != len(g.edgeOrder) {
		return errors.New("edge count mismatch")
	}
	return nil
}
