package entities

// Position is a 2D layout coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a vertex of a rendered graph. The ID is the identity the graph
// deduplicates on; display attributes may be rewritten by later upserts.
type Node struct {
	id       string
	label    string
	title    string
	color    string
	size     float64
	position *Position
}

// NewNode creates a node with its display attributes
func NewNode(id, label, title, color string) *Node {
	if label == "" {
		label = id
	}
	return &Node{
		id:    id,
		label: label,
		title: title,
		color: color,
	}
}

// ID returns the node identity
func (n *Node) ID() string {
	return n.id
}

// Label returns the visible label
func (n *Node) Label() string {
	return n.label
}

// Title returns the hover tooltip
func (n *Node) Title() string {
	return n.title
}

// Color returns the fill color
func (n *Node) Color() string {
	return n.color
}

// Size returns the rendered size, zero meaning renderer default
func (n *Node) Size() float64 {
	return n.size
}

// Position returns the layout coordinate, nil when not laid out
func (n *Node) Position() *Position {
	if n.position == nil {
		return nil
	}
	p := *n.position
	return &p
}

// Restyle replaces the display attributes; the identity never changes.
func (n *Node) Restyle(label, title, color string) {
	if label != "" {
		n.label = label
	}
	n.title = title
	n.color = color
}

// Paint sets color and size from a rendering weight
func (n *Node) Paint(color string, size float64) {
	n.color = color
	n.size = size
}

// MoveTo places the node in the layout
func (n *Node) MoveTo(x, y float64) {
	n.position = &Position{X: x, Y: y}
}
