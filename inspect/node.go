package inspect

import "gridsnap/geom"

// Node represents one drawn component in the inspection tree.
type Node struct {
	// Type is the component type (e.g., "Desktop", "Monitor", "Status").
	Type string `json:"type"`

	ID string `json:"id,omitempty"`

	// Bounds are in terminal cells.
	Bounds Bounds `json:"bounds"`

	Visible bool `json:"visible"`

	// State contains component-specific state information.
	State map[string]interface{} `json:"state,omitempty"`

	Children []*Node `json:"children,omitempty"`

	// Content is the plain text content if applicable.
	Content string `json:"content,omitempty"`
}

// Bounds represents component position and dimensions.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewNode creates a new visible Node with the given type.
func NewNode(nodeType string) *Node {
	return &Node{
		Type:    nodeType,
		Visible: true,
		State:   make(map[string]interface{}),
	}
}

// WithID sets the node ID and returns the node for chaining.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithBounds sets the node bounds and returns the node for chaining.
func (n *Node) WithBounds(x, y, width, height int) *Node {
	n.Bounds = Bounds{X: x, Y: y, Width: width, Height: height}
	return n
}

// WithRect sets the bounds from a cell rectangle.
func (n *Node) WithRect(r geom.Rect) *Node {
	return n.WithBounds(r.X, r.Y, r.W, r.H)
}

// WithState adds a state key-value pair and returns the node for chaining.
func (n *Node) WithState(key string, value interface{}) *Node {
	if n.State == nil {
		n.State = make(map[string]interface{})
	}
	n.State[key] = value
	return n
}

// WithVisible sets whether the component is drawn.
func (n *Node) WithVisible(visible bool) *Node {
	n.Visible = visible
	return n
}

// AddChild adds a child node and returns the parent for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// WithContent sets the node content and returns the node for chaining.
func (n *Node) WithContent(content string) *Node {
	n.Content = content
	return n
}

// Find returns the first node of the given type and ID in the tree, or nil.
func (n *Node) Find(nodeType, id string) *Node {
	if n == nil {
		return nil
	}
	if n.Type == nodeType && (id == "" || n.ID == id) {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(nodeType, id); found != nil {
			return found
		}
	}
	return nil
}

// InspectNode lets a prebuilt tree stand in for a component.
func (n *Node) InspectNode() *Node {
	return n
}
