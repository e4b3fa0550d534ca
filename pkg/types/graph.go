package types

// Graph owns the full node and edge sets for one analysis run. It is
// rebuilt from scratch on every request and discarded afterwards; no
// graph is ever shared across requests.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`

	byID map[string]*Node
	out  map[string][]*Edge
}

// NewGraph returns an empty graph ready to be populated.
func NewGraph() *Graph {
	return &Graph{
		byID: make(map[string]*Node),
		out:  make(map[string][]*Edge),
	}
}

// AddNode appends a node and indexes it by id. Re-adding an existing id
// is a no-op and returns the node already stored under that id.
func (g *Graph) AddNode(n *Node) *Node {
	if existing, ok := g.byID[n.ID]; ok {
		return existing
	}
	g.Nodes = append(g.Nodes, n)
	g.byID[n.ID] = n
	return n
}

// AddEdge appends a directed edge and indexes it by source node id.
// Duplicates are kept on purpose.
func (g *Graph) AddEdge(e *Edge) {
	g.Edges = append(g.Edges, e)
	g.out[e.From] = append(g.out[e.From], e)
}

// NodeByID returns the node stored under id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	return g.byID[id]
}

// OutEdges returns the edges leaving the given node. The adjacency index
// is built incrementally in AddEdge so traversal never scans the full
// edge list.
func (g *Graph) OutEdges(id string) []*Edge {
	return g.out[id]
}

// UserByEmail returns the user node keyed by the given email, or nil.
func (g *Graph) UserByEmail(email string) *Node {
	n := g.byID[UserNodeID(email)]
	if n == nil || n.Type != UserNodeType {
		return nil
	}
	return n
}

// UserNodes returns all user-variant nodes in insertion order.
func (g *Graph) UserNodes() []*Node {
	var users []*Node
	for _, n := range g.Nodes {
		if n.Type == UserNodeType {
			users = append(users, n)
		}
	}
	return users
}

// ContactNodes returns all contact-variant nodes in insertion order.
func (g *Graph) ContactNodes() []*Node {
	var contacts []*Node
	for _, n := range g.Nodes {
		if n.Type == ContactNodeType {
			contacts = append(contacts, n)
		}
	}
	return contacts
}
