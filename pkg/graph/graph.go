// Package graph builds and represents the sparse orthogonal visibility
// graph: a lattice of nodes with up to four neighbors each, pruned so
// that the graph has O(anchors) nodes rather than O(anchors²).
package graph

import (
	"github.com/google/uuid"

	"wireroute/pkg/geom"
)

// Node is a graph vertex: a lattice position, up to four neighbor node
// indices (one per geom.Direction, geom.Invalid for "none"), and whether
// this position corresponds to an anchor: a user-supplied one or one of the
// corner anchors the builder synthesizes around each box.
type Node struct {
	Position geom.Point
	Neighbor [4]geom.Index
	IsAnchor bool
}

// Anchor is a user-supplied connection point: a position, an optional
// owning box, and a mask of allowed outbound directions.
type Anchor struct {
	Position          geom.Point
	Box               geom.Index // geom.Invalid if the anchor owns no box
	ConnectDirections geom.DirectionSet
}

// Graph is the built, read-only-during-routing visibility graph. The zero
// value is not usable; construct with New.
type Graph struct {
	// ID is a random identifier stamped by New. No code in this module
	// reads or logs it; it has no routing significance.
	ID uuid.UUID

	Nodes     []Node
	positions map[geom.Point]geom.Index
}

// New creates an empty graph ready for Builder.Build.
func New() *Graph {
	return &Graph{
		ID:        uuid.New(),
		positions: make(map[geom.Point]geom.Index),
	}
}

// FindNode looks up the node at p.
func (g *Graph) FindNode(p geom.Point) (geom.Index, bool) {
	idx, ok := g.positions[p]
	return idx, ok
}

// Neighbor returns the neighbor of node n in direction d, if any.
func (g *Graph) Neighbor(n geom.Index, d geom.Direction) (geom.Index, bool) {
	nb := g.Nodes[n].Neighbor[d]
	return nb, nb != geom.Invalid
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.Nodes) }

// reset clears the graph for reuse by Builder.Build, keeping backing arrays.
func (g *Graph) reset() {
	g.Nodes = g.Nodes[:0]
	for k := range g.positions {
		delete(g.positions, k)
	}
}

// nodeAt returns the index of the node at p, creating one (with the given
// IsAnchor flag) if none exists yet. isAnchor is only honored on creation;
// an existing node's IsAnchor flag is never downgraded.
func (g *Graph) nodeAt(p geom.Point, isAnchor bool) geom.Index {
	if idx, ok := g.positions[p]; ok {
		if isAnchor && !g.Nodes[idx].IsAnchor {
			g.Nodes[idx].IsAnchor = true
		}
		return idx
	}
	idx := geom.Index(len(g.Nodes))
	g.Nodes = append(g.Nodes, Node{
		Position: p,
		Neighbor: [4]geom.Index{geom.Invalid, geom.Invalid, geom.Invalid, geom.Invalid},
		IsAnchor: isAnchor,
	})
	g.positions[p] = idx
	return idx
}

// link sets a symmetric neighbor pair: from's neighbor in direction d is
// to, and to's neighbor in opposite(d) is from.
func (g *Graph) link(from geom.Index, d geom.Direction, to geom.Index) {
	g.Nodes[from].Neighbor[d] = to
	g.Nodes[to].Neighbor[d.Opposite()] = from
}

// hasNeighbor reports whether node n already has a neighbor in direction d.
func (g *Graph) hasNeighbor(n geom.Index, d geom.Direction) bool {
	return g.Nodes[n].Neighbor[d] != geom.Invalid
}
