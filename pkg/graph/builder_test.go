package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireroute/pkg/geom"
)

// TestOpenLatticeStraightLine covers a horizontal run at Y=2 from X=0 to
// X=4, no boxes, with an anchor at each end. The graph should directly
// connect them.
func TestOpenLatticeStraightLine(t *testing.T) {
	anchors := []Anchor{
		{Position: geom.Point{X: 0, Y: 2}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
		{Position: geom.Point{X: 4, Y: 2}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
	}
	g := New()
	NewBuilder().Build(g, anchors, nil, false)

	startIdx, ok := g.FindNode(geom.Point{X: 0, Y: 2})
	require.True(t, ok)
	endIdx, ok := g.FindNode(geom.Point{X: 4, Y: 2})
	require.True(t, ok)

	// Walk from start in +X until we reach end.
	cur := startIdx
	steps := 0
	for cur != endIdx {
		next, ok := g.Neighbor(cur, geom.DirPosX)
		require.True(t, ok, "graph disconnected after %d steps", steps)
		cur = next
		steps++
		require.Less(t, steps, 10)
	}
}

// TestAnchorCoverage checks that every anchor position appears as a node
// with IsAnchor true.
func TestAnchorCoverage(t *testing.T) {
	anchors := []Anchor{
		{Position: geom.Point{X: 0, Y: 0}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
		{Position: geom.Point{X: 10, Y: 0}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
		{Position: geom.Point{X: 5, Y: 10}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
	}
	g := New()
	NewBuilder().Build(g, anchors, nil, false)

	for _, a := range anchors {
		idx, ok := g.FindNode(a.Position)
		require.True(t, ok)
		assert.True(t, g.Nodes[idx].IsAnchor)
	}
}

// TestGraphSymmetry checks that every neighbor link is symmetric and
// orthogonal.
func TestGraphSymmetry(t *testing.T) {
	boxes := []geom.Box{{CenterX: 5, CenterY: 5, HalfW: 1, HalfH: 1}}
	anchors := []Anchor{
		{Position: geom.Point{X: 3, Y: 5}, Box: geom.Index(0), ConnectDirections: geom.DirSet(geom.DirNegX)},
		{Position: geom.Point{X: 7, Y: 5}, Box: geom.Index(0), ConnectDirections: geom.DirSet(geom.DirPosX)},
	}
	g := New()
	NewBuilder().Build(g, anchors, boxes, false)

	for i, n := range g.Nodes {
		for d := geom.Direction(0); d < 4; d++ {
			nb := n.Neighbor[d]
			if nb == geom.Invalid {
				continue
			}
			back := g.Nodes[nb].Neighbor[d.Opposite()]
			assert.Equal(t, geom.Index(i), back, "node %d dir %v", i, d)

			// Orthogonality: +X/-X share Y, +Y/-Y share X.
			if d.IsHorizontal() {
				assert.Equal(t, n.Position.Y, g.Nodes[nb].Position.Y)
			} else {
				assert.Equal(t, n.Position.X, g.Nodes[nb].Position.X)
			}
			// Monotonic coordinate in the link's direction.
			dx, dy := d.Step()
			if dx > 0 {
				assert.Greater(t, g.Nodes[nb].Position.X, n.Position.X)
			} else if dx < 0 {
				assert.Less(t, g.Nodes[nb].Position.X, n.Position.X)
			} else if dy > 0 {
				assert.Greater(t, g.Nodes[nb].Position.Y, n.Position.Y)
			} else {
				assert.Less(t, g.Nodes[nb].Position.Y, n.Position.Y)
			}
		}
	}
}

// TestSightlinePurityAroundBox has anchors on either side of a box, each
// owning it and only allowed to connect outward. No neighbor edge may
// cross the box's interior.
func TestSightlinePurityAroundBox(t *testing.T) {
	boxes := []geom.Box{{CenterX: 5, CenterY: 5, HalfW: 1, HalfH: 1}}
	anchors := []Anchor{
		{Position: geom.Point{X: 3, Y: 5}, Box: geom.Index(0), ConnectDirections: geom.DirSet(geom.DirNegX)},
		{Position: geom.Point{X: 7, Y: 5}, Box: geom.Index(0), ConnectDirections: geom.DirSet(geom.DirPosX)},
	}
	g := New()
	NewBuilder().Build(g, anchors, boxes, false)

	for _, n := range g.Nodes {
		for d := geom.Direction(0); d < 4; d++ {
			nb := n.Neighbor[d]
			if nb == geom.Invalid {
				continue
			}
			other := g.Nodes[nb].Position
			for bi, b := range boxes {
				if segmentCrossesBoxInterior(n.Position, other, b) {
					t.Errorf("edge %v -> %v crosses box %d interior", n.Position, other, bi)
				}
			}
		}
	}
}

// segmentCrossesBoxInterior reports whether the open segment from a to b
// (axis-aligned) passes through the open interior of box.
func segmentCrossesBoxInterior(a, b geom.Point, box geom.Box) bool {
	if a.Y == b.Y {
		lo, hi := a.X, b.X
		if lo > hi {
			lo, hi = hi, lo
		}
		if a.Y <= box.MinY() || a.Y >= box.MaxY() {
			return false
		}
		return hi > box.MinX() && lo < box.MaxX()
	}
	lo, hi := a.Y, b.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	if a.X <= box.MinX() || a.X >= box.MaxX() {
		return false
	}
	return hi > box.MinY() && lo < box.MaxY()
}

// TestMinimalProducesFewerOrEqualNodes checks that minimal pruning never
// increases the node count relative to the dense build.
func TestMinimalProducesFewerOrEqualNodes(t *testing.T) {
	boxes := []geom.Box{
		{CenterX: 0, CenterY: 5, HalfW: 2, HalfH: 5},
		{CenterX: 10, CenterY: 5, HalfW: 2, HalfH: 5},
	}
	anchors := []Anchor{
		{Position: geom.Point{X: -2, Y: 5}, Box: geom.Index(0), ConnectDirections: geom.DirSet(geom.DirNegX)},
		{Position: geom.Point{X: 12, Y: 5}, Box: geom.Index(1), ConnectDirections: geom.DirSet(geom.DirPosX)},
		{Position: geom.Point{X: 5, Y: 0}, ConnectDirections: geom.AllDirections},
		{Position: geom.Point{X: 5, Y: 10}, ConnectDirections: geom.AllDirections},
	}

	dense := New()
	NewBuilder().Build(dense, anchors, boxes, false)

	minimal := New()
	NewBuilder().Build(minimal, anchors, boxes, true)

	assert.LessOrEqual(t, minimal.NumNodes(), dense.NumNodes())
}

// TestBuildIsIdempotent checks that rebuilding with the same inputs and
// the same Builder produces the same node set.
func TestBuildIsIdempotent(t *testing.T) {
	boxes := []geom.Box{{CenterX: 5, CenterY: 5, HalfW: 1, HalfH: 1}}
	anchors := []Anchor{
		{Position: geom.Point{X: 3, Y: 5}, Box: geom.Index(0), ConnectDirections: geom.DirSet(geom.DirNegX)},
		{Position: geom.Point{X: 7, Y: 5}, Box: geom.Index(0), ConnectDirections: geom.DirSet(geom.DirPosX)},
	}

	bd := NewBuilder()
	g1 := New()
	bd.Build(g1, anchors, boxes, true)
	g2 := New()
	bd.Build(g2, anchors, boxes, true)

	require.Equal(t, g1.NumNodes(), g2.NumNodes())
	for i := range g1.Nodes {
		assert.Equal(t, g1.Nodes[i].Position, g2.Nodes[i].Position)
		assert.Equal(t, g1.Nodes[i].IsAnchor, g2.Nodes[i].IsAnchor)
	}
}
