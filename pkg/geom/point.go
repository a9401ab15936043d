// Package geom holds the integer geometry primitives the router is built
// on: points, the four orthogonal directions, and axis-aligned bounding
// boxes. Coordinates are integer throughout; wire vertex output lives in
// pkg/routing, not here.
package geom

// Point is an integer lattice coordinate.
type Point struct {
	X, Y int32
}

// Manhattan returns the L1 distance between p and q.
func Manhattan(p, q Point) int64 {
	return int64(abs32(p.X-q.X)) + int64(abs32(p.Y-q.Y))
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int32) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}
