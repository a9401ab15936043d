package geom

// Box is a component's forbidding interior: a center plus unsigned
// half-width/half-height. A point lies inside iff it is within the closed
// rectangle.
type Box struct {
	CenterX, CenterY int32
	HalfW, HalfH     uint32
}

// MinX returns the box's minimum X coordinate.
func (b Box) MinX() int32 { return b.CenterX - int32(b.HalfW) }

// MaxX returns the box's maximum X coordinate.
func (b Box) MaxX() int32 { return b.CenterX + int32(b.HalfW) }

// MinY returns the box's minimum Y coordinate.
func (b Box) MinY() int32 { return b.CenterY - int32(b.HalfH) }

// MaxY returns the box's maximum Y coordinate.
func (b Box) MaxY() int32 { return b.CenterY + int32(b.HalfH) }

// Contains reports whether p lies within the closed rectangle.
func (b Box) Contains(p Point) bool {
	return p.X >= b.MinX() && p.X <= b.MaxX() && p.Y >= b.MinY() && p.Y <= b.MaxY()
}

// Corners returns the four implicit corner anchors used by the graph
// builder to seed the coordinate universe: one unit outside each
// geometric corner of the box, in MinX/MinY, MinX/MaxY, MaxX/MinY,
// MaxX/MaxY order.
func (b Box) Corners() [4]Point {
	return [4]Point{
		{X: b.MinX() - 1, Y: b.MinY() - 1},
		{X: b.MinX() - 1, Y: b.MaxY() + 1},
		{X: b.MaxX() + 1, Y: b.MinY() - 1},
		{X: b.MaxX() + 1, Y: b.MaxY() + 1},
	}
}
