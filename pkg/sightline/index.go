// Package sightline maintains the two segment trees the graph builder
// queries to decide whether an axis-aligned run between two points is
// clear of every bounding box but an optional ignored one.
package sightline

import (
	"wireroute/pkg/geom"
	"wireroute/pkg/segtree"
)

// span is the payload stored in both trees: the owning box's index plus
// its extent on the axis perpendicular to the tree's keyed axis.
type span struct {
	box    geom.Index
	lo, hi int32
}

// Index answers "is the segment from P1 to P2 clear of every box except an
// optional ignored box?" queries in O(log n + k).
type Index struct {
	boxes      []geom.Box
	horizontal *segtree.Tree[span] // keyed on Y-interval, payload (box, minX, maxX)
	vertical   *segtree.Tree[span] // keyed on X-interval, payload (box, minY, maxY)

	// scratch buffers reused across queries to avoid per-call allocation.
	hscratch []segtree.Segment[span]
	vscratch []segtree.Segment[span]
}

// Build constructs the horizontal and vertical trees from boxes.
func Build(boxes []geom.Box) *Index {
	hsegs := make([]segtree.Segment[span], len(boxes))
	vsegs := make([]segtree.Segment[span], len(boxes))
	for i, b := range boxes {
		idx := geom.Index(i)
		hsegs[i] = segtree.Segment[span]{
			Start: b.MinY(), End: b.MaxY(),
			Value: span{box: idx, lo: b.MinX(), hi: b.MaxX()},
		}
		vsegs[i] = segtree.Segment[span]{
			Start: b.MinX(), End: b.MaxX(),
			Value: span{box: idx, lo: b.MinY(), hi: b.MaxY()},
		}
	}
	return &Index{
		boxes:      boxes,
		horizontal: segtree.Build(hsegs),
		vertical:   segtree.Build(vsegs),
	}
}

// HorizontalSightline reports whether no box other than ignoreBox straddles
// Y=y and has an X-range overlapping [x1, x2]. Requires x1 < x2.
func (ix *Index) HorizontalSightline(y, x1, x2 int32, ignoreBox geom.Index) bool {
	ix.hscratch = ix.horizontal.QueryAppend(y, ix.hscratch[:0])
	for _, s := range ix.hscratch {
		if s.Value.box == ignoreBox {
			continue
		}
		if x2 >= s.Value.lo && x1 <= s.Value.hi {
			return false
		}
	}
	return true
}

// VerticalSightline reports whether no box other than ignoreBox straddles
// X=x and has a Y-range overlapping [y1, y2]. Requires y1 < y2.
func (ix *Index) VerticalSightline(x, y1, y2 int32, ignoreBox geom.Index) bool {
	ix.vscratch = ix.vertical.QueryAppend(x, ix.vscratch[:0])
	for _, s := range ix.vscratch {
		if s.Value.box == ignoreBox {
			continue
		}
		if y2 >= s.Value.lo && y1 <= s.Value.hi {
			return false
		}
	}
	return true
}

// Sightline dispatches to Horizontal/VerticalSightline based on direction:
// horizontal for ±X travel along y=a.y=b.y, vertical for ±Y travel.
func (ix *Index) Sightline(horizontal bool, fixedCoord, lo, hi int32, ignoreBox geom.Index) bool {
	if horizontal {
		return ix.HorizontalSightline(fixedCoord, lo, hi, ignoreBox)
	}
	return ix.VerticalSightline(fixedCoord, lo, hi, ignoreBox)
}
