package graph

import (
	"sort"

	"wireroute/pkg/geom"
	"wireroute/pkg/sightline"
)

// Builder constructs a Graph from anchors and boxes. A Builder is
// idempotent and reuses its internal scratch storage across calls to
// Build — keep one per goroutine that builds graphs repeatedly.
type Builder struct {
	anchors   []Anchor // user anchors + synthesized corner anchors
	xs, ys    []int32  // coordinate universe
	anchorSet map[geom.Point]bool
}

// NewBuilder returns a ready-to-use Builder.
func NewBuilder() *Builder {
	return &Builder{anchorSet: make(map[geom.Point]bool)}
}

// Build fills g with nodes and neighbor links, from anchors and boxes.
// minimal=true yields fewer intermediate nodes (more aggressive pruning);
// false keeps a denser lattice. Build panics if an anchor's coordinates
// fall outside the coordinate universe it just derived — an invariant
// violation that cannot happen from well-formed input.
func (bd *Builder) Build(g *Graph, anchors []Anchor, boxes []geom.Box, minimal bool) {
	g.reset()
	sight := sightline.Build(boxes)

	// Step 1: derive implicit corner anchors.
	bd.anchors = bd.anchors[:0]
	bd.anchors = append(bd.anchors, anchors...)
	for _, b := range boxes {
		for _, c := range b.Corners() {
			bd.anchors = append(bd.anchors, Anchor{
				Position:          c,
				Box:               geom.Invalid,
				ConnectDirections: geom.AllDirections,
			})
		}
	}

	// Step 2: coordinate universe.
	bd.xs = bd.xs[:0]
	bd.ys = bd.ys[:0]
	for k := range bd.anchorSet {
		delete(bd.anchorSet, k)
	}
	for _, a := range bd.anchors {
		bd.xs = append(bd.xs, a.Position.X)
		bd.ys = append(bd.ys, a.Position.Y)
		bd.anchorSet[a.Position] = true
	}
	bd.xs = sortDedup(bd.xs)
	bd.ys = sortDedup(bd.ys)

	// Step 3: anchor nodes (deduplicated at node creation by g.nodeAt).
	for _, a := range bd.anchors {
		g.nodeAt(a.Position, true)
	}

	sc := &scan{
		g:         g,
		sight:     sight,
		boxes:     boxes,
		xs:        bd.xs,
		ys:        bd.ys,
		anchorSet: bd.anchorSet,
		minimal:   minimal,
	}

	// Step 4: optional prescan, only for box-owning anchors.
	if minimal {
		for _, a := range bd.anchors {
			if a.Box == geom.Invalid {
				continue
			}
			for _, d := range a.ConnectDirections.Directions() {
				sc.prescan(a, d)
			}
		}
	}

	// Step 5: scan-and-link.
	for _, a := range bd.anchors {
		for _, d := range a.ConnectDirections.Directions() {
			sc.scanAndLink(a, d)
		}
	}
}

// sortDedup sorts xs ascending and removes duplicates in place.
func sortDedup(xs []int32) []int32 {
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	out := xs[:0]
	for i, v := range xs {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// scan holds the read-only state needed while walking scan lines for one
// Build call.
type scan struct {
	g         *Graph
	sight     *sightline.Index
	boxes     []geom.Box
	xs, ys    []int32
	anchorSet map[geom.Point]bool
	minimal   bool
}

// axisCoords returns the coordinate universe along d's axis.
func (s *scan) axisCoords(d geom.Direction) []int32 {
	if d.IsHorizontal() {
		return s.xs
	}
	return s.ys
}

// indexOf returns the index of v in the sorted, deduplicated coords.
func indexOf(coords []int32, v int32) int {
	i := sort.Search(len(coords), func(i int) bool { return coords[i] >= v })
	if i == len(coords) || coords[i] != v {
		panic("graph: coordinate not present in universe")
	}
	return i
}

func stepDir(d geom.Direction) int {
	if d == geom.DirPosX || d == geom.DirPosY {
		return 1
	}
	return -1
}

func candidateAt(anchor geom.Point, horizontal bool, coord int32) geom.Point {
	if horizontal {
		return geom.Point{X: coord, Y: anchor.Y}
	}
	return geom.Point{X: anchor.X, Y: coord}
}

func minmax(a, b int32) (int32, int32) {
	if a < b {
		return a, b
	}
	return b, a
}

// sightlineTo reports whether the run from anchor to the candidate at
// coords[idx] (on d's axis) is clear of every box but ignoreBox.
func (s *scan) sightlineTo(anchor geom.Point, d geom.Direction, coord int32, ignoreBox geom.Index) bool {
	if d.IsHorizontal() {
		lo, hi := minmax(anchor.X, coord)
		return s.sight.HorizontalSightline(anchor.Y, lo, hi, ignoreBox)
	}
	lo, hi := minmax(anchor.Y, coord)
	return s.sight.VerticalSightline(anchor.X, lo, hi, ignoreBox)
}

// cutoffSteps performs a recursive binary halving search: find the
// farthest step count k in [0,n] for which visible(k) holds, assuming
// visible is true at 0 and (in the well-behaved case) monotonically
// becomes false past some point. visible(0) is never queried; k=0 (the
// anchor itself) is always treated as visible.
func cutoffSteps(lo, hi int, visible func(int) bool) int {
	if hi <= lo+1 {
		if hi > lo && visible(hi) {
			return hi
		}
		return lo
	}
	mid := lo + (hi-lo)/2
	if visible(mid) {
		return cutoffSteps(mid, hi, visible)
	}
	return cutoffSteps(lo, mid, visible)
}

// includePoint implements the include-point test: a candidate is useful
// iff it is itself an anchor position, or it shares an orthogonal
// sight-line with the nearest existing node along the perpendicular axis,
// scanned outward in both directions from the candidate, stopping at the
// first node found in each direction.
//
// This test's result can depend on the order anchors are processed in —
// a newly-inserted node's usefulness can depend on anchor-processing
// order — and that dependency is preserved here, not smoothed over.
func (s *scan) includePoint(p geom.Point, horizontal bool) bool {
	if s.anchorSet[p] {
		return true
	}
	return s.orthogonalReach(p, horizontal, -1) || s.orthogonalReach(p, horizontal, 1)
}

// orthogonalReach scans outward from p along the axis perpendicular to
// `horizontal`, in direction `step` (-1 or +1), looking for the first
// existing node; returns whether that node is reachable from p by an
// orthogonal sight-line.
func (s *scan) orthogonalReach(p geom.Point, horizontal bool, step int) bool {
	// The perpendicular axis is Y when the candidate's own scan axis (X) is
	// horizontal, and vice versa.
	perpCoords := s.xs
	pivot := p.X
	if horizontal {
		perpCoords = s.ys
		pivot = p.Y
	}
	idx := indexOf(perpCoords, pivot)
	for i := idx + step; i >= 0 && i < len(perpCoords); i += step {
		var cand geom.Point
		if horizontal {
			cand = geom.Point{X: p.X, Y: perpCoords[i]}
		} else {
			cand = geom.Point{X: perpCoords[i], Y: p.Y}
		}
		if _, ok := s.g.FindNode(cand); !ok {
			continue
		}
		// Found the nearest existing node in this direction. The
		// orthogonal run from p to cand is vertical when the candidate's
		// own scan is horizontal, and horizontal otherwise.
		if horizontal {
			lo, hi := minmax(p.Y, cand.Y)
			return s.sight.VerticalSightline(p.X, lo, hi, geom.Invalid)
		}
		lo, hi := minmax(p.X, cand.X)
		return s.sight.HorizontalSightline(p.Y, lo, hi, geom.Invalid)
	}
	return false
}

// prescan seeds a landing node just outside a's owning box along
// direction d, stopping at the first lattice point that is both
// sight-line-visible from the anchor and judged useful.
func (s *scan) prescan(a Anchor, d geom.Direction) {
	horizontal := d.IsHorizontal()
	coords := s.axisCoords(d)
	startIdx := indexOf(coords, pivotOf(a.Position, horizontal))
	step := stepDir(d)

	for idx := startIdx + step; idx >= 0 && idx < len(coords); idx += step {
		coord := coords[idx]
		cand := candidateAt(a.Position, horizontal, coord)
		if s.boxes[a.Box].Contains(cand) {
			continue
		}
		if !s.sightlineTo(a.Position, d, coord, a.Box) {
			continue
		}
		if !s.includePoint(cand, horizontal) {
			continue
		}
		s.g.nodeAt(cand, s.anchorSet[cand])
		return
	}
}

func pivotOf(p geom.Point, horizontal bool) int32 {
	if horizontal {
		return p.X
	}
	return p.Y
}

// scanAndLink handles one anchor and one allowed direction: find the
// visibility cutoff, then walk from the anchor out to it, creating and
// linking nodes and pruning when minimal.
func (s *scan) scanAndLink(a Anchor, d geom.Direction) {
	horizontal := d.IsHorizontal()
	coords := s.axisCoords(d)
	startIdx := indexOf(coords, pivotOf(a.Position, horizontal))
	step := stepDir(d)

	// Number of steps to the array boundary in this direction.
	var boundarySteps int
	if step > 0 {
		boundarySteps = len(coords) - 1 - startIdx
	} else {
		boundarySteps = startIdx
	}
	if boundarySteps <= 0 {
		return
	}

	visible := func(k int) bool {
		idx := startIdx + k*step
		return s.sightlineTo(a.Position, d, coords[idx], a.Box)
	}
	cutoffK := cutoffSteps(0, boundarySteps, visible)
	if cutoffK == 0 {
		return
	}

	previous, _ := s.g.FindNode(a.Position)
	for k := 1; k <= cutoffK; k++ {
		idx := startIdx + k*step
		coord := coords[idx]
		cand := candidateAt(a.Position, horizontal, coord)

		if a.Box != geom.Invalid && s.boxes[a.Box].Contains(cand) {
			continue
		}
		if s.minimal && !s.includePoint(cand, horizontal) {
			continue
		}

		existingIdx, existed := s.g.FindNode(cand)
		hadForwardNeighbor := existed && s.g.hasNeighbor(existingIdx, d)

		curIdx := s.g.nodeAt(cand, s.anchorSet[cand])
		s.g.link(previous, d, curIdx)
		previous = curIdx

		if existed && hadForwardNeighbor {
			// Walking into an already-linked run; the rest of this scan
			// line is already present; stop walking it.
			return
		}
	}
}
