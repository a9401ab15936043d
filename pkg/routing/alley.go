package routing

import (
	"wireroute/pkg/geom"
	"wireroute/pkg/graph"
)

// centeringCandidate marks two adjacent bend vertices of one wire — the two
// ends of a straight run between turns — as eligible for alley centering.
// wire/vertex locate nodeA within that wire's Points slice; nodeB sits at
// vertex+1.
type centeringCandidate struct {
	nodeA, nodeB geom.Index
	wire, vertex int
}

// axis is the coordinate a centering pass holds constant while searching
// for a run's perpendicular corridor.
type axis int

const (
	axisX axis = iota
	axisY
)

func coordOn(p geom.Point, a axis) int32 {
	if a == axisX {
		return p.X
	}
	return p.Y
}

// connectionKind classifies whether two nodes probed in lockstep still form
// a valid corridor wall: directly linked, linked but passing through an
// anchor node (a valid wall, but one the probe must not walk past), or not
// linked at all (the corridor ends here).
type connectionKind int

const (
	connUnconnected connectionKind = iota
	connConnected
	connConnectedThroughAnchor
)

// areConnected reports how a and b relate along the axis perpendicular to
// the probe direction: whether a chain of neighbor links joins them, and
// whether any node on that chain (including a and b themselves) is an
// anchor node (Node.IsAnchor).
func areConnected(g *graph.Graph, a, b geom.Index, connAxis axis) connectionKind {
	na, nb := g.Nodes[a], g.Nodes[b]
	var dir geom.Direction
	if connAxis == axisY {
		if na.Position.Y < nb.Position.Y {
			dir = geom.DirPosY
		} else {
			dir = geom.DirNegY
		}
	} else {
		if na.Position.X < nb.Position.X {
			dir = geom.DirPosX
		} else {
			dir = geom.DirNegX
		}
	}

	throughAnchor := na.IsAnchor || nb.IsAnchor
	cur := a
	for {
		next, ok := g.Neighbor(cur, dir)
		if !ok {
			return connUnconnected
		}
		if next == b {
			if throughAnchor {
				return connConnectedThroughAnchor
			}
			return connConnected
		}
		if g.Nodes[next].IsAnchor {
			throughAnchor = true
		}
		cur = next
	}
}

// probeBound walks a and b together one probe-direction step at a time,
// stopping as soon as they stop being a valid parallel pair (their
// matchAxis coordinates diverge, or areConnected reports no link along
// connAxis), and returns the matchAxis coordinate of the farthest pair
// still forming a wall. Walking past a connConnectedThroughAnchor pair is
// allowed to register that bound but not to continue beyond it: an anchor
// is a wall an alley may widen up to, not one it may see through.
func probeBound(g *graph.Graph, a, b geom.Index, dir geom.Direction, matchAxis, connAxis axis) int32 {
	curA, curB := a, b
	bound := coordOn(g.Nodes[a].Position, matchAxis)
	for {
		nextA, okA := g.Neighbor(curA, dir)
		nextB, okB := g.Neighbor(curB, dir)
		if !okA || !okB {
			return bound
		}
		if coordOn(g.Nodes[nextA].Position, matchAxis) != coordOn(g.Nodes[nextB].Position, matchAxis) {
			return bound
		}

		kind := areConnected(g, nextA, nextB, connAxis)
		if kind == connUnconnected {
			return bound
		}
		curA, curB = nextA, nextB
		bound = coordOn(g.Nodes[curA].Position, matchAxis)
		if kind == connConnectedThroughAnchor {
			return bound
		}
	}
}

// centerInAlley finds the midline of the corridor nodeA-nodeB runs through.
// If the pair shares an X coordinate (a vertical run), it probes left and
// right to find the corridor's horizontal extent and returns a target X;
// otherwise it probes up and down for a target Y. The midline is computed
// as a float: a corridor whose bound sum is odd centers on a half-integer
// coordinate, which is exactly the case alley centering exists to handle.
func centerInAlley(g *graph.Graph, nodeA, nodeB geom.Index) (matchAxis axis, center float32) {
	na, nb := g.Nodes[nodeA].Position, g.Nodes[nodeB].Position
	if na.X == nb.X {
		lo := probeBound(g, nodeA, nodeB, geom.DirNegX, axisX, axisY)
		hi := probeBound(g, nodeA, nodeB, geom.DirPosX, axisX, axisY)
		return axisX, (float32(lo) + float32(hi)) / 2
	}
	lo := probeBound(g, nodeA, nodeB, geom.DirNegY, axisY, axisX)
	hi := probeBound(g, nodeA, nodeB, geom.DirPosY, axisY, axisX)
	return axisY, (float32(lo) + float32(hi)) / 2
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// centerAlleys nudges every centering candidate's straight run to its
// corridor's midline, then propagates that nudge to every other wire's
// tree-attachment joint that sits on the same line within the run's
// bounds, so a T-junction moves together with the run it branches from. It
// mutates wires in place and is idempotent: node positions never move, so
// recomputing each candidate's corridor on an already-centered wire set
// returns the same bounds and the same center.
func centerAlleys(g *graph.Graph, wires []Wire, candidates []centeringCandidate) {
	for _, c := range candidates {
		w := wires[c.wire].Points
		if c.vertex+1 >= len(w) {
			continue
		}

		matchAxis, center := centerInAlley(g, c.nodeA, c.nodeB)
		na, nb := g.Nodes[c.nodeA].Position, g.Nodes[c.nodeB].Position

		if matchAxis == axisX {
			w[c.vertex].X = center
			w[c.vertex+1].X = center
		} else {
			w[c.vertex].Y = center
			w[c.vertex+1].Y = center
		}

		propagateJoints(wires, matchAxis, center, na, nb)
	}
}

// propagateJoints nudges every wire's tree-attachment joint (its last
// vertex) that sits on the shared line between na and nb, within their
// span, to center. A joint's coordinates are truncated to int32 before
// comparing them against the integer node coordinates. A joint that a prior
// candidate has already nudged usually no longer truncates to the shared
// coordinate, so later candidates leave it where it is.
func propagateJoints(wires []Wire, matchAxis axis, center float32, na, nb geom.Point) {
	if matchAxis == axisX {
		shared := na.X
		loY, hiY := minI32(na.Y, nb.Y), maxI32(na.Y, nb.Y)
		for i := range wires {
			joint := &wires[i].Points[len(wires[i].Points)-1]
			if int32(joint.X) == shared && int32(joint.Y) >= loY && int32(joint.Y) <= hiY {
				joint.X = center
			}
		}
		return
	}
	shared := na.Y
	loX, hiX := minI32(na.X, nb.X), maxI32(na.X, nb.X)
	for i := range wires {
		joint := &wires[i].Points[len(wires[i].Points)-1]
		if int32(joint.Y) == shared && int32(joint.X) >= loX && int32(joint.X) <= hiX {
			joint.Y = center
		}
	}
}
