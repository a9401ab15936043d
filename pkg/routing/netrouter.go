package routing

import (
	"wireroute/pkg/geom"
	"wireroute/pkg/graph"
)

// Endpoint is one pin of a net to be connected.
type Endpoint struct {
	Position geom.Point
	// Arrival, if set, is the direction the pin faces outward (e.g. a
	// component's connect direction); it seeds the bend penalty for the
	// first hop out of this endpoint so routes leave pins cleanly instead
	// of doubling back across the component.
	Arrival *geom.Direction
	// Waypoints are required via-points this endpoint's route must visit,
	// in order, before joining the rest of the net.
	Waypoints []geom.Point
}

// Net is a single multi-pin net to connect.
type Net struct {
	Endpoints []Endpoint
}

// Vertex is one point of a routed wire's output polyline. Unlike the
// integer lattice positions routing operates over, a vertex is a 32-bit
// float: alley centering (see alley.go) nudges a straight run to its
// corridor's midline, which for a corridor of odd width falls on a
// half-integer coordinate.
type Vertex struct {
	X, Y float32
}

func vertexAt(p geom.Point) Vertex {
	return Vertex{X: float32(p.X), Y: float32(p.Y)}
}

// Wire is one routed branch of a net: an ordered polyline from one
// endpoint (or a waypoint) to a point on the already-grown tree.
type Wire struct {
	Points   []Vertex
	Fallback bool // true if this branch could not be routed and is a direct jump
}

// NetResult is the output of routing one net: one Wire per endpoint beyond
// the first, connecting it into a single connected tree.
type NetResult struct {
	Wires []Wire
}

// NetRouter builds a connected tree of wires for each net's endpoints.
// Like Finder, a NetRouter holds reusable scratch and should be kept one
// per worker rather than constructed per net.
type NetRouter struct {
	finder *Finder
}

// NewNetRouter returns a ready-to-use NetRouter.
func NewNetRouter() *NetRouter {
	return &NetRouter{finder: NewFinder()}
}

// RouteNet connects every endpoint of net into one tree. Routing never
// hard-fails: an endpoint or leg that cannot be pathed falls back to a
// direct two-point segment so the caller always gets one wire per
// endpoint beyond the first.
func (nr *NetRouter) RouteNet(g *graph.Graph, net Net) NetResult {
	var result NetResult
	n := len(net.Endpoints)
	if n < 2 {
		return result
	}

	i0, i1 := farthestPair(net.Endpoints)

	tree := newTreeNodes()
	var candidates []centeringCandidate
	rootWire := nr.routeChain(g, net.Endpoints[i0], []geom.Point{net.Endpoints[i1].Position}, tree, &candidates, 0)
	result.Wires = append(result.Wires, rootWire)
	tree.addPoint(net.Endpoints[i1].Position)

	for i, ep := range net.Endpoints {
		if i == i0 || i == i1 {
			continue
		}
		wireIdx := len(result.Wires)
		wire := nr.routeChain(g, ep, tree.points(), tree, &candidates, wireIdx)
		result.Wires = append(result.Wires, wire)
	}

	centerAlleys(g, result.Wires, candidates)
	return result
}

// farthestPair returns the indices of the two endpoints with the greatest
// Manhattan distance between them; they become the net's root pair, routed
// first so branches attach to the longest backbone.
func farthestPair(endpoints []Endpoint) (int, int) {
	best := int64(-1)
	bi, bj := 0, 1
	for i := 0; i < len(endpoints); i++ {
		for j := i + 1; j < len(endpoints); j++ {
			d := geom.Manhattan(endpoints[i].Position, endpoints[j].Position)
			if d > best {
				best = d
				bi, bj = i, j
			}
		}
	}
	return bi, bj
}

// routeChain routes from ep through its waypoints in order, then to
// whichever point in finalTargets is reached first. Every successfully
// routed node along the way is added to tree so later branches can attach
// to it, not just to the net's pin positions.
func (nr *NetRouter) routeChain(g *graph.Graph, ep Endpoint, finalTargets []geom.Point, tree *treeNodes, candidates *[]centeringCandidate, wireIdx int) Wire {
	cur := ep.Position
	arrival := ep.Arrival
	points := []Vertex{vertexAt(cur)}
	tree.addPoint(cur)

	for _, wp := range ep.Waypoints {
		result, path := nr.finder.FindPath(g, cur, arrival, []geom.Point{wp}, true)
		if result != Found {
			return fallbackWire(points, wp)
		}
		points = appendLeg(g, points, path, tree, candidates, wireIdx)
		cur = wp
		arrival = lastDirection(path)
	}

	result, path := nr.finder.FindPath(g, cur, arrival, finalTargets, false)
	if result != Found {
		target := cur
		if len(finalTargets) > 0 {
			target = finalTargets[0]
		}
		return fallbackWire(points, target)
	}
	points = appendLeg(g, points, path, tree, candidates, wireIdx)
	return Wire{Points: points}
}

// appendLeg appends a found leg's pruned vertices (skipping the duplicate
// start vertex already present) to points, registers every node the leg
// actually passed through — not just its bend points — as a valid
// attachment point for later branches, and records a centering candidate
// for every consecutive pair of pruned vertices that is purely "normal"
// (neither node has IsAnchor set) and is not an immediate reversal of the
// previous segment's bend, so centerAlleys can later nudge that run
// toward its corridor's midline.
func appendLeg(g *graph.Graph, points []Vertex, path *Path, tree *treeNodes, candidates *[]centeringCandidate, wireIdx int) []Vertex {
	for _, pp := range path.Points {
		tree.addPoint(pp.Position)
	}
	pruned := path.Pruned()

	vertexBase := len(points) - 1
	for i := 0; i+1 < len(pruned); i++ {
		if g.Nodes[pruned[i].Node].IsAnchor || g.Nodes[pruned[i+1].Node].IsAnchor {
			continue
		}
		if i >= 1 && i+1 <= len(pruned)-2 &&
			pruned[i-1].HasDir && pruned[i+1].HasDir &&
			pruned[i-1].Dir == pruned[i+1].Dir.Opposite() {
			continue
		}
		*candidates = append(*candidates, centeringCandidate{
			nodeA:  pruned[i].Node,
			nodeB:  pruned[i+1].Node,
			wire:   wireIdx,
			vertex: vertexBase + i,
		})
	}

	for _, pp := range pruned[1:] {
		points = append(points, vertexAt(pp.Position))
	}
	return points
}

func lastDirection(path *Path) *geom.Direction {
	if len(path.Points) < 2 {
		return nil
	}
	d := path.Points[len(path.Points)-2].Dir
	return &d
}

// fallbackWire closes out a branch that could not be pathed with a direct
// jump from the last successfully reached point to target. Routing never
// hard-fails a net: an unreachable branch still produces a wire.
func fallbackWire(points []Vertex, target geom.Point) Wire {
	points = append(points, vertexAt(target))
	return Wire{Points: points, Fallback: true}
}

// treeNodes is the accumulating set of points a net's already-routed
// wires pass through; later branches may attach to any of them.
type treeNodes struct {
	set  map[geom.Point]struct{}
	list []geom.Point
}

func newTreeNodes() *treeNodes {
	return &treeNodes{set: make(map[geom.Point]struct{})}
}

func (t *treeNodes) addPoint(p geom.Point) {
	if _, ok := t.set[p]; ok {
		return
	}
	t.set[p] = struct{}{}
	t.list = append(t.list, p)
}

func (t *treeNodes) points() []geom.Point {
	return t.list
}
