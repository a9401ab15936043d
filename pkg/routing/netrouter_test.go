package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireroute/pkg/geom"
	"wireroute/pkg/graph"
)

// TestRouteNetTwoPins connects a simple two-pin net in an open lattice.
func TestRouteNetTwoPins(t *testing.T) {
	g := graph.New()
	graph.NewBuilder().Build(g, []graph.Anchor{
		{Position: geom.Point{X: 0, Y: 0}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
		{Position: geom.Point{X: 10, Y: 0}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
	}, nil, false)

	nr := NewNetRouter()
	result := nr.RouteNet(g, Net{Endpoints: []Endpoint{
		{Position: geom.Point{X: 0, Y: 0}},
		{Position: geom.Point{X: 10, Y: 0}},
	}})
	require.Len(t, result.Wires, 1)
	assert.False(t, result.Wires[0].Fallback)
	assert.Equal(t, Vertex{X: 0, Y: 0}, result.Wires[0].Points[0])
	assert.Equal(t, Vertex{X: 10, Y: 0}, result.Wires[0].Points[len(result.Wires[0].Points)-1])
}

// TestRouteNetThreePinsFormsTree checks that a three-pin net produces two
// wires (the root wire plus one per endpoint beyond the root pair) and that
// every endpoint appears in some wire.
func TestRouteNetThreePinsFormsTree(t *testing.T) {
	g := graph.New()
	graph.NewBuilder().Build(g, []graph.Anchor{
		{Position: geom.Point{X: 0, Y: 0}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
		{Position: geom.Point{X: 10, Y: 0}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
		{Position: geom.Point{X: 5, Y: 0}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
	}, nil, false)

	nr := NewNetRouter()
	result := nr.RouteNet(g, Net{Endpoints: []Endpoint{
		{Position: geom.Point{X: 0, Y: 0}},
		{Position: geom.Point{X: 10, Y: 0}},
		{Position: geom.Point{X: 5, Y: 0}},
	}})
	require.Len(t, result.Wires, 2)

	covered := make(map[geom.Point]bool)
	for _, w := range result.Wires {
		for _, p := range w.Points {
			covered[geom.Point{X: int32(p.X), Y: int32(p.Y)}] = true
		}
	}
	assert.True(t, covered[geom.Point{X: 0, Y: 0}])
	assert.True(t, covered[geom.Point{X: 10, Y: 0}])
	assert.True(t, covered[geom.Point{X: 5, Y: 0}])
}

// TestRouteNetFallsBackWhenUnreachable checks that an endpoint with no
// graph node still produces a wire instead of an error.
func TestRouteNetFallsBackWhenUnreachable(t *testing.T) {
	g := graph.New()
	graph.NewBuilder().Build(g, []graph.Anchor{
		{Position: geom.Point{X: 0, Y: 0}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
	}, nil, false)

	nr := NewNetRouter()
	result := nr.RouteNet(g, Net{Endpoints: []Endpoint{
		{Position: geom.Point{X: 0, Y: 0}},
		{Position: geom.Point{X: 99, Y: 99}}, // not a graph node
	}})
	require.Len(t, result.Wires, 1)
	assert.True(t, result.Wires[0].Fallback)
}

// TestRouteNetsParallelMatchesSequential checks that routing a batch of
// independent nets through the worker pool gives the same per-net results
// as routing each one with its own NetRouter.
func TestRouteNetsParallelMatchesSequential(t *testing.T) {
	g := graph.New()
	graph.NewBuilder().Build(g, []graph.Anchor{
		{Position: geom.Point{X: 0, Y: 0}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
		{Position: geom.Point{X: 10, Y: 0}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
		{Position: geom.Point{X: 0, Y: 10}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
		{Position: geom.Point{X: 10, Y: 10}, Box: geom.Invalid, ConnectDirections: geom.AllDirections},
	}, nil, false)

	nets := []Net{
		{Endpoints: []Endpoint{{Position: geom.Point{X: 0, Y: 0}}, {Position: geom.Point{X: 10, Y: 0}}}},
		{Endpoints: []Endpoint{{Position: geom.Point{X: 0, Y: 10}}, {Position: geom.Point{X: 10, Y: 10}}}},
		{Endpoints: []Endpoint{{Position: geom.Point{X: 0, Y: 0}}, {Position: geom.Point{X: 0, Y: 10}}}},
	}

	parallelResults := RouteNets(g, nets)

	for i, net := range nets {
		nr := NewNetRouter()
		seq := nr.RouteNet(g, net)
		require.Len(t, parallelResults[i].Wires, len(seq.Wires))
		for wi := range seq.Wires {
			assert.Equal(t, seq.Wires[wi].Points, parallelResults[i].Wires[wi].Points)
		}
	}
}

// TestRouteNetCentersAlleyIdempotently checks that alley centering (which
// runs automatically inside RouteNet) is idempotent: routing the same net
// against the same graph twice produces byte-identical wires, since node
// positions never move and a corridor's midline is a pure function of the
// graph.
func TestRouteNetCentersAlleyIdempotently(t *testing.T) {
	boxes := []geom.Box{
		{CenterX: 0, CenterY: 5, HalfW: 2, HalfH: 5},
		{CenterX: 10, CenterY: 5, HalfW: 2, HalfH: 5},
	}
	g := graph.New()
	graph.NewBuilder().Build(g, []graph.Anchor{
		{Position: geom.Point{X: -2, Y: 5}, Box: geom.Index(0), ConnectDirections: geom.DirSet(geom.DirNegX)},
		{Position: geom.Point{X: 12, Y: 5}, Box: geom.Index(1), ConnectDirections: geom.DirSet(geom.DirPosX)},
		{Position: geom.Point{X: 5, Y: 0}, ConnectDirections: geom.AllDirections},
		{Position: geom.Point{X: 5, Y: 10}, ConnectDirections: geom.AllDirections},
	}, boxes, false)

	net := Net{Endpoints: []Endpoint{
		{Position: geom.Point{X: 5, Y: 0}},
		{Position: geom.Point{X: 5, Y: 10}},
	}}

	first := NewNetRouter().RouteNet(g, net)
	second := NewNetRouter().RouteNet(g, net)
	require.Len(t, first.Wires, 1)
	require.Len(t, second.Wires, 1)
	assert.Equal(t, first.Wires[0].Points, second.Wires[0].Points)
}
