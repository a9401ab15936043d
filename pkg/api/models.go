package api

import (
	"wireroute/pkg/geom"
	"wireroute/pkg/routing"
)

// pointHTTP is the wire format for geom.Point: plain X/Y fields instead of
// the struct tags geom.Point doesn't carry.
type pointHTTP struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

type endpointHTTP struct {
	X         int32       `json:"x"`
	Y         int32       `json:"y"`
	Waypoints []pointHTTP `json:"waypoints,omitempty"`
}

type netHTTP struct {
	Endpoints []endpointHTTP `json:"endpoints"`
}

// vertexHTTP is the wire format for routing.Vertex: a wire's output
// points are float, unlike the integer endpoint/waypoint positions
// carried by pointHTTP.
type vertexHTTP struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type wireHTTP struct {
	Points   []vertexHTTP `json:"points"`
	Fallback bool         `json:"fallback"`
}

type netResultHTTP struct {
	Wires []wireHTTP `json:"wires"`
}

func toNets(in []netHTTP) []routing.Net {
	nets := make([]routing.Net, len(in))
	for i, n := range in {
		endpoints := make([]routing.Endpoint, len(n.Endpoints))
		for j, e := range n.Endpoints {
			waypoints := make([]geom.Point, len(e.Waypoints))
			for k, wp := range e.Waypoints {
				waypoints[k] = geom.Point{X: wp.X, Y: wp.Y}
			}
			endpoints[j] = routing.Endpoint{Position: geom.Point{X: e.X, Y: e.Y}, Waypoints: waypoints}
		}
		nets[i] = routing.Net{Endpoints: endpoints}
	}
	return nets
}

func toWireViews(results []routing.NetResult) []netResultHTTP {
	out := make([]netResultHTTP, len(results))
	for i, r := range results {
		wires := make([]wireHTTP, len(r.Wires))
		for j, w := range r.Wires {
			points := make([]vertexHTTP, len(w.Points))
			for k, p := range w.Points {
				points[k] = vertexHTTP{X: p.X, Y: p.Y}
			}
			wires[j] = wireHTTP{Points: points, Fallback: w.Fallback}
		}
		out[i] = netResultHTTP{Wires: wires}
	}
	return out
}
