// Package scene loads a JSON description of boxes, anchors, and nets into
// the types pkg/graph and pkg/routing operate on. It exists only for the
// demo commands (cmd/server, cmd/routeviz); the graph and routing
// packages never import it.
package scene

import (
	"encoding/json"
	"fmt"
	"io"

	"wireroute/pkg/geom"
	"wireroute/pkg/graph"
	"wireroute/pkg/routing"
)

type boxSpec struct {
	CenterX int32  `json:"center_x"`
	CenterY int32  `json:"center_y"`
	HalfW   uint32 `json:"half_w"`
	HalfH   uint32 `json:"half_h"`
}

type anchorSpec struct {
	X          int32    `json:"x"`
	Y          int32    `json:"y"`
	Box        *int     `json:"box,omitempty"`
	Directions []string `json:"directions,omitempty"`
}

type endpointSpec struct {
	X         int32      `json:"x"`
	Y         int32      `json:"y"`
	Waypoints [][2]int32 `json:"waypoints,omitempty"`
}

type netSpec struct {
	Endpoints []endpointSpec `json:"endpoints"`
}

type document struct {
	Boxes   []boxSpec    `json:"boxes"`
	Anchors []anchorSpec `json:"anchors"`
	Nets    []netSpec    `json:"nets"`
	Minimal bool         `json:"minimal"`
}

// Scene is a parsed scene: the boxes and anchors that define a graph,
// plus the nets to route against it once built.
type Scene struct {
	Boxes   []geom.Box
	Anchors []graph.Anchor
	Nets    []routing.Net
	Minimal bool
}

// Load parses a scene document from r.
func Load(r io.Reader) (Scene, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Scene{}, fmt.Errorf("scene: decode: %w", err)
	}

	boxes := make([]geom.Box, len(doc.Boxes))
	for i, b := range doc.Boxes {
		boxes[i] = geom.Box{CenterX: b.CenterX, CenterY: b.CenterY, HalfW: b.HalfW, HalfH: b.HalfH}
	}

	anchors := make([]graph.Anchor, len(doc.Anchors))
	for i, a := range doc.Anchors {
		box := geom.Invalid
		if a.Box != nil {
			if *a.Box < 0 || *a.Box >= len(boxes) {
				return Scene{}, fmt.Errorf("scene: anchor %d references box %d out of range", i, *a.Box)
			}
			box = geom.Index(*a.Box)
		}

		dirs := geom.AllDirections
		if len(a.Directions) > 0 {
			dirs = 0
			for _, ds := range a.Directions {
				d, err := parseDirection(ds)
				if err != nil {
					return Scene{}, fmt.Errorf("scene: anchor %d: %w", i, err)
				}
				dirs |= geom.DirSet(d)
			}
		}

		anchors[i] = graph.Anchor{
			Position:          geom.Point{X: a.X, Y: a.Y},
			Box:               box,
			ConnectDirections: dirs,
		}
	}

	nets := make([]routing.Net, len(doc.Nets))
	for i, n := range doc.Nets {
		endpoints := make([]routing.Endpoint, len(n.Endpoints))
		for j, e := range n.Endpoints {
			waypoints := make([]geom.Point, len(e.Waypoints))
			for k, wp := range e.Waypoints {
				waypoints[k] = geom.Point{X: wp[0], Y: wp[1]}
			}
			endpoints[j] = routing.Endpoint{
				Position:  geom.Point{X: e.X, Y: e.Y},
				Waypoints: waypoints,
			}
		}
		nets[i] = routing.Net{Endpoints: endpoints}
	}

	return Scene{Boxes: boxes, Anchors: anchors, Nets: nets, Minimal: doc.Minimal}, nil
}

func parseDirection(s string) (geom.Direction, error) {
	switch s {
	case "+x", "+X":
		return geom.DirPosX, nil
	case "-x", "-X":
		return geom.DirNegX, nil
	case "+y", "+Y":
		return geom.DirPosY, nil
	case "-y", "-Y":
		return geom.DirNegY, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}
