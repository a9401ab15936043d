package api

import (
	"fmt"

	"wireroute/pkg/routing"
)

// ConnectNetsRequest is a batch of independent nets to connect against one
// built graph.
type ConnectNetsRequest struct {
	Nets []routing.Net
	// MaxNets, if non-zero, caps the batch size this call will accept;
	// a larger batch fails whole with ErrCapacityExceeded rather than
	// routing a truncated prefix.
	MaxNets int
}

// ConnectNetsResponse holds one NetResult per requested net, in order.
type ConnectNetsResponse struct {
	Results []routing.NetResult
}

// ConnectNets validates and routes every net in req against h's built
// graph, in parallel. Validation covers the whole batch before any
// routing happens: either every net is well-formed and every result comes
// back, or the call fails with no partial results.
func ConnectNets(h *GraphHandle, req ConnectNetsRequest) (ConnectNetsResponse, error) {
	if h == nil {
		return ConnectNetsResponse{}, ErrNilGraph
	}
	if !h.ready() {
		return ConnectNetsResponse{}, ErrNotBuilt
	}
	if req.MaxNets > 0 && len(req.Nets) > req.MaxNets {
		return ConnectNetsResponse{}, fmt.Errorf("%d nets requested, limit %d: %w", len(req.Nets), req.MaxNets, ErrCapacityExceeded)
	}

	for i, n := range req.Nets {
		if len(n.Endpoints) < 2 {
			return ConnectNetsResponse{}, fmt.Errorf("net %d: %w", i, ErrNotEnoughEndpoints)
		}
		for _, ep := range n.Endpoints {
			if _, ok := h.FindNode(ep.Position); !ok {
				return ConnectNetsResponse{}, fmt.Errorf("net %d endpoint %v: %w", i, ep.Position, ErrInvalidPoint)
			}
			for _, wp := range ep.Waypoints {
				if _, ok := h.FindNode(wp); !ok {
					return ConnectNetsResponse{}, fmt.Errorf("net %d waypoint %v: %w", i, wp, ErrInvalidPoint)
				}
			}
		}
	}

	h.mu.RLock()
	results := routing.RouteNets(h.g, req.Nets)
	h.mu.RUnlock()
	return ConnectNetsResponse{Results: results}, nil
}
