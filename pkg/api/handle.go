package api

import (
	"sync"

	"wireroute/pkg/geom"
	"wireroute/pkg/graph"
)

// GraphHandle owns a Graph and the Builder that fills it, guarded for
// concurrent readers against a single writer. The zero value is not
// usable; construct with NewGraphHandle.
type GraphHandle struct {
	mu      sync.RWMutex
	g       *graph.Graph
	builder *graph.Builder
	built   bool
}

// NewGraphHandle returns an empty, unbuilt handle.
func NewGraphHandle() *GraphHandle {
	return &GraphHandle{g: graph.New(), builder: graph.NewBuilder()}
}

// Build populates the handle's graph from anchors and boxes. Safe to call
// more than once on the same handle (e.g. a caller rebuilding a scene
// after an edit); each call fully replaces the previous graph.
func (h *GraphHandle) Build(anchors []graph.Anchor, boxes []geom.Box, minimal bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.builder.Build(h.g, anchors, boxes, minimal)
	h.built = true
}

// NumNodes returns the node count of the most recent build.
func (h *GraphHandle) NumNodes() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.g.NumNodes()
}

// FindNode looks up the node at p.
func (h *GraphHandle) FindNode(p geom.Point) (geom.Index, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.g.FindNode(p)
}

// Nodes returns a copy of the built graph's node slice.
func (h *GraphHandle) Nodes() []graph.Node {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]graph.Node, len(h.g.Nodes))
	copy(out, h.g.Nodes)
	return out
}

// ready reports whether the handle has a live, built graph.
func (h *GraphHandle) ready() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.built && h.g != nil
}

// Free releases a handle. The graph lives in memory only for as long as
// the handle is reachable; Free exists so a caller modeling an explicit
// release step (e.g. across a request boundary) has one to call.
func (h *GraphHandle) Free() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.g = nil
	h.built = false
}
