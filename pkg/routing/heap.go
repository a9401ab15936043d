package routing

import "wireroute/pkg/geom"

// pqItem is a priority queue entry for the A* open set: a node plus its
// g-score (cost so far) and f-score (g + heuristic), the latter being the
// queue's sort key.
type pqItem struct {
	node geom.Index
	g, f int64
}

// pqueue is a concrete-typed binary min-heap keyed on f-score. It uses the
// hole-sift technique (one assignment per level instead of a three-way
// swap) and is reset, not reallocated, between searches.
type pqueue struct {
	items []pqItem
}

func (h *pqueue) Len() int { return len(h.items) }

func (h *pqueue) Reset() { h.items = h.items[:0] }

func (h *pqueue) Push(node geom.Index, g, f int64) {
	h.items = append(h.items, pqItem{node: node, g: g, f: f})
	h.siftUp(len(h.items) - 1)
}

func (h *pqueue) Pop() pqItem {
	top := h.items[0]
	n := len(h.items) - 1
	h.items[0] = h.items[n]
	h.items = h.items[:n]
	if n > 0 {
		h.siftDown(0)
	}
	return top
}

func (h *pqueue) siftUp(i int) {
	item := h.items[i]
	for i > 0 {
		parent := (i - 1) / 2
		if item.f >= h.items[parent].f {
			break
		}
		h.items[i] = h.items[parent]
		i = parent
	}
	h.items[i] = item
}

func (h *pqueue) siftDown(i int) {
	n := len(h.items)
	item := h.items[i]
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if right := child + 1; right < n && h.items[right].f < h.items[child].f {
			child = right
		}
		if item.f <= h.items[child].f {
			break
		}
		h.items[i] = h.items[child]
		i = child
	}
	h.items[i] = item
}
