// Package segtree implements a 1-D interval index: given a query
// coordinate, enumerate every stored segment whose interval contains it.
// Build is O(n log n); query is O(log n + k) expected, where k is the
// number of hits.
package segtree

import "sort"

// Segment is an inclusive interval [Start, End] with an attached payload.
type Segment[T any] struct {
	Start, End int32
	Value      T
}

// Tree is a segment tree built once over a fixed slice of segments and
// queried many times. It is immutable after Build.
type Tree[T any] struct {
	segments []Segment[T] // sorted by Start
	maxLen   int32        // max(End - Start) across all segments
}

// Build sorts segments by Start and records the longest interval length.
// The input slice is not mutated; Build copies it.
func Build[T any](segments []Segment[T]) *Tree[T] {
	sorted := make([]Segment[T], len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var maxLen int32
	for _, s := range sorted {
		if l := s.End - s.Start; l > maxLen {
			maxLen = l
		}
	}

	return &Tree[T]{segments: sorted, maxLen: maxLen}
}

// Len returns the number of segments stored in the tree.
func (t *Tree[T]) Len() int { return len(t.segments) }

// QueryAppend appends every stored segment whose interval contains p to
// out, in unspecified order, and returns the extended slice. Reuse out
// across calls (e.g. per-thread scratch) to avoid allocation.
func (t *Tree[T]) QueryAppend(p int32, out []Segment[T]) []Segment[T] {
	segs := t.segments
	if len(segs) == 0 {
		return out
	}

	// start_index: smallest index whose Start + maxLen >= p.
	startIndex := sort.Search(len(segs), func(i int) bool {
		return segs[i].Start+t.maxLen >= p
	})

	// end_index: smallest index whose Start > p.
	endIndex := sort.Search(len(segs), func(i int) bool {
		return segs[i].Start > p
	})

	for i := startIndex; i < endIndex; i++ {
		if segs[i].End >= p {
			out = append(out, segs[i])
		}
	}
	return out
}

// Contains reports whether any stored segment contains p.
func (t *Tree[T]) Contains(p int32) bool {
	segs := t.segments
	if len(segs) == 0 {
		return false
	}
	startIndex := sort.Search(len(segs), func(i int) bool {
		return segs[i].Start+t.maxLen >= p
	})
	endIndex := sort.Search(len(segs), func(i int) bool {
		return segs[i].Start > p
	})
	for i := startIndex; i < endIndex; i++ {
		if segs[i].End >= p {
			return true
		}
	}
	return false
}
