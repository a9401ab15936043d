package routing

import (
	"runtime"
	"sync"

	"wireroute/pkg/graph"
)

// RouteNets connects every net in nets against g, using a worker per CPU.
// Each worker owns its own Finder/NetRouter scratch, so nets are never
// split across goroutines and no locking is needed: net i's result always
// lands at results[i].
func RouteNets(g *graph.Graph, nets []Net) []NetResult {
	results := make([]NetResult, len(nets))
	if len(nets) == 0 {
		return results
	}

	workers := runtime.NumCPU()
	if workers > len(nets) {
		workers = len(nets)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	chunk := (len(nets) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(nets) {
			break
		}
		end := start + chunk
		if end > len(nets) {
			end = len(nets)
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			router := NewNetRouter()
			for i := lo; i < hi; i++ {
				results[i] = router.RouteNet(g, nets[i])
			}
		}(start, end)
	}
	wg.Wait()
	return results
}
