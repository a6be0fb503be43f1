// Package parallel fans per-row work out over the available CPUs.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Rows calls fn once for every row in [0, n). Rows are split into
// contiguous bands, one goroutine per band. fn must only write to memory
// owned by its row.
func Rows(n int, fn func(row int)) {
	if n <= 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	band := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)

	for start := 0; start < n; start += band {
		end := start + band
		if end > n {
			end = n
		}
		start := start
		g.Go(func() error {
			for row := start; row < end; row++ {
				fn(row)
			}
			return nil
		})
	}

	// fn cannot fail
	_ = g.Wait()
}
