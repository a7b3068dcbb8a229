package ranges

import (
	"runtime"

	"github.com/npillmayer/schuko/gconf"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelThreshold is the minimum number of result elements for
// splitting a computation into parallel chunks, if configuration key
// "ranges.parallel-threshold" is not set.
const DefaultParallelThreshold = 4096

// parallelThreshold reads the threshold from the global configuration.
func parallelThreshold() (threshold int) {
	threshold = DefaultParallelThreshold
	defer func() {
		if r := recover(); r != nil { // configuration not initialized
			threshold = DefaultParallelThreshold
		}
	}()
	if gconf.IsSet("ranges.parallel-threshold") {
		if t := gconf.GetInt("ranges.parallel-threshold"); t > 0 {
			threshold = t
		}
	}
	return
}

// forChunks calls f for consecutive chunks [from,to) covering [0,n). Above
// the parallel threshold the chunks are processed concurrently, one per CPU.
// The first error returned by f is returned.
func forChunks(n int, f func(from, to int) error) error {
	threshold := parallelThreshold()
	workers := runtime.NumCPU()
	if n < threshold || workers < 2 {
		return f(0, n)
	}
	chunkSize := max((n+workers-1)/workers, threshold/workers, 1)
	tracer().Debugf("splitting %d elements into chunks of %d", n, chunkSize)
	var g errgroup.Group
	for start := 0; start < n; start += chunkSize {
		from, to := start, min(start+chunkSize, n)
		g.Go(func() error {
			return f(from, to)
		})
	}
	return g.Wait()
}
