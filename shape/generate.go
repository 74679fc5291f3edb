package shape

import (
	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/internal/parallel"
	"github.com/gogpu/icgeom/sink"
)

// Job pairs a cell with the sink that receives its shapes.
type Job struct {
	Cell *cell.Cell
	Sink sink.Sink
}

// Generate emits the shapes of every job on a pool of workers and returns
// the shape count of each job. Each worker owns one Builder, so the sinks
// of different jobs must be distinct. With workers <= 0, GOMAXPROCS is
// used.
//
// The output of a job does not depend on the worker that ran it.
func Generate(jobs []Job, workers int, opts ...Option) []int {
	counts := make([]int, len(jobs))
	if len(jobs) == 0 {
		return counts
	}

	pool := parallel.NewWorkerPool(min(workers, len(jobs)))
	defer pool.Close()

	builders := make([]*Builder, pool.Workers())
	for i := range builders {
		builders[i] = NewBuilder(nil, opts...)
	}

	work := make([]parallel.Job, len(jobs))
	for i, j := range jobs {
		if j.Cell == nil || j.Sink == nil {
			continue
		}
		work[i] = func(worker int) {
			b := builders[worker]
			b.SetSink(j.Sink)
			counts[i] = b.ShapeOfCell(j.Cell)
		}
	}
	pool.ExecuteAll(work)

	icgeom.Logger().Debug("shape: generate done", "jobs", len(jobs), "workers", pool.Workers())
	return counts
}
