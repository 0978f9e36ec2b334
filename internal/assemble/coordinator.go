package assemble

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"basgen/internal/stats"
	"basgen/internal/xmltree"
)

// MaxWorkers caps the section worker pool regardless of available cores.
const MaxWorkers = 8

// Options configure a concurrent assembly run.
type Options struct {
	// Workers bounds the generation pool; <= 0 uses min(GOMAXPROCS, MaxWorkers).
	Workers int

	// Seed derives each task's private random source as Seed + ordinal, so
	// output is byte-identical for a fixed seed regardless of scheduling.
	Seed int64

	// FailFast aborts the run on the first section failure instead of
	// omitting the section and continuing.
	FailFast bool

	// Progress receives per-section events. May be nil.
	Progress ProgressSink
}

type taskResult struct {
	subtree  *xmltree.Element
	counters stats.Counters
	err      error
	elapsed  time.Duration
}

// Assemble runs the section tasks concurrently and appends each completed
// subtree to root in the declared task order, never in completion order.
// The merge and the counter reduction are single-threaded.
//
// Without FailFast a failed section is omitted from the document and
// recorded as a finding in the merged counters; the run continues. The
// returned slice names every omitted section.
func Assemble(ctx context.Context, root *xmltree.Element, tasks []Task, opts Options) (stats.Counters, []string, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = min(runtime.GOMAXPROCS(0), MaxWorkers)
	}

	// Indexes are unique per goroutine, so the results slice needs no lock.
	results := make([]taskResult, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, max(len(tasks), 1)))

	for i, task := range tasks {
		emit(opts.Progress, Event{Section: task.Name(), Stage: StageGenerate, Status: StatusQueued})
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(opts.Progress, Event{Section: task.Name(), Stage: StageGenerate, Status: StatusWorking})

			start := time.Now()
			rng := rand.New(rand.NewSource(opts.Seed + int64(i)))
			var c stats.Counters
			subtree, err := task.Run(gctx, rng, &c)
			results[i] = taskResult{subtree: subtree, counters: c, err: err, elapsed: time.Since(start)}

			if err != nil {
				emit(opts.Progress, Event{Section: task.Name(), Stage: StageGenerate, Status: StatusError, Err: err, Elapsed: results[i].elapsed})
				if opts.FailFast {
					return fmt.Errorf("section %s: %w", task.Name(), err)
				}
				return nil
			}
			emit(opts.Progress, Event{Section: task.Name(), Stage: StageGenerate, Status: StatusDone, Elapsed: results[i].elapsed})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats.Counters{}, nil, err
	}

	emit(opts.Progress, Event{Stage: StageMerge, Status: StatusWorking})
	var merged stats.Counters
	var omitted []string
	for i, task := range tasks {
		r := results[i]
		if r.err != nil || r.subtree == nil {
			omitted = append(omitted, task.Name())
			merged.AddFinding(fmt.Sprintf("section %s omitted: %v", task.Name(), r.err))
			continue
		}
		root.Append(r.subtree)
		merged.Merge(r.counters)
	}
	emit(opts.Progress, Event{Stage: StageMerge, Status: StatusDone})

	return merged, omitted, nil
}
