package assemble

import (
	"context"
	"math/rand"

	"basgen/internal/stats"
	"basgen/internal/xmltree"
)

// Task is one independently generated document section. Every section,
// whatever its shape, exposes the same single operation so the coordinator
// treats all of them uniformly.
type Task interface {
	Name() string
	Run(ctx context.Context, rng *rand.Rand, c *stats.Counters) (*xmltree.Element, error)
}

// RunFunc is the body of a section-generation task.
type RunFunc func(ctx context.Context, rng *rand.Rand, c *stats.Counters) (*xmltree.Element, error)

type taskFunc struct {
	name string
	run  RunFunc
}

func (t taskFunc) Name() string { return t.name }

func (t taskFunc) Run(ctx context.Context, rng *rand.Rand, c *stats.Counters) (*xmltree.Element, error) {
	return t.run(ctx, rng, c)
}

// NewTask wraps a function as a named Task.
func NewTask(name string, run RunFunc) Task {
	return taskFunc{name: name, run: run}
}
