package dataset

import (
	"github.com/kbukum/gli/array"
	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/graph"
	"github.com/kbukum/gli/task"
)

// GraphDataset is a graph classification or regression dataset.
type GraphDataset struct {
	base
	Graphs graph.Graphs
	// Targets holds each graph's target, in graph order.
	Targets []*array.Array
	Folds   []Fold
}

// NewGraphDataset builds a GraphDataset.
func NewGraphDataset(gs graph.Graphs, t *task.Task) (*GraphDataset, error) {
	if err := checkFamily(t, task.FamilyGraph); err != nil {
		return nil, err
	}
	if len(gs) == 0 {
		return nil, errors.InvalidInput("graph", "no graphs")
	}

	for _, g := range gs {
		if _, err := resolve(g, t.Feature); err != nil {
			return nil, err
		}
	}

	var targets []*array.Array
	if t.Target != "" {
		targets = make([]*array.Array, len(gs))
		for i, g := range gs {
			a, err := g.Attr(t.Target)
			if err != nil {
				return nil, err
			}
			targets[i] = a
		}
	}

	fs, err := folds(t, len(gs))
	if err != nil {
		return nil, err
	}
	return &GraphDataset{base: base{Task: t}, Graphs: gs, Targets: targets, Folds: fs}, nil
}

// GraphFactory is the Factory for graph tasks.
func GraphFactory(gs graph.Graphs, t *task.Task) (Dataset, error) {
	return NewGraphDataset(gs, t)
}

// NumFolds implements Dataset.
func (d *GraphDataset) NumFolds() int { return len(d.Folds) }

// Subset returns the graphs at ids.
func (d *GraphDataset) Subset(ids []int) graph.Graphs {
	out := make(graph.Graphs, len(ids))
	for i, id := range ids {
		out[i] = d.Graphs[id]
	}
	return out
}
