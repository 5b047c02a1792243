package dataset

import (
	"fmt"

	"github.com/kbukum/gli/array"
	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/graph"
	"github.com/kbukum/gli/task"
)

// NodeDataset is a node classification or regression dataset over a
// single graph.
type NodeDataset struct {
	base
	Graph    *graph.Graph
	Features []*array.Array
	Target   *array.Array
	Folds    []Fold
}

// NewNodeDataset builds a NodeDataset.
func NewNodeDataset(gs graph.Graphs, t *task.Task) (*NodeDataset, error) {
	if err := checkFamily(t, task.FamilyNode); err != nil {
		return nil, err
	}
	g, err := gs.Single()
	if err != nil {
		return nil, err
	}

	features, err := resolve(g, t.Feature)
	if err != nil {
		return nil, err
	}
	for i, f := range features {
		if f.Len() != g.NumNodes {
			return nil, errors.InvalidInput("feature", fmt.Sprintf("%s has %d rows, graph has %d nodes", t.Feature[i], f.Len(), g.NumNodes))
		}
	}

	var target *array.Array
	if t.Target != "" {
		if target, err = g.Attr(t.Target); err != nil {
			return nil, err
		}
		if target.Len() != g.NumNodes {
			return nil, errors.InvalidInput("target", fmt.Sprintf("%s has %d rows, graph has %d nodes", t.Target, target.Len(), g.NumNodes))
		}
	}

	fs, err := folds(t, g.NumNodes)
	if err != nil {
		return nil, err
	}
	return &NodeDataset{base: base{Task: t}, Graph: g, Features: features, Target: target, Folds: fs}, nil
}

// NodeFactory is the Factory for node tasks.
func NodeFactory(gs graph.Graphs, t *task.Task) (Dataset, error) {
	return NewNodeDataset(gs, t)
}

// NumFolds implements Dataset.
func (d *NodeDataset) NumFolds() int { return len(d.Folds) }

// Masks returns the train, validation and test node masks of fold i.
func (d *NodeDataset) Masks(i int) (train, val, test []bool) {
	f, n := d.Folds[i], d.Graph.NumNodes
	return Mask(f.Train, n), Mask(f.Val, n), Mask(f.Test, n)
}
