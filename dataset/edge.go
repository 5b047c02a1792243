package dataset

import (
	"fmt"

	"github.com/kbukum/gli/array"
	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/graph"
	"github.com/kbukum/gli/task"
)

// EdgeDataset is a link prediction or knowledge-graph dataset over a
// single graph.
type EdgeDataset struct {
	base
	Graph    *graph.Graph
	Features []*array.Array
	Folds    []Fold

	// ValNegatives and TestNegatives are the task's negative edges, if any.
	ValNegatives  *array.Array
	TestNegatives *array.Array

	// NumRelations is set for knowledge-graph tasks.
	NumRelations int
}

// NewEdgeDataset builds an EdgeDataset. A time-dependent link prediction
// task without explicit split sets is split by its time attribute and
// windows.
func NewEdgeDataset(gs graph.Graphs, t *task.Task) (*EdgeDataset, error) {
	if err := checkFamily(t, task.FamilyEdge); err != nil {
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
	if t.Type.IsKG() && t.NumRelations <= 0 {
		return nil, errors.InvalidInput("num_relations", "knowledge-graph tasks need num_relations")
	}

	var fs []Fold
	if t.Type == task.TimeDependentLinkPrediction && !hasSplitSets(t) {
		if !t.HasTimeWindows() {
			return nil, errors.InvalidInput("time", "time-dependent task has neither split sets nor time windows")
		}
		f, err := timeFold(g, t)
		if err != nil {
			return nil, err
		}
		fs = make([]Fold, len(t.Splits))
		for i := range fs {
			fs[i] = f
		}
	} else if fs, err = folds(t, g.NumEdges()); err != nil {
		return nil, err
	}

	if err := checkNegatives("val_neg", t.ValNegatives, g.NumNodes); err != nil {
		return nil, err
	}
	if err := checkNegatives("test_neg", t.TestNegatives, g.NumNodes); err != nil {
		return nil, err
	}

	return &EdgeDataset{
		base:          base{Task: t},
		Graph:         g,
		Features:      features,
		Folds:         fs,
		ValNegatives:  t.ValNegatives,
		TestNegatives: t.TestNegatives,
		NumRelations:  t.NumRelations,
	}, nil
}

// EdgeFactory is the Factory for edge tasks.
func EdgeFactory(gs graph.Graphs, t *task.Task) (Dataset, error) {
	return NewEdgeDataset(gs, t)
}

// NumFolds implements Dataset.
func (d *EdgeDataset) NumFolds() int { return len(d.Folds) }

// Edges returns the endpoints of the given edge ids.
func (d *EdgeDataset) Edges(ids []int) (src, dst []int) {
	src, dst = make([]int, len(ids)), make([]int, len(ids))
	for i, id := range ids {
		src[i], dst[i] = d.Graph.Src[id], d.Graph.Dst[id]
	}
	return src, dst
}

// checkNegatives requires a (K, 2) array of node ids in [0, numNodes).
func checkNegatives(field string, neg *array.Array, numNodes int) error {
	if neg == nil {
		return nil
	}
	if neg.Dims() != 2 || neg.Shape[1] != 2 {
		return errors.InvalidInput(field, fmt.Sprintf("negative edges have shape %v, want (K, 2)", neg.Shape))
	}
	ids, err := neg.IntSlice()
	if err != nil {
		return errors.InvalidInput(field, err.Error())
	}
	for i, id := range ids {
		if id < 0 || id >= numNodes {
			return errors.InvalidInput(field, fmt.Sprintf("negative edge %d has node %d outside [0, %d)", i/2, id, numNodes))
		}
	}
	return nil
}

func hasSplitSets(t *task.Task) bool {
	for _, s := range t.Splits {
		if s.Train != nil || s.Val != nil || s.Test != nil {
			return true
		}
	}
	return false
}

// timeFold assigns every edge to the window its time value falls in.
func timeFold(g *graph.Graph, t *task.Task) (Fold, error) {
	times, err := g.Attr(t.Time)
	if err != nil {
		return Fold{}, err
	}
	if times.Size() != g.NumEdges() {
		return Fold{}, errors.InvalidInput("time", fmt.Sprintf("%s has %d values, graph has %d edges", t.Time, times.Size(), g.NumEdges()))
	}

	var f Fold
	for e, v := range times.Float64s() {
		switch {
		case t.TrainTimeWindow.Contains(v):
			f.Train = append(f.Train, e)
		case t.ValTimeWindow.Contains(v):
			f.Val = append(f.Val, e)
		case t.TestTimeWindow.Contains(v):
			f.Test = append(f.Test, e)
		}
	}
	return f, nil
}
