package dataset

import (
	"fmt"

	"github.com/kbukum/gli/array"
	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/graph"
	"github.com/kbukum/gli/task"
)

// Dataset is a graph combined with a task.
type Dataset interface {
	// Name returns the task name.
	Name() string
	// TaskType returns the task's type.
	TaskType() task.Type
	// NumFolds returns the number of train/val/test splits.
	NumFolds() int
}

// Factory builds a Dataset from graphs and a task.
type Factory func(gs graph.Graphs, t *task.Task) (Dataset, error)

// base carries what every dataset kind shares.
type base struct {
	Task *task.Task
}

func (b base) Name() string        { return b.Task.Name }
func (b base) TaskType() task.Type { return b.Task.Type }

// Fold holds the ids of one split. For node datasets the ids are node ids,
// for graph datasets graph indices and for edge datasets edge ids.
type Fold struct {
	Train []int
	Val   []int
	Test  []int
}

func resolve(g *graph.Graph, refs []string) ([]*array.Array, error) {
	out := make([]*array.Array, 0, len(refs))
	for _, ref := range refs {
		a, err := g.Attr(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// toIDs reads a split set as ids in [0, n). Boolean arrays are masks of
// length n.
func toIDs(field string, set *array.Array, n int) ([]int, error) {
	if set == nil {
		return nil, nil
	}
	if set.Kind == array.Bool {
		if set.Size() != n {
			return nil, errors.InvalidInput(field, fmt.Sprintf("mask has %d entries, want %d", set.Size(), n))
		}
		var ids []int
		for i, on := range set.Bools {
			if on {
				ids = append(ids, i)
			}
		}
		return ids, nil
	}
	ids, err := set.IntSlice()
	if err != nil {
		return nil, errors.InvalidInput(field, err.Error())
	}
	for _, id := range ids {
		if id < 0 || id >= n {
			return nil, errors.InvalidInput(field, fmt.Sprintf("id %d out of range [0, %d)", id, n))
		}
	}
	return ids, nil
}

func folds(t *task.Task, n int) ([]Fold, error) {
	out := make([]Fold, len(t.Splits))
	for i, s := range t.Splits {
		var err error
		if out[i].Train, err = toIDs("train_set", s.Train, n); err != nil {
			return nil, err
		}
		if out[i].Val, err = toIDs("val_set", s.Val, n); err != nil {
			return nil, err
		}
		if out[i].Test, err = toIDs("test_set", s.Test, n); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Mask turns ids into a boolean mask of length n.
func Mask(ids []int, n int) []bool {
	m := make([]bool, n)
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func checkFamily(t *task.Task, want task.Family) error {
	if t.Type.Family() != want {
		return errors.InvalidInput("type", fmt.Sprintf("%s is not a %s task", t.Type, want))
	}
	return nil
}
