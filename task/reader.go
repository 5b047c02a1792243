package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/gli/array"
	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/logger"
	"github.com/kbukum/gli/validation"
)

// Reader loads task definitions.
type Reader struct {
	log *logger.Logger
}

// NewReader creates a Reader. A nil log falls back to logger.Get("task").
func NewReader(log *logger.Logger) *Reader {
	if log == nil {
		return &Reader{log: logger.Get("task")}
	}
	return &Reader{log: log.WithComponent("task")}
}

// ReadTask parses the task file at path and loads its split arrays. The
// task type is not checked against the known set.
func (r *Reader) ReadTask(ctx context.Context, path string, verbose bool) (*Task, error) {
	log := r.log.Verbose(verbose).WithContext(ctx)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound(path)
		}
		return nil, errors.Internal(err)
	}

	var t Task
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, errors.InvalidFormat(path, "json").WithCause(err)
	}
	if err := validation.Validate(&t); err != nil {
		return nil, err
	}
	if t.NumSplits == 0 {
		t.NumSplits = 1
	}
	t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	l := &splitLoader{ctx: ctx, dir: filepath.Dir(path), folds: t.NumSplits, cache: map[Ref]*array.Array{}}
	train, val, test := t.TrainSet, t.ValSet, t.TestSet
	if len(train) == 0 && len(t.TrainTripletSet) > 0 {
		train, val, test = t.TrainTripletSet, t.ValTripletSet, t.TestTripletSet
	}

	t.Splits = make([]Split, t.NumSplits)
	for f := range t.Splits {
		s := &t.Splits[f]
		if s.Train, err = l.fold("train_set", train, f); err != nil {
			return nil, err
		}
		if s.Val, err = l.fold("val_set", val, f); err != nil {
			return nil, err
		}
		if s.Test, err = l.fold("test_set", test, f); err != nil {
			return nil, err
		}
	}
	if t.ValNegatives, err = l.single("val_neg", t.ValNeg); err != nil {
		return nil, err
	}
	if t.TestNegatives, err = l.single("test_neg", t.TestNeg); err != nil {
		return nil, err
	}

	log.Info("task loaded", logger.Fields(
		logger.FieldPath, path,
		logger.FieldTask, string(t.Type),
		"num_splits", t.NumSplits,
	))
	return &t, nil
}

type splitLoader struct {
	ctx   context.Context
	dir   string
	folds int
	cache map[Ref]*array.Array
}

func (l *splitLoader) load(ref Ref) (*array.Array, error) {
	if a, ok := l.cache[ref]; ok {
		return a, nil
	}
	if err := l.ctx.Err(); err != nil {
		return nil, err
	}
	a, err := array.Load(filepath.Join(l.dir, ref.File), ref.Key)
	if err != nil {
		return nil, err
	}
	l.cache[ref] = a
	return a, nil
}

// fold returns the set for fold f. refs either lists one reference per
// fold, or holds a single reference whose array has a leading fold axis.
func (l *splitLoader) fold(field string, refs Refs, f int) (*array.Array, error) {
	switch {
	case len(refs) == 0:
		return nil, nil
	case len(refs) == l.folds:
		return l.load(refs[f])
	case len(refs) == 1:
		a, err := l.load(refs[0])
		if err != nil {
			return nil, err
		}
		if l.folds == 1 {
			return a, nil
		}
		if a.Dims() < 2 || a.Len() != l.folds {
			return nil, errors.InvalidInput(field, fmt.Sprintf("array shape %v has no leading axis of %d folds", a.Shape, l.folds))
		}
		return a.Row(f)
	default:
		return nil, errors.InvalidInput(field, fmt.Sprintf("%d references for %d folds", len(refs), l.folds))
	}
}

// single returns the array of a set shared by all folds.
func (l *splitLoader) single(field string, refs Refs) (*array.Array, error) {
	switch len(refs) {
	case 0:
		return nil, nil
	case 1:
		return l.load(refs[0])
	default:
		return nil, errors.InvalidInput(field, fmt.Sprintf("expected one reference, got %d", len(refs)))
	}
}
