package task

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kbukum/gli/array"
)

// Ref locates an array inside an .npz payload.
type Ref struct {
	File string `json:"file" validate:"required"`
	Key  string `json:"key" validate:"required"`
}

// Refs is one reference, or one reference per fold. It decodes from either
// a JSON object or an array of objects.
type Refs []Ref

// UnmarshalJSON implements json.Unmarshaler.
func (r *Refs) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*r = nil
		return nil
	case len(b) > 0 && b[0] == '[':
		var list []Ref
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*r = list
		return nil
	default:
		var one Ref
		if err := json.Unmarshal(b, &one); err != nil {
			return fmt.Errorf("split set must be an object or a list of objects: %w", err)
		}
		*r = Refs{one}
		return nil
	}
}

// Window is an inclusive [lo, hi] time range.
type Window [2]float64

// Contains reports whether v falls inside w.
func (w Window) Contains(v float64) bool { return v >= w[0] && v <= w[1] }

// Split holds one fold's train, validation and test sets. A nil set is
// absent from the task.
type Split struct {
	Train *array.Array
	Val   *array.Array
	Test  *array.Array
}

// Task is a parsed task definition.
type Task struct {
	Description string   `json:"description"`
	Type        Type     `json:"type" validate:"required"`
	Feature     []string `json:"feature"`
	Target      string   `json:"target,omitempty"`
	NumClasses  int      `json:"num_classes,omitempty" validate:"gte=0"`
	NumSplits   int      `json:"num_splits,omitempty" validate:"gte=0"`

	TrainSet Refs `json:"train_set,omitempty" validate:"dive"`
	ValSet   Refs `json:"val_set,omitempty" validate:"dive"`
	TestSet  Refs `json:"test_set,omitempty" validate:"dive"`

	// Link prediction negatives.
	ValNeg  Refs `json:"val_neg,omitempty" validate:"dive"`
	TestNeg Refs `json:"test_neg,omitempty" validate:"dive"`

	// Time-dependent link prediction.
	Time            string  `json:"time,omitempty"`
	TrainTimeWindow *Window `json:"train_time_window,omitempty"`
	ValTimeWindow   *Window `json:"val_time_window,omitempty"`
	TestTimeWindow  *Window `json:"test_time_window,omitempty"`

	// Knowledge graph tasks.
	TrainTripletSet Refs `json:"train_triplet_set,omitempty" validate:"dive"`
	ValTripletSet   Refs `json:"val_triplet_set,omitempty" validate:"dive"`
	TestTripletSet  Refs `json:"test_triplet_set,omitempty" validate:"dive"`
	NumRelations    int  `json:"num_relations,omitempty" validate:"gte=0"`

	// Name is the task file name without its extension.
	Name string `json:"-"`
	// Splits holds the loaded split sets, one entry per fold.
	Splits []Split `json:"-"`
	// ValNegatives and TestNegatives hold the loaded negative edges.
	ValNegatives  *array.Array `json:"-"`
	TestNegatives *array.Array `json:"-"`
}

// Split returns fold i.
func (t *Task) Split(i int) (Split, error) {
	if i < 0 || i >= len(t.Splits) {
		return Split{}, fmt.Errorf("task: fold %d out of range [0, %d)", i, len(t.Splits))
	}
	return t.Splits[i], nil
}

// HasTimeWindows reports whether all three time windows are set.
func (t *Task) HasTimeWindows() bool {
	return t.Time != "" && t.TrainTimeWindow != nil && t.ValTimeWindow != nil && t.TestTimeWindow != nil
}
