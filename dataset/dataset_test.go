package dataset

import (
	"reflect"
	"testing"

	"github.com/kbukum/gli/array"
	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/graph"
	"github.com/kbukum/gli/task"
)

// toyGraph has 4 nodes and 3 edges 0-1, 1-2, 2-3.
func toyGraph() *graph.Graph {
	return &graph.Graph{
		NumNodes: 4,
		Src:      []int{0, 1, 2},
		Dst:      []int{1, 2, 3},
		NodeAttrs: map[string]*array.Array{
			"NodeFeature": array.NewFloat(make([]float64, 8), 4, 2),
			"NodeLabel":   array.NewInt([]int64{0, 1, 0, 1}),
		},
		EdgeAttrs: map[string]*array.Array{
			"EdgeYear": array.NewInt([]int64{2001, 2005, 2009}),
		},
		GraphAttrs: map[string]*array.Array{},
		Device:     "cpu",
	}
}

func oneFold(train, val, test *array.Array) []task.Split {
	return []task.Split{{Train: train, Val: val, Test: test}}
}

func TestNodeDataset(t *testing.T) {
	tk := &task.Task{
		Name:      "task_node_classification_1",
		Type:      task.NodeClassification,
		Feature:   []string{"Node/NodeFeature"},
		Target:    "Node/NodeLabel",
		NumSplits: 1,
		Splits: oneFold(
			array.NewInt([]int64{0, 1}),
			array.NewBool([]bool{false, false, true, false}),
			array.NewInt([]int64{3}),
		),
	}

	ds, err := NodeFactory(graph.Graphs{toyGraph()}, tk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nd, ok := ds.(*NodeDataset)
	if !ok {
		t.Fatalf("expected *NodeDataset, got %T", ds)
	}
	if nd.Name() != "task_node_classification_1" || nd.TaskType() != task.NodeClassification {
		t.Errorf("name %q type %q", nd.Name(), nd.TaskType())
	}
	if nd.NumFolds() != 1 || len(nd.Features) != 1 || nd.Target == nil {
		t.Errorf("unexpected dataset %+v", nd)
	}

	train, val, test := nd.Masks(0)
	if !reflect.DeepEqual(train, []bool{true, true, false, false}) {
		t.Errorf("train mask %v", train)
	}
	if !reflect.DeepEqual(val, []bool{false, false, true, false}) {
		t.Errorf("val mask %v", val)
	}
	if !reflect.DeepEqual(test, []bool{false, false, false, true}) {
		t.Errorf("test mask %v", test)
	}
}

func TestNodeDatasetErrors(t *testing.T) {
	tests := []struct {
		name string
		gs   graph.Graphs
		task *task.Task
	}{
		{"wrong family", graph.Graphs{toyGraph()}, &task.Task{Type: task.GraphRegression}},
		{"two graphs", graph.Graphs{toyGraph(), toyGraph()}, &task.Task{Type: task.NodeRegression}},
		{"unknown feature", graph.Graphs{toyGraph()}, &task.Task{Type: task.NodeRegression, Feature: []string{"Node/Nope"}}},
		{"edge-sized feature", graph.Graphs{toyGraph()}, &task.Task{Type: task.NodeRegression, Feature: []string{"Edge/EdgeYear"}}},
		{"id out of range", graph.Graphs{toyGraph()}, &task.Task{
			Type:   task.NodeClassification,
			Splits: oneFold(array.NewInt([]int64{4}), nil, nil),
		}},
		{"mask length", graph.Graphs{toyGraph()}, &task.Task{
			Type:   task.NodeClassification,
			Splits: oneFold(array.NewBool([]bool{true}), nil, nil),
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewNodeDataset(tc.gs, tc.task)
			if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestGraphDataset(t *testing.T) {
	var gs graph.Graphs
	for i := 0; i < 3; i++ {
		g := toyGraph()
		g.GraphAttrs["GraphLabel"] = array.NewFloat([]float64{float64(i) / 2})
		gs = append(gs, g)
	}
	tk := &task.Task{
		Type:   task.GraphRegression,
		Target: "Graph/GraphLabel",
		Splits: []task.Split{
			{Train: array.NewInt([]int64{0, 1}), Test: array.NewInt([]int64{2})},
			{Train: array.NewInt([]int64{1, 2}), Test: array.NewInt([]int64{0})},
		},
	}

	ds, err := GraphFactory(gs, tk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gd := ds.(*GraphDataset)
	if gd.NumFolds() != 2 {
		t.Errorf("NumFolds = %d", gd.NumFolds())
	}
	if len(gd.Targets) != 3 || gd.Targets[2].Floats[0] != 1 {
		t.Errorf("targets %v", gd.Targets)
	}
	sub := gd.Subset(gd.Folds[1].Test)
	if len(sub) != 1 || sub[0] != gs[0] {
		t.Errorf("subset %v", sub)
	}

	if _, err := GraphFactory(nil, tk); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for no graphs, got %v", err)
	}
}

func TestEdgeDatasetSplitSets(t *testing.T) {
	tk := &task.Task{
		Type:          task.LinkPrediction,
		Splits:        oneFold(array.NewInt([]int64{0}), array.NewInt([]int64{1}), array.NewInt([]int64{2})),
		TestNegatives: array.NewInt([]int64{0, 3}, 1, 2),
	}
	ds, err := EdgeFactory(graph.Graphs{toyGraph()}, tk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ed := ds.(*EdgeDataset)
	src, dst := ed.Edges(ed.Folds[0].Test)
	if !reflect.DeepEqual(src, []int{2}) || !reflect.DeepEqual(dst, []int{3}) {
		t.Errorf("test edges %v -> %v", src, dst)
	}
	if ed.TestNegatives == nil {
		t.Error("expected test negatives")
	}
}

func TestEdgeDatasetNegativesChecked(t *testing.T) {
	tests := []struct {
		name string
		val  *array.Array
		test *array.Array
	}{
		{"flat", array.NewInt([]int64{0, 3}), nil},
		{"past node count", nil, array.NewInt([]int64{0, 4}, 1, 2)},
		{"negative id", array.NewInt([]int64{1, 2, -1, 0}, 2, 2), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk := &task.Task{
				Type:          task.LinkPrediction,
				Splits:        oneFold(array.NewInt([]int64{0}), array.NewInt([]int64{1}), array.NewInt([]int64{2})),
				ValNegatives:  tc.val,
				TestNegatives: tc.test,
			}
			if _, err := NewEdgeDataset(graph.Graphs{toyGraph()}, tk); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestEdgeDatasetTimeWindows(t *testing.T) {
	tk := &task.Task{
		Type:            task.TimeDependentLinkPrediction,
		Time:            "Edge/EdgeYear",
		TrainTimeWindow: &task.Window{2000, 2003},
		ValTimeWindow:   &task.Window{2004, 2006},
		TestTimeWindow:  &task.Window{2007, 2010},
		NumSplits:       1,
		Splits:          make([]task.Split, 1),
	}
	ds, err := NewEdgeDataset(graph.Graphs{toyGraph()}, tk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Fold{Train: []int{0}, Val: []int{1}, Test: []int{2}}
	if !reflect.DeepEqual(ds.Folds[0], want) {
		t.Errorf("fold = %+v, want %+v", ds.Folds[0], want)
	}

	tk.TestTimeWindow = nil
	if _, err := NewEdgeDataset(graph.Graphs{toyGraph()}, tk); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT without windows, got %v", err)
	}
}

func TestEdgeDatasetKG(t *testing.T) {
	tk := &task.Task{
		Type:         task.KGRelationPrediction,
		NumRelations: 3,
		Splits:       oneFold(array.NewInt([]int64{0, 1}), nil, array.NewInt([]int64{2})),
	}
	ds, err := NewEdgeDataset(graph.Graphs{toyGraph()}, tk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.NumRelations != 3 {
		t.Errorf("NumRelations = %d", ds.NumRelations)
	}

	tk.NumRelations = 0
	if _, err := NewEdgeDataset(graph.Graphs{toyGraph()}, tk); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT without num_relations, got %v", err)
	}
}

func TestMask(t *testing.T) {
	if got := Mask([]int{1, 3}, 4); !reflect.DeepEqual(got, []bool{false, true, false, true}) {
		t.Errorf("Mask = %v", got)
	}
}
