package dataloading

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kbukum/gli/array"
	"github.com/kbukum/gli/config"
	"github.com/kbukum/gli/dataset"
	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/graph"
	"github.com/kbukum/gli/logger"
	"github.com/kbukum/gli/task"
	"github.com/kbukum/gli/util"
)

func TestPaths(t *testing.T) {
	p := Paths{Root: "/data"}
	if got := p.DataDir("cora"); got != filepath.Join("/data", "datasets", "cora") {
		t.Errorf("DataDir = %q", got)
	}
	if got := p.MetadataPath("cora"); got != filepath.Join("/data", "datasets", "cora", "metadata.json") {
		t.Errorf("MetadataPath = %q", got)
	}
	if got := p.TaskPath("cora", "task_node_classification_1"); got != filepath.Join("/data", "datasets", "cora", "task_node_classification_1.json") {
		t.Errorf("TaskPath = %q", got)
	}
}

type fixture struct {
	root       string
	downloader *fakeDownloader
	graphs     *fakeGraphReader
	tasks      *fakeTaskReader
	factories  []string
	loader     *Loader
}

// newFixture creates <root>/datasets/cora with the given files and a
// Loader wired to fakes.
func newFixture(t *testing.T, files ...string) *fixture {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "datasets", "cora")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	f := &fixture{
		root:       root,
		downloader: &fakeDownloader{},
		graphs:     &fakeGraphReader{graphs: graph.Graphs{{NumNodes: 2}}},
		tasks:      &fakeTaskReader{task: &task.Task{Name: "t", Type: task.NodeClassification}},
	}
	cfg := config.Default()
	cfg.RootPath = root

	l, err := New(cfg,
		WithDownloader(f.downloader),
		WithGraphReader(f.graphs),
		WithTaskReader(f.tasks),
		WithFactories(recordingFactories(&f.factories)),
		WithLogger(logger.Nop()),
	)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}
	f.loader = l
	return f
}

func TestMissingDatasetDirectory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.loader.Graph(ctx, "absent")
	if !errors.HasCode(err, errors.ErrCodeDirectoryNotFound) {
		t.Errorf("Graph: expected DIRECTORY_NOT_FOUND, got %v", err)
	}
	_, err = f.loader.Task(ctx, "absent", "t")
	if !errors.HasCode(err, errors.ErrCodeDirectoryNotFound) {
		t.Errorf("Task: expected DIRECTORY_NOT_FOUND, got %v", err)
	}

	appErr, _ := errors.AsAppError(err)
	want := filepath.Join(f.root, "datasets", "absent")
	if appErr.Details["path"] != want {
		t.Errorf("expected path %q in details, got %v", want, appErr.Details["path"])
	}
	if len(f.downloader.calls) != 0 {
		t.Errorf("downloader must not be called, got %v", f.downloader.calls)
	}
}

func TestMissingMetadataFile(t *testing.T) {
	f := newFixture(t, "t.json")

	_, err := f.loader.Graph(context.Background(), "cora")
	if !errors.HasCode(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("expected FILE_NOT_FOUND, got %v", err)
	}
	want := filepath.Join(f.root, "datasets", "cora", "metadata.json")
	appErr, _ := errors.AsAppError(err)
	if appErr.Details["path"] != want {
		t.Errorf("expected path %q, got %v", want, appErr.Details["path"])
	}
	if len(f.downloader.calls) != 0 {
		t.Errorf("downloader must not be called, got %v", f.downloader.calls)
	}
	if len(f.graphs.calls) != 0 {
		t.Error("graph reader must not be called")
	}
}

func TestMissingTaskFile(t *testing.T) {
	f := newFixture(t, "metadata.json")

	_, err := f.loader.Task(context.Background(), "cora", "absent_task")
	if !errors.HasCode(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("expected FILE_NOT_FOUND, got %v", err)
	}
	if len(f.downloader.calls) != 0 {
		t.Error("downloader must not be called")
	}
}

func TestGraphDefaultsAndOptions(t *testing.T) {
	f := newFixture(t, "metadata.json")
	ctx := context.Background()

	gs, err := f.loader.Graph(ctx, "cora")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(gs, f.graphs.graphs) {
		t.Error("graph reader result must be returned unchanged")
	}

	if _, err := f.loader.Graph(ctx, "cora", WithDevice("cuda:0"), WithVerbose(false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPath := filepath.Join(f.root, "datasets", "cora", "metadata.json")
	want := []graphCall{
		{path: wantPath, device: "cpu", verbose: true},
		{path: wantPath, device: "cuda:0", verbose: false},
	}
	if !reflect.DeepEqual(f.graphs.calls, want) {
		t.Errorf("graph calls = %+v, want %+v", f.graphs.calls, want)
	}
	wantDownloads := []downloadCall{{"cora", true}, {"cora", false}}
	if !reflect.DeepEqual(f.downloader.calls, wantDownloads) {
		t.Errorf("download calls = %+v", f.downloader.calls)
	}
}

func TestCollaboratorErrorsPassThrough(t *testing.T) {
	downloadErr := stderrors.New("mirror unreachable")
	f := newFixture(t, "metadata.json", "t.json")
	f.downloader.err = downloadErr

	if _, err := f.loader.Graph(context.Background(), "cora"); err != downloadErr {
		t.Errorf("expected download error verbatim, got %v", err)
	}
	if len(f.graphs.calls) != 0 {
		t.Error("graph reader must not run after a failed download")
	}

	readErr := stderrors.New("bad task")
	f.downloader.err = nil
	f.tasks.err = readErr
	if _, err := f.loader.Task(context.Background(), "cora", "t"); err != readErr {
		t.Errorf("expected task reader error verbatim, got %v", err)
	}
}

func TestCombineDispatch(t *testing.T) {
	tests := []struct {
		typ  task.Type
		want string
	}{
		{task.NodeClassification, "node"},
		{task.NodeRegression, "node"},
		{task.GraphClassification, "graph"},
		{task.GraphRegression, "graph"},
		{task.TimeDependentLinkPrediction, "edge"},
		{task.LinkPrediction, "edge"},
		{task.KGEntityPrediction, "edge"},
		{task.KGRelationPrediction, "edge"},
	}
	for _, tc := range tests {
		t.Run(string(tc.typ), func(t *testing.T) {
			var calls []string
			gs := graph.Graphs{{NumNodes: 1}}
			tk := &task.Task{Type: tc.typ}

			ds, err := combine(recordingFactories(&calls), gs, tk)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(calls, []string{tc.want}) {
				t.Errorf("factory calls = %v, want [%s]", calls, tc.want)
			}
			fd := ds.(*fakeDataset)
			if fd.task != tk || len(fd.graphs) != 1 || fd.graphs[0] != gs[0] {
				t.Error("factory must receive the given graph and task")
			}
		})
	}
}

func TestCombineUnknownType(t *testing.T) {
	var calls []string
	_, err := combine(recordingFactories(&calls), nil, &task.Task{Type: "UnknownType"})
	if !errors.HasCode(err, errors.ErrCodeUnsupportedTaskType) {
		t.Fatalf("expected UNSUPPORTED_TASK_TYPE, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.Message != "Unsupported type UnknownType" {
		t.Errorf("message = %q", appErr.Message)
	}
	if appErr.Details["type"] != "UnknownType" {
		t.Errorf("details = %v", appErr.Details)
	}
	if len(calls) != 0 {
		t.Errorf("no factory may run, got %v", calls)
	}

	if _, err := Combine(nil, nil); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for nil task, got %v", err)
	}
}

func TestDatasetEqualsComposition(t *testing.T) {
	f := newFixture(t, "metadata.json", "t.json")
	f.tasks.task = &task.Task{Name: "t", Type: task.GraphRegression}
	ctx := context.Background()

	ds, err := f.loader.Dataset(ctx, "cora", "t", WithDevice("cuda:1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gs, err := f.loader.Graph(ctx, "cora", WithDevice("cuda:1"))
	if err != nil {
		t.Fatal(err)
	}
	tk, err := f.loader.Task(ctx, "cora", "t")
	if err != nil {
		t.Fatal(err)
	}
	composed, err := f.loader.Combine(gs, tk)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(ds, composed) {
		t.Errorf("Dataset = %+v, composition = %+v", ds, composed)
	}
	if !reflect.DeepEqual(f.factories, []string{"graph", "graph"}) {
		t.Errorf("factory calls = %v", f.factories)
	}
	if f.graphs.calls[0].device != "cuda:1" {
		t.Errorf("device not passed through: %+v", f.graphs.calls[0])
	}
}

func TestDatasetGraphErrorFirst(t *testing.T) {
	// neither metadata nor task exist: the graph error wins
	f := newFixture(t)
	_, err := f.loader.Dataset(context.Background(), "cora", "t")
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Details["path"] != filepath.Join(f.root, "datasets", "cora", "metadata.json") {
		t.Errorf("expected metadata FILE_NOT_FOUND first, got %v", err)
	}
	if len(f.tasks.paths) != 0 {
		t.Error("task reader must not run after a graph failure")
	}
}

func TestNewDefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.RootPath = t.TempDir()
	cfg.Device = "cuda:2"
	cfg.Verbose = util.Ptr(false)

	l, err := New(cfg, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.defaults.device != "cuda:2" || l.defaults.verbose {
		t.Errorf("defaults = %+v", l.defaults)
	}
	if l.Paths().Root != cfg.RootPath {
		t.Errorf("root = %q", l.Paths().Root)
	}

	bad := config.Default()
	bad.Logging.Level = "loud"
	if _, err := New(bad); err == nil {
		t.Error("expected invalid config error")
	}
}

// TestEndToEnd runs the real readers, downloader and factories over a
// small on-disk dataset.
func TestEndToEnd(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "datasets", "toy")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	err := array.SaveNPZ(filepath.Join(dir, "toy.npz"), map[string]*array.Array{
		"feat":  array.NewFloat([]float64{1, 2, 3}),
		"label": array.NewInt([]int64{0, 1, 0}),
		"edge":  array.NewInt([]int64{0, 1, 1, 2}, 2, 2),
		"train": array.NewInt([]int64{0}),
		"val":   array.NewInt([]int64{1}),
		"test":  array.NewInt([]int64{2}),
	})
	if err != nil {
		t.Fatal(err)
	}
	metadata := `{
  "description": "toy",
  "data": {
    "Node": {
      "NodeFeature": {"file": "toy.npz", "key": "feat"},
      "NodeLabel": {"file": "toy.npz", "key": "label"}
    },
    "Edge": {"_Edge": {"file": "toy.npz", "key": "edge"}},
    "Graph": {}
  },
  "is_heterogeneous": false
}`
	taskDef := `{
  "type": "NodeClassification",
  "feature": ["Node/NodeFeature"],
  "target": "Node/NodeLabel",
  "num_classes": 2,
  "train_set": {"file": "toy.npz", "key": "train"},
  "val_set": {"file": "toy.npz", "key": "val"},
  "test_set": {"file": "toy.npz", "key": "test"}
}`
	if err := os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(metadata), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "task_node_classification_1.json"), []byte(taskDef), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.RootPath = root
	l, err := New(cfg, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	ds, err := l.Dataset(context.Background(), "toy", "task_node_classification_1", WithVerbose(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nd, ok := ds.(*dataset.NodeDataset)
	if !ok {
		t.Fatalf("expected *dataset.NodeDataset, got %T", ds)
	}
	if nd.Name() != "task_node_classification_1" {
		t.Errorf("Name = %q", nd.Name())
	}
	train, _, test := nd.Masks(0)
	if !reflect.DeepEqual(train, []bool{true, false, false}) || !reflect.DeepEqual(test, []bool{false, false, true}) {
		t.Errorf("masks train=%v test=%v", train, test)
	}
}
