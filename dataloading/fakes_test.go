package dataloading

import (
	"context"
	"sync"

	"github.com/kbukum/gli/dataset"
	"github.com/kbukum/gli/graph"
	"github.com/kbukum/gli/task"
)

type downloadCall struct {
	dataset string
	verbose bool
}

type fakeDownloader struct {
	mu    sync.Mutex
	calls []downloadCall
	err   error
}

func (f *fakeDownloader) Download(_ context.Context, dataset string, verbose bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, downloadCall{dataset: dataset, verbose: verbose})
	return f.err
}

type graphCall struct {
	path    string
	device  string
	verbose bool
}

type fakeGraphReader struct {
	calls  []graphCall
	graphs graph.Graphs
	err    error
}

func (f *fakeGraphReader) ReadGraph(_ context.Context, path, device string, verbose bool) (graph.Graphs, error) {
	f.calls = append(f.calls, graphCall{path: path, device: device, verbose: verbose})
	return f.graphs, f.err
}

type fakeTaskReader struct {
	paths []string
	task  *task.Task
	err   error
}

func (f *fakeTaskReader) ReadTask(_ context.Context, path string, _ bool) (*task.Task, error) {
	f.paths = append(f.paths, path)
	return f.task, f.err
}

// fakeDataset records which factory built it.
type fakeDataset struct {
	family string
	graphs graph.Graphs
	task   *task.Task
}

func (d *fakeDataset) Name() string        { return d.task.Name }
func (d *fakeDataset) TaskType() task.Type { return d.task.Type }
func (d *fakeDataset) NumFolds() int       { return 1 }

// recordingFactories returns factories that record every call in order.
func recordingFactories(calls *[]string) Factories {
	build := func(family string) dataset.Factory {
		return func(gs graph.Graphs, t *task.Task) (dataset.Dataset, error) {
			*calls = append(*calls, family)
			return &fakeDataset{family: family, graphs: gs, task: t}, nil
		}
	}
	return Factories{Node: build("node"), Graph: build("graph"), Edge: build("edge")}
}
