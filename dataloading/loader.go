package dataloading

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/gli/config"
	"github.com/kbukum/gli/dataset"
	"github.com/kbukum/gli/download"
	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/graph"
	"github.com/kbukum/gli/logger"
	"github.com/kbukum/gli/observability"
	"github.com/kbukum/gli/task"
)

const instrumentationName = "github.com/kbukum/gli/dataloading"

// Downloader makes a dataset's payload files available locally.
type Downloader interface {
	Download(ctx context.Context, dataset string, verbose bool) error
}

// GraphReader builds graphs from a metadata file.
type GraphReader interface {
	ReadGraph(ctx context.Context, metadataPath, device string, verbose bool) (graph.Graphs, error)
}

// TaskReader builds a task from its definition file.
type TaskReader interface {
	ReadTask(ctx context.Context, path string, verbose bool) (*task.Task, error)
}

// Loader loads graphs, tasks and datasets from a root directory. It keeps
// no state between calls.
type Loader struct {
	paths      Paths
	defaults   callOptions
	downloader Downloader
	graphs     GraphReader
	tasks      TaskReader
	factories  Factories
	log        *logger.Logger
	metrics    *observability.Metrics
}

// New creates a Loader from cfg. Collaborators not supplied through
// options are built from cfg; without WithLogger the loader logs through a
// logger built from cfg.Logging.
func New(cfg *config.Config, opts ...Option) (*Loader, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Loader{
		paths:     Paths{Root: cfg.RootPath},
		defaults:  callOptions{device: cfg.Device, verbose: cfg.IsVerbose()},
		factories: DefaultFactories(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.New(&cfg.Logging, cfg.Observability.ServiceName)
	}

	if l.metrics == nil {
		m, err := observability.NewMetrics(observability.Meter(instrumentationName))
		if err != nil {
			return nil, err
		}
		l.metrics = m
	}
	if l.downloader == nil {
		d, err := download.New(l.paths.DatasetsDir(), cfg.Download,
			download.WithLogger(l.log), download.WithMetrics(l.metrics))
		if err != nil {
			return nil, err
		}
		l.downloader = d
	}
	if l.graphs == nil {
		l.graphs = graph.NewReader(l.log)
	}
	if l.tasks == nil {
		l.tasks = task.NewReader(l.log)
	}
	l.log = l.log.WithComponent("dataloading")
	return l, nil
}

// Paths returns the loader's path resolver.
func (l *Loader) Paths() Paths { return l.paths }

func (l *Loader) callOptions(opts []CallOption) callOptions {
	o := l.defaults
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Graph loads the graph of dataset. It fails with errors.DirectoryNotFound
// or errors.FileNotFound before anything is downloaded; downloader and
// reader errors are returned as they are.
func (l *Loader) Graph(ctx context.Context, dataset string, opts ...CallOption) (gs graph.Graphs, err error) {
	o := l.callOptions(opts)
	ctx, op := observability.StartOperation(ctx, l.metrics, observability.SpanGraph,
		attribute.String(observability.AttrDataset, dataset),
		attribute.String(observability.AttrDevice, o.device))
	defer func() { op.End(err) }()

	metadataPath := l.paths.MetadataPath(dataset)
	if err := checkExists(l.paths.DataDir(dataset), metadataPath); err != nil {
		return nil, err
	}
	if err := l.downloader.Download(ctx, dataset, o.verbose); err != nil {
		return nil, err
	}

	l.log.Verbose(o.verbose).WithContext(ctx).Debug("reading graph", logger.Fields(
		logger.FieldDataset, dataset,
		logger.FieldPath, metadataPath,
	))
	return l.graphs.ReadGraph(ctx, metadataPath, o.device, o.verbose)
}

// Task loads task of dataset with the same checks as Graph.
func (l *Loader) Task(ctx context.Context, dataset, taskName string, opts ...CallOption) (t *task.Task, err error) {
	o := l.callOptions(opts)
	ctx, op := observability.StartOperation(ctx, l.metrics, observability.SpanTask,
		attribute.String(observability.AttrDataset, dataset),
		attribute.String(observability.AttrTaskID, taskName))
	defer func() { op.End(err) }()

	taskPath := l.paths.TaskPath(dataset, taskName)
	if err := checkExists(l.paths.DataDir(dataset), taskPath); err != nil {
		return nil, err
	}
	if err := l.downloader.Download(ctx, dataset, o.verbose); err != nil {
		return nil, err
	}

	l.log.Verbose(o.verbose).WithContext(ctx).Debug("reading task", logger.Fields(
		logger.FieldDataset, dataset,
		logger.FieldPath, taskPath,
	))
	return l.tasks.ReadTask(ctx, taskPath, o.verbose)
}

// Combine builds a dataset from gs and t with the loader's factories.
func (l *Loader) Combine(gs graph.Graphs, t *task.Task) (dataset.Dataset, error) {
	return combine(l.factories, gs, t)
}

// Dataset loads the graph, then the task, then combines them. Graph errors
// take precedence over task errors.
func (l *Loader) Dataset(ctx context.Context, datasetName, taskName string, opts ...CallOption) (ds dataset.Dataset, err error) {
	ctx, op := observability.StartOperation(ctx, l.metrics, observability.SpanDataset,
		attribute.String(observability.AttrDataset, datasetName),
		attribute.String(observability.AttrTaskID, taskName))
	defer func() { op.End(err) }()

	gs, err := l.Graph(ctx, datasetName, opts...)
	if err != nil {
		return nil, err
	}
	t, err := l.Task(ctx, datasetName, taskName, opts...)
	if err != nil {
		return nil, err
	}
	ds, err = l.Combine(gs, t)
	if err != nil {
		return nil, err
	}

	l.log.Verbose(l.callOptions(opts).verbose).WithContext(ctx).Info("dataset ready", logger.Fields(
		logger.FieldDataset, datasetName,
		logger.FieldTask, taskName,
		"type", string(t.Type),
		"folds", ds.NumFolds(),
	))
	return ds, nil
}

// Combine builds a dataset from gs and t with DefaultFactories.
func Combine(gs graph.Graphs, t *task.Task) (dataset.Dataset, error) {
	return combine(DefaultFactories(), gs, t)
}

func combine(f Factories, gs graph.Graphs, t *task.Task) (dataset.Dataset, error) {
	if t == nil {
		return nil, errors.InvalidInput("task", "task is nil")
	}
	switch t.Type.Family() {
	case task.FamilyNode:
		return f.Node(gs, t)
	case task.FamilyGraph:
		return f.Graph(gs, t)
	case task.FamilyEdge:
		return f.Edge(gs, t)
	default:
		return nil, errors.UnsupportedTaskType(string(t.Type))
	}
}
