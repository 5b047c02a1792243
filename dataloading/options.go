package dataloading

import (
	"github.com/kbukum/gli/dataset"
	"github.com/kbukum/gli/logger"
	"github.com/kbukum/gli/observability"
)

// Option configures a Loader.
type Option func(*Loader)

// WithDownloader replaces the downloader.
func WithDownloader(d Downloader) Option {
	return func(l *Loader) { l.downloader = d }
}

// WithGraphReader replaces the graph reader.
func WithGraphReader(r GraphReader) Option {
	return func(l *Loader) { l.graphs = r }
}

// WithTaskReader replaces the task reader.
func WithTaskReader(r TaskReader) Option {
	return func(l *Loader) { l.tasks = r }
}

// WithFactories replaces the dataset factories.
func WithFactories(f Factories) Option {
	return func(l *Loader) { l.factories = f }
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

// CallOption configures a single load call.
type CallOption func(*callOptions)

type callOptions struct {
	device  string
	verbose bool
}

// WithDevice sets the device passed to the graph reader.
func WithDevice(device string) CallOption {
	return func(o *callOptions) { o.device = device }
}

// WithVerbose turns progress logging on or off.
func WithVerbose(verbose bool) CallOption {
	return func(o *callOptions) { o.verbose = verbose }
}

// Factories holds one dataset factory per task family.
type Factories struct {
	Node  dataset.Factory
	Graph dataset.Factory
	Edge  dataset.Factory
}

// DefaultFactories returns the factories of the dataset package.
func DefaultFactories() Factories {
	return Factories{
		Node:  dataset.NodeFactory,
		Graph: dataset.GraphFactory,
		Edge:  dataset.EdgeFactory,
	}
}
