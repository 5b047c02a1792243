package download

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/httpclient"
	"github.com/kbukum/gli/logger"
	"github.com/kbukum/gli/observability"
	"github.com/kbukum/gli/resilience"
	"github.com/kbukum/gli/storage"
	_ "github.com/kbukum/gli/storage/local"
	_ "github.com/kbukum/gli/storage/s3"
)

// BucketOpener returns a storage reading from an S3 bucket.
type BucketOpener func(ctx context.Context, bucket string) (storage.Storage, error)

// Downloader fetches missing dataset payloads.
type Downloader struct {
	datasetsDir string
	cfg         Config
	http        *httpclient.Client
	openBucket  BucketOpener
	log         *logger.Logger
	metrics     *observability.Metrics

	mu      sync.Mutex
	buckets map[string]storage.Storage
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(d *Downloader) { d.log = l }
}

// WithMetrics records download counters on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(d *Downloader) { d.metrics = m }
}

// WithBucketOpener replaces how s3:// sources are reached.
func WithBucketOpener(open BucketOpener) Option {
	return func(d *Downloader) { d.openBucket = open }
}

// New creates a Downloader for datasets stored under datasetsDir.
func New(datasetsDir string, cfg Config, opts ...Option) (*Downloader, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Validation(err.Error())
	}

	// Retries cover whole transfers here, not just the response headers.
	httpCfg := cfg.HTTP
	httpCfg.Retry = nil
	client, err := httpclient.New(httpCfg)
	if err != nil {
		return nil, err
	}

	d := &Downloader{
		datasetsDir: datasetsDir,
		cfg:         cfg,
		http:        client,
		buckets:     make(map[string]storage.Storage),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.openBucket == nil {
		d.openBucket = d.defaultBucketOpener
	}
	if d.log == nil {
		d.log = logger.Get("download")
	} else {
		d.log = d.log.WithComponent("download")
	}
	d.cfg.Retry.RetryIf = retryable
	return d, nil
}

func (d *Downloader) defaultBucketOpener(_ context.Context, bucket string) (storage.Storage, error) {
	return storage.New(
		storage.Config{Provider: storage.ProviderS3, Bucket: bucket},
		d.cfg.S3.ForBucket(bucket),
		d.log,
	)
}

// bucket returns a cached storage for bucket.
func (d *Downloader) bucket(ctx context.Context, bucket string) (storage.Storage, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok := d.buckets[bucket]; ok {
		return s, nil
	}
	s, err := d.openBucket(ctx, bucket)
	if err != nil {
		return nil, err
	}
	d.buckets[bucket] = s
	return s, nil
}

// Download makes sure every file listed in the dataset's urls.json is
// present locally. It fails with an errors.DownloadFailed naming the first
// file that could not be fetched.
func (d *Downloader) Download(ctx context.Context, dataset string, verbose bool) (err error) {
	ctx, op := observability.StartOperation(ctx, d.metrics, observability.SpanDownload,
		attribute.String(observability.AttrDataset, dataset))
	defer func() { op.End(err) }()

	log := d.log.Verbose(verbose).WithContext(ctx).WithFields(logger.Fields(logger.FieldDataset, dataset))
	dir := filepath.Join(d.datasetsDir, dataset)

	entries, err := readManifest(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	cache, err := storage.New(storage.Config{Provider: storage.ProviderLocal, BasePath: dir}, nil, d.log)
	if err != nil {
		return errors.Internal(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Concurrency)
	for _, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return d.fetch(gctx, cache, e, log)
		})
	}
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// fetch stores one entry in cache unless it is already there.
func (d *Downloader) fetch(ctx context.Context, cache storage.Storage, e entry, log *logger.Logger) error {
	present, err := cache.Exists(ctx, e.File)
	if err != nil {
		return errors.DownloadFailed(e.File, err)
	}
	if present {
		log.Debug("file present", logger.Fields(logger.FieldFile, e.File))
		return nil
	}

	start := time.Now()
	n, err := resilience.Retry(ctx, d.cfg.Retry, func() (int64, error) {
		body, err := d.open(ctx, e.URL)
		if err != nil {
			return 0, err
		}
		defer body.Close()

		cr := &countingReader{r: body}
		if err := cache.Upload(ctx, e.File, cr); err != nil {
			return 0, err
		}
		return cr.n, nil
	})
	if err != nil {
		log.Error("download failed", logger.Fields(
			logger.FieldFile, e.File,
			logger.FieldSource, e.URL,
			logger.FieldError, err.Error(),
		))
		return errors.DownloadFailed(e.File, err).WithDetail("url", e.URL)
	}

	d.metrics.RecordDownload(ctx, scheme(e.URL), n)
	log.Info("downloaded", logger.Fields(
		logger.FieldFile, e.File,
		logger.FieldSource, e.URL,
		logger.FieldBytes, n,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return nil
}

// retryable retries transport failures the HTTP client marks retryable
// and any other failure the default policy accepts. Bad input and missing
// local sources are final.
func retryable(err error) bool {
	var httpErr *httpclient.Error
	if stderrors.As(err, &httpErr) {
		return httpErr.Retryable
	}
	if errors.HasCode(err, errors.ErrCodeInvalidInput) || errors.HasCode(err, errors.ErrCodeFileNotFound) {
		return false
	}
	return resilience.DefaultRetryIf(err)
}
