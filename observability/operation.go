package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/gli/errors"
)

// Status values recorded on spans and metrics.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Operation tracks one traced and measured loader call.
type Operation struct {
	Name      string
	StartTime time.Time

	ctx     context.Context
	span    trace.Span
	metrics *Metrics
}

// StartOperation starts a span named name and returns the derived context.
// metrics may be nil.
func StartOperation(ctx context.Context, metrics *Metrics, name string, attrs ...attribute.KeyValue) (context.Context, *Operation) {
	ctx, span := StartSpan(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &Operation{
		Name:      name,
		StartTime: time.Now(),
		ctx:       ctx,
		span:      span,
		metrics:   metrics,
	}
}

// End closes the span and records the load metrics. A non-nil err marks
// the operation failed; AppError codes are recorded as the error code.
func (o *Operation) End(err error) {
	duration := time.Since(o.StartTime)
	status := StatusOK

	if err != nil {
		status = StatusError
		SetSpanError(o.ctx, err)
		code := string(errors.ErrCodeInternal)
		if appErr, ok := errors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		o.metrics.RecordError(o.ctx, code, o.Name)
	}

	o.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	o.span.End()
	o.metrics.RecordLoad(o.ctx, o.Name, status, duration)
}

// Duration returns the elapsed time since the operation started.
func (o *Operation) Duration() time.Duration {
	return time.Since(o.StartTime)
}
