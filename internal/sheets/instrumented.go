package sheets

import (
	"context"
	"time"

	"smartbiz-backend/internal/metrics"
)

// Instrumented wraps a ValuesAPI, records call counts and latency, and bounds
// every call with a timeout when one is set.
type Instrumented struct {
	next    ValuesAPI
	timeout time.Duration
}

func NewInstrumented(next ValuesAPI, timeout time.Duration) *Instrumented {
	return &Instrumented{next: next, timeout: timeout}
}

func (i *Instrumented) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if i.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, i.timeout)
}

func observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.SheetCallsTotal.WithLabelValues(op, result).Inc()
	metrics.SheetCallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (i *Instrumented) Get(ctx context.Context, rng string) ([][]interface{}, error) {
	ctx, cancel := i.bound(ctx)
	defer cancel()
	start := time.Now()
	rows, err := i.next.Get(ctx, rng)
	observe("get", start, err)
	return rows, err
}

func (i *Instrumented) Append(ctx context.Context, rng string, rows [][]interface{}) error {
	ctx, cancel := i.bound(ctx)
	defer cancel()
	start := time.Now()
	err := i.next.Append(ctx, rng, rows)
	observe("append", start, err)
	return err
}

func (i *Instrumented) Update(ctx context.Context, rng string, rows [][]interface{}) error {
	ctx, cancel := i.bound(ctx)
	defer cancel()
	start := time.Now()
	err := i.next.Update(ctx, rng, rows)
	observe("update", start, err)
	return err
}

func (i *Instrumented) Clear(ctx context.Context, rng string) error {
	ctx, cancel := i.bound(ctx)
	defer cancel()
	start := time.Now()
	err := i.next.Clear(ctx, rng)
	observe("clear", start, err)
	return err
}
