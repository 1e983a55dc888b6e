package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartbiz-backend/internal/metrics"
)

// blockingAPI waits for the context on Get and fails every write.
type blockingAPI struct{}

func (blockingAPI) Get(ctx context.Context, _ string) ([][]interface{}, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingAPI) Append(context.Context, string, [][]interface{}) error {
	return errors.New("read only")
}

func (blockingAPI) Update(context.Context, string, [][]interface{}) error {
	return errors.New("read only")
}

func (blockingAPI) Clear(context.Context, string) error { return nil }

func TestInstrumentedTimeout(t *testing.T) {
	api := NewInstrumented(blockingAPI{}, 20*time.Millisecond)

	_, err := api.Get(context.Background(), "Inventory!A2:J")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInstrumentedCountsResults(t *testing.T) {
	api := NewInstrumented(blockingAPI{}, 0)
	before := testutil.ToFloat64(metrics.SheetCallsTotal.WithLabelValues("append", "error"))
	beforeClear := testutil.ToFloat64(metrics.SheetCallsTotal.WithLabelValues("clear", "ok"))

	assert.Error(t, api.Append(context.Background(), "Sales!A:K", nil))
	assert.NoError(t, api.Clear(context.Background(), "Sales!A5:K5"))

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SheetCallsTotal.WithLabelValues("append", "error")))
	assert.Equal(t, beforeClear+1, testutil.ToFloat64(metrics.SheetCallsTotal.WithLabelValues("clear", "ok")))
}
