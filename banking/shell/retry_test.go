package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arelgame/coinhouse/banking/shell"
	"github.com/arelgame/coinhouse/ledger"
	"github.com/arelgame/coinhouse/testutil/ledgertest"
)

func Test_Retry_Success_FirstAttempt(t *testing.T) {
	calls := 0

	metrics, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, metrics.Attempts)
	assert.Equal(t, "none", metrics.LastErrorType)
	assert.False(t, metrics.RetriesExhausted)
}

func Test_Retry_RetriesOnConcurrencyConflict(t *testing.T) {
	calls := 0

	metrics, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error {
		calls++
		if calls < 3 {
			return ledger.ErrConcurrencyConflict
		}
		return nil
	}, shell.WithBaseDelay(time.Millisecond), shell.WithJitterFactor(0))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, metrics.Attempts)
}

func Test_Retry_NonRetryableErrorFailsFast(t *testing.T) {
	calls := 0
	boom := errors.New("boom")

	_, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error {
		calls++
		return boom
	}, shell.WithBaseDelay(time.Millisecond))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "Non-retryable errors must not be retried")
}

func Test_Retry_Exhaustion(t *testing.T) {
	calls := 0

	metrics, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error {
		calls++
		return ledger.ErrConcurrencyConflict
	}, shell.WithMaxAttempts(3), shell.WithBaseDelay(time.Millisecond), shell.WithJitterFactor(0))

	assert.ErrorIs(t, err, ledger.ErrConcurrencyConflict)
	assert.Equal(t, 3, calls)
	assert.True(t, metrics.RetriesExhausted)
	assert.Equal(t, "concurrency_conflict", metrics.LastErrorType)
}

func Test_Retry_CancellationDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	_, err := shell.RetryWithExponentialBackoff(ctx, func(_ context.Context) error {
		cancel()
		return ledger.ErrConcurrencyConflict
	}, shell.WithBaseDelay(time.Hour))

	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Retry_RecordsMetrics(t *testing.T) {
	collector := ledgertest.NewMetricsCollectorSpy()
	calls := 0

	_, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error {
		calls++
		if calls < 3 {
			return ledger.ErrConcurrencyConflict
		}
		return nil
	},
		shell.WithBaseDelay(time.Millisecond),
		shell.WithJitterFactor(0),
		shell.WithMetrics(collector, "DepositGold"))

	require.NoError(t, err)

	assert.Equal(t, 2, collector.CounterCount(shell.CommandHandlerRetriesMetric))
	assert.Len(t, collector.DurationRecords(), 2)

	for _, record := range collector.CounterRecords() {
		assert.Equal(t, "DepositGold", record.Labels[shell.LabelCommandType])
		assert.Equal(t, "concurrency_conflict", record.Labels[shell.LabelErrorType])
	}
}

func Test_Retry_RecordsMaxRetriesReachedMetric(t *testing.T) {
	collector := ledgertest.NewMetricsCollectorSpy()

	_, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error {
		return ledger.ErrConcurrencyConflict
	},
		shell.WithMaxAttempts(2),
		shell.WithBaseDelay(time.Millisecond),
		shell.WithJitterFactor(0),
		shell.WithMetrics(collector, "WithdrawGold"))

	assert.ErrorIs(t, err, ledger.ErrConcurrencyConflict)
	assert.Equal(t, 1, collector.CounterCount(shell.CommandHandlerMaxRetriesReachedMetric))
}

func Test_Retry_InvalidOptions(t *testing.T) {
	_, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error { return nil },
		shell.WithMaxAttempts(0))
	assert.ErrorIs(t, err, shell.ErrInvalidMaxAttempts)

	_, err = shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error { return nil },
		shell.WithJitterFactor(1.5))
	assert.ErrorIs(t, err, shell.ErrInvalidJitterFactor)

	_, err = shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error { return nil },
		shell.WithBaseDelay(-time.Second))
	assert.ErrorIs(t, err, shell.ErrNegativeBaseDelay)

	_, err = shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error { return nil },
		shell.WithMetrics(nil, "Deposit"))
	assert.ErrorIs(t, err, shell.ErrNilMetricsCollector)
}
