package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/metrics"
)

type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return ctx.Err()
}

func newTestDispatcher(jitter float64) (*Dispatcher, *sleepRecorder) {
	rec := &sleepRecorder{}
	return &Dispatcher{
		policy: RetryPolicy{
			MaxAttempts:    3,
			BaseDelay:      time.Second,
			Multiplier:     2,
			JitterFraction: 0.2,
			AttemptTimeout: time.Second,
		},
		metrics: metrics.Noop(),
		sleep:   rec.sleep,
		jitter:  func() float64 { return jitter },
	}, rec
}

func TestDispatch(t *testing.T) {
	rows := []domain.MetricRow{{Source: domain.SourceGA4, Dimensions: map[string]string{"date": "2024-01-01"}}}

	tests := []struct {
		name     string
		errs     []error
		attempts int
		kind     domain.ErrorKind
		sleeps   int
		wantRows bool
	}{
		{
			name:     "sucesso na primeira tentativa",
			attempts: 1,
			wantRows: true,
		},
		{
			name:     "erro 500 repetido até o limite",
			errs:     []error{transient(), transient(), transient()},
			attempts: 3,
			kind:     domain.KindTransient,
			sleeps:   2,
		},
		{
			name:     "recupera depois de um erro transitório",
			errs:     []error{transient()},
			attempts: 2,
			sleeps:   1,
			wantRows: true,
		},
		{
			name:     "permissão negada não é repetida",
			errs:     []error{domain.NewPermissionDeniedError("1234567890", "sem acesso", nil)},
			attempts: 1,
			kind:     domain.KindPermissionDenied,
		},
		{
			name:     "invalid_grant não é repetido",
			errs:     []error{domain.NewCredentialInvalidError("invalid_grant", nil)},
			attempts: 1,
			kind:     domain.KindCredentialInvalid,
		},
		{
			name:     "nível de acesso insuficiente não é repetido",
			errs:     []error{domain.NewAccessLevelError("1234567890", "token de teste", nil)},
			attempts: 1,
			kind:     domain.KindAccessLevelInsufficient,
		},
		{
			name:     "erro não classificado não é repetido",
			errs:     []error{errors.New("falha estranha")},
			attempts: 1,
			kind:     domain.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec := newTestDispatcher(0.5)

			calls := 0
			result := d.Dispatch(context.Background(), domain.SourceGA4, func(ctx context.Context) ([]domain.MetricRow, error) {
				calls++
				if calls <= len(tt.errs) {
					return nil, tt.errs[calls-1]
				}
				return rows, nil
			})

			assert.Equal(t, tt.attempts, calls)
			assert.Equal(t, tt.attempts, result.Attempts)
			assert.Len(t, rec.delays, tt.sleeps)

			if tt.kind != "" {
				require.NotNil(t, result.Err)
				assert.Equal(t, tt.kind, result.Err.Kind)
				assert.Equal(t, domain.SourceGA4, result.Err.Source)
				assert.Nil(t, result.Rows)
				return
			}

			require.Nil(t, result.Err)
			if tt.wantRows {
				assert.Equal(t, rows, result.Rows)
			}
		})
	}
}

func TestDispatch_DelaysStrictlyIncreasing(t *testing.T) {
	// Pior caso: jitter máximo numa espera e mínimo na seguinte
	for _, jitter := range []float64{0, 0.5, 0.999} {
		d, rec := newTestDispatcher(jitter)

		d.Dispatch(context.Background(), domain.SourceAds, func(ctx context.Context) ([]domain.MetricRow, error) {
			return nil, transient()
		})

		require.Len(t, rec.delays, 2)
		assert.Less(t, rec.delays[0], rec.delays[1])
		assert.GreaterOrEqual(t, rec.delays[0], time.Second)
	}

	high, _ := newTestDispatcher(0.999)
	low, _ := newTestDispatcher(0)
	for attempt := 1; attempt < 6; attempt++ {
		assert.Less(t, high.Backoff(attempt), low.Backoff(attempt+1))
	}
}

func TestDispatch_AttemptTimeoutIsTransient(t *testing.T) {
	d, _ := newTestDispatcher(0)
	d.policy.AttemptTimeout = 10 * time.Millisecond

	calls := 0
	result := d.Dispatch(context.Background(), domain.SourceGA4, func(ctx context.Context) ([]domain.MetricRow, error) {
		calls++
		<-ctx.Done()
		return nil, ctx.Err()
	})

	assert.Equal(t, 3, calls)
	require.NotNil(t, result.Err)
	assert.Equal(t, domain.KindTransient, result.Err.Kind)
}

func TestDispatch_CancelledContextStopsRetries(t *testing.T) {
	d, _ := newTestDispatcher(0)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	result := d.Dispatch(ctx, domain.SourceAds, func(attemptCtx context.Context) ([]domain.MetricRow, error) {
		calls++
		cancel()
		return nil, transient()
	})

	assert.Equal(t, 1, calls)
	require.NotNil(t, result.Err)
}

func transient() error {
	return domain.NewTransientError("fonte respondeu 500", nil)
}
