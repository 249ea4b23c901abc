package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
)

type fakeSyncer struct {
	calls   int32
	synced  int
	err     error
	release chan struct{}
}

func (f *fakeSyncer) SyncProductCounts(ctx context.Context) (int, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.release != nil {
		<-f.release
	}
	return f.synced, f.err
}

func newTestSyncService(syncer ProductCountSyncer, enabled bool) *CatalogSyncService {
	cfg := &config.Config{CatalogSync: config.CatalogSync{CronSchedule: "0 2 * * *", Enabled: enabled, MaxConcurrentJobs: 2}}
	return NewCatalogSyncService(syncer, cfg)
}

func TestCatalogSync_syncCatalog(t *testing.T) {
	tests := []struct {
		name     string
		syncer   *fakeSyncer
		validate func(t *testing.T, status map[string]any)
	}{
		{
			name:   "registra as lojas sincronizadas",
			syncer: &fakeSyncer{synced: 4},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, 4, status["last_synced_stores"])
				assert.Equal(t, "", status["last_sync_error"])
				assert.False(t, status["sync_running"].(bool))
			},
		},
		{
			name:   "registra o erro da sincronização",
			syncer: &fakeSyncer{synced: 1, err: errors.New("context deadline exceeded")},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, 1, status["last_synced_stores"])
				assert.Equal(t, "context deadline exceeded", status["last_sync_error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestSyncService(tt.syncer, true)

			svc.syncCatalog()

			assert.Equal(t, int32(1), atomic.LoadInt32(&tt.syncer.calls))
			tt.validate(t, svc.GetStatus())
		})
	}
}

func TestCatalogSync_TriggerManualSyncIgnoresConcurrentRun(t *testing.T) {
	syncer := &fakeSyncer{release: make(chan struct{})}
	svc := newTestSyncService(syncer, true)

	require.True(t, svc.TriggerManualSync())
	require.Eventually(t, func() bool {
		return svc.GetStatus()["sync_running"].(bool)
	}, time.Second, 5*time.Millisecond)

	assert.False(t, svc.TriggerManualSync(), "segunda execução simultânea é ignorada")

	close(syncer.release)
	require.Eventually(t, func() bool {
		return !svc.GetStatus()["sync_running"].(bool)
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(1), atomic.LoadInt32(&syncer.calls))
}

func TestCatalogSync_StartDisabled(t *testing.T) {
	syncer := &fakeSyncer{}
	svc := newTestSyncService(syncer, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Start(ctx))
	assert.Equal(t, 0, svc.scheduler.Len())
}

func TestCatalogSync_StartInvalidCron(t *testing.T) {
	cfg := &config.Config{CatalogSync: config.CatalogSync{CronSchedule: "não é cron", Enabled: true}}
	svc := NewCatalogSyncService(&fakeSyncer{}, cfg)

	err := svc.Start(context.Background())
	assert.Error(t, err)
}
