package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
)

// ProductCountSyncer atualiza a contagem de produtos de todas as lojas com catálogo.
type ProductCountSyncer interface {
	SyncProductCounts(ctx context.Context) (int, error)
}

// CatalogSyncConfig representa a configuração do agendador de catálogo
type CatalogSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	Timeout      time.Duration
}

// CatalogSyncService atualiza periodicamente a contagem de produtos das lojas. Fica fora do
// caminho dos relatórios e vem desligado por padrão.
type CatalogSyncService struct {
	scheduler *gocron.Scheduler
	config    CatalogSyncConfig
	syncer    ProductCountSyncer
	baseCtx   context.Context

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncedStores    int
	lastSyncError       string
}

func NewCatalogSyncService(syncer ProductCountSyncer, appConfig *config.Config) *CatalogSyncService {
	syncConfig := CatalogSyncConfig{
		CronSchedule: appConfig.CatalogSync.CronSchedule,
		SyncEnabled:  appConfig.CatalogSync.Enabled,
		Timeout:      10 * time.Minute,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"sync_enabled":        syncConfig.SyncEnabled,
		"max_concurrent_jobs": appConfig.CatalogSync.MaxConcurrentJobs,
	}).Info("Configuração do agendador de catálogo carregada")

	return &CatalogSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		syncer:    syncer,
		baseCtx:   context.Background(),
	}
}

// Start inicia o agendador
func (s *CatalogSyncService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de catálogo desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de catálogo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncCatalog()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de catálogo: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de catálogo")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *CatalogSyncService) syncCatalog() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de catálogo já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	ctx, cancel := context.WithTimeout(s.baseCtx, s.config.Timeout)
	defer cancel()

	synced, err := s.syncer.SyncProductCounts(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncedStores = synced
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
	s.syncMutex.Unlock()

	entry := logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"stores":   synced,
	})
	if err != nil {
		entry.WithError(err).Error("Sincronização de catálogo interrompida")
		return
	}
	entry.Info("Sincronização de catálogo concluída")
}

// TriggerManualSync inicia uma sincronização fora do agendamento; devolve false se já houver
// uma em andamento.
func (s *CatalogSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Sincronização de catálogo já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual de catálogo")
	go s.syncCatalog()
	return true
}

// GetStatus retorna o status atual da sincronização
func (s *CatalogSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_synced_stores":     s.lastSyncedStores,
		"last_sync_error":        s.lastSyncError,
	}
}
