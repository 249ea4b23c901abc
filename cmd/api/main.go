package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/database/postgres"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/catalog"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/ga4"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/ga4/ga4client"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/google/googleauth"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/googleads"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/googleads/adsclient"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/openai"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/openai/openaiclient"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/repository"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/api"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/metrics"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/scheduler"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/authenticating"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/insighting"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/managing"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/ranking"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/reporting"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, ok := log.Setup(cfg.App.LogLevel)
	if !ok {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	recorder := metrics.New(cfg.Metrics.Enabled, prometheus.DefaultRegisterer)

	storeRepo := repository.NewStoreRepository(pgConn, repository.NewSecretBox(cfg.SecretKey))
	operatorRepo := repository.NewOperatorRepository(pgConn)

	authenticator := authenticating.NewService(operatorRepo, cfg)

	// Tokens de acesso ficam apenas em memória
	tokenManager := googleauth.NewTokenManager(cfg, nil, recorder)

	ga4Integrator := ga4.New(ga4client.NewClient(cfg, nil))
	adsIntegrator := googleads.New(cfg, adsclient.NewClient(cfg, nil))

	dispatcher := reporting.NewDispatcher(cfg, recorder)
	reportService := reporting.NewService(cfg, storeRepo, tokenManager, dispatcher, recorder, ga4Integrator, adsIntegrator)

	narrator := openai.New(cfg, openaiclient.NewClient(cfg, nil))
	insightService := insighting.NewService(cfg, reportService, storeRepo, narrator)

	rankingService := ranking.NewStoreRankingService(reportService)

	catalogClient := catalog.NewClient(cfg, nil)
	storeManager := managing.NewService(cfg, storeRepo, tokenManager, catalogClient)

	catalogSyncService := scheduler.NewCatalogSyncService(storeManager, cfg)
	if err := catalogSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de catálogo")
	} else {
		logrus.Info("Agendador de sincronização de catálogo iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Stores:        storeManager,
		Reporter:      reportService,
		Insighter:     insightService,
		Ranking:       rankingService,
		Authenticator: authenticator,
		CatalogSync:   catalogSyncService,
		DB:            pgConn,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	log.Setup(logrus.InfoLevel.String())
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
