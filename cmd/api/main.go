package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/compliance-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/compliance-manager-api/infrastructure/integrator/vision"
	"github.com/vfg2006/compliance-manager-api/infrastructure/integrator/vision/visionclient"
	"github.com/vfg2006/compliance-manager-api/infrastructure/repository"
	"github.com/vfg2006/compliance-manager-api/infrastructure/storage/s3store"
	"github.com/vfg2006/compliance-manager-api/internal/api"
	"github.com/vfg2006/compliance-manager-api/internal/config"
	"github.com/vfg2006/compliance-manager-api/internal/scheduler"
	"github.com/vfg2006/compliance-manager-api/internal/usecases/complying"
	"github.com/vfg2006/compliance-manager-api/internal/usecases/syncing"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	integrationRepo := repository.NewIntegrationRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	adSetRepo := repository.NewAdSetRepository(pgConn)
	creativeRepo := repository.NewCreativeRepository(pgConn)
	syncRunRepo := repository.NewSyncRunRepository(pgConn)

	renderClient := config.NewRenderClient(cfg)

	tokenManager := metaclient.NewTokenManager(cfg, renderClient)
	// Valida ou obtém o token antes de aceitar requisições; a renovação
	// periódica segue em background
	tokenManager.InitToken()
	go tokenManager.StartAutoRefresh()
	defer tokenManager.StopAutoRefresh()

	metaClient := metaclient.NewClient(cfg, tokenManager)

	assetStore, err := s3store.New(ctx, cfg.AssetStorage)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o armazenamento de assets")
	}

	persister := repository.NewSyncPersister(campaignRepo, adSetRepo, creativeRepo)
	synchronizer := syncing.NewService(metaClient, persister, assetStore)

	visionClient := visionclient.NewClient(cfg)
	visionIntegrator := vision.New(cfg, visionClient)
	analyzer := complying.NewService(visionIntegrator, creativeRepo)

	campaignSyncService := scheduler.NewCampaignSyncService(
		integrationRepo,
		syncRunRepo,
		creativeRepo,
		synchronizer,
		cfg,
	)

	if err := campaignSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de campanhas")
	} else {
		logrus.Info("Agendador de sincronização de campanhas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		campaignSyncService,
		campaignRepo,
		adSetRepo,
		creativeRepo,
		analyzer,
	)
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

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
