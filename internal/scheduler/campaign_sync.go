package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/compliance-manager-api/infrastructure/repository"
	"github.com/vfg2006/compliance-manager-api/internal/config"
	"github.com/vfg2006/compliance-manager-api/internal/domain"
	"github.com/vfg2006/compliance-manager-api/internal/usecases/syncing"
)

// CampaignSyncConfig representa a configuração do agendador de sincronização de campanhas
type CampaignSyncConfig struct {
	CronSchedule string
	Enabled      bool
	Incremental  bool
}

// CampaignSyncService gerencia o agendamento e a execução da sincronização
// de campanhas. O orquestrador assume exclusão mútua por integração; é
// este serviço que a garante, com um lock por integração.
type CampaignSyncService struct {
	scheduler       *gocron.Scheduler
	config          CampaignSyncConfig
	appConfig       *config.Config
	integrationRepo repository.IntegrationRepository
	syncRunRepo     repository.SyncRunRepository
	creativeRepo    repository.CreativeRepository
	synchronizer    syncing.Synchronizer

	locks      map[string]*sync.Mutex
	locksMutex sync.Mutex

	// Escritos pela goroutine do gocron e lidos pelos handlers HTTP
	statusMutex         sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewCampaignSyncService(
	integrationRepo repository.IntegrationRepository,
	syncRunRepo repository.SyncRunRepository,
	creativeRepo repository.CreativeRepository,
	synchronizer syncing.Synchronizer,
	appConfig *config.Config,
) *CampaignSyncService {
	syncConfig := CampaignSyncConfig{
		CronSchedule: appConfig.CampaignSync.CronSchedule,
		Enabled:      appConfig.CampaignSync.Enabled,
		Incremental:  appConfig.CampaignSync.Incremental,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.Enabled,
		"incremental":   syncConfig.Incremental,
	}).Info("Configuração do agendador de sincronização de campanhas carregada")

	return &CampaignSyncService{
		scheduler:       scheduler,
		config:          syncConfig,
		appConfig:       appConfig,
		integrationRepo: integrationRepo,
		syncRunRepo:     syncRunRepo,
		creativeRepo:    creativeRepo,
		synchronizer:    synchronizer,
		locks:           make(map[string]*sync.Mutex),
	}
}

// Start inicia o agendador
func (s *CampaignSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Sincronização de campanhas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de campanhas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllIntegrations(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de campanhas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de campanhas")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara a sincronização de uma integração fora do
// agendamento. Um `since` não nulo força uma janela incremental a partir
// daquela data, ignorando o last_synced_at registrado. Devolve erro se já
// houver uma sincronização em andamento para a mesma integração.
func (s *CampaignSyncService) TriggerManualSync(ctx context.Context, integrationID string, since *time.Time) error {
	integration, err := s.integrationRepo.GetByID(ctx, integrationID)
	if err != nil {
		return fmt.Errorf("erro ao buscar integração %s: %w", integrationID, err)
	}

	if integration == nil {
		return fmt.Errorf("integração %s não encontrada", integrationID)
	}

	lock := s.lockFor(integration.ID)
	if !lock.TryLock() {
		return fmt.Errorf("sincronização da integração %s já em andamento", integrationID)
	}
	defer lock.Unlock()

	return s.runSync(ctx, integration, since)
}

// GetStatus devolve um resumo do estado do agendador e a última execução
// registrada de cada integração ativa.
func (s *CampaignSyncService) GetStatus(ctx context.Context) (map[string]interface{}, error) {
	integrations, err := s.integrationRepo.ListByStatus(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar integrações: %w", err)
	}

	runs := make([]*domain.SyncRun, 0, len(integrations))
	for _, integration := range integrations {
		run, err := s.syncRunRepo.GetLatestByIntegration(ctx, integration.ID)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar última execução da integração %s: %w", integration.ID, err)
		}

		if run != nil {
			runs = append(runs, run)
		}
	}

	status := map[string]interface{}{
		"enabled":       s.config.Enabled,
		"cron_schedule": s.config.CronSchedule,
		"incremental":   s.config.Incremental,
		"latest_runs":   runs,
	}

	startedAt, completedAt := s.lastSyncTimes()
	if !startedAt.IsZero() {
		status["last_sync_started_at"] = startedAt
	}
	if !completedAt.IsZero() {
		status["last_sync_completed_at"] = completedAt
	}

	return status, nil
}

func (s *CampaignSyncService) lastSyncTimes() (time.Time, time.Time) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	return s.lastSyncStartedAt, s.lastSyncCompletedAt
}

func (s *CampaignSyncService) markSyncStarted(at time.Time) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.lastSyncStartedAt = at
}

func (s *CampaignSyncService) markSyncCompleted(at time.Time) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.lastSyncCompletedAt = at
}

// syncAllIntegrations sincroniza todas as integrações ativas, uma por vez
func (s *CampaignSyncService) syncAllIntegrations(ctx context.Context) {
	startTime := time.Now()
	s.markSyncStarted(startTime)

	logrus.Info("Iniciando sincronização de campanhas para todas as integrações ativas")

	integrations, err := s.integrationRepo.ListByStatus(ctx, []domain.IntegrationStatus{domain.IntegrationStatusActive})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar integrações para sincronização de campanhas")
		return
	}

	if len(integrations) == 0 {
		logrus.Info("Nenhuma integração ativa encontrada para sincronização de campanhas")
		return
	}

	synced := 0
	for _, integration := range integrations {
		lock := s.lockFor(integration.ID)
		if !lock.TryLock() {
			logrus.WithField("integration_id", integration.ID).Info("Sincronização já em andamento, ignorando")
			continue
		}

		if err := s.runSync(ctx, integration, nil); err != nil {
			logrus.WithError(err).WithField("integration_id", integration.ID).Error("Erro na sincronização da integração")
		} else {
			synced++
		}

		lock.Unlock()
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":     duration.String(),
		"integrations": len(integrations),
		"synced":       synced,
	}).Info("Sincronização de campanhas concluída")

	s.markSyncCompleted(time.Now())
}

// runSync executa uma sincronização e registra a execução. O chamador
// deve deter o lock da integração.
func (s *CampaignSyncService) runSync(ctx context.Context, integration *domain.Integration, since *time.Time) error {
	run := &domain.SyncRun{
		ID:            uuid.NewString(),
		IntegrationID: integration.ID,
		Phase:         domain.SyncPhaseCampaigns,
		StartedAt:     time.Now(),
	}

	if err := s.syncRunRepo.Create(ctx, run); err != nil {
		return err
	}

	opts := s.buildOptions(ctx, integration)
	if since != nil && !since.IsZero() {
		opts.Since = since
	}

	result, syncErr := s.synchronizer.Sync(ctx, integration, opts)

	run.Phase = domain.SyncPhaseDone
	if result != nil {
		run.Campaigns = len(result.Campaigns)
		run.AdSets = len(result.AdSets)
		run.Creatives = len(result.Creatives)
		run.SkippedOrphans = result.SkippedOrphans
		run.FailedAssetResolutions = result.FailedAssetResolutions
		run.DuplicateExternalIDs = result.DuplicateExternalIDs
	}

	if syncErr != nil {
		run.Error = syncErr.Error()
		if phaseErr, ok := syncing.AsPhaseError(syncErr); ok {
			run.Phase = phaseErr.Phase
		}

		if errors.Is(syncErr, syncing.ErrAuthFailed) {
			if err := s.integrationRepo.UpdateStatus(ctx, integration.ID, domain.IntegrationStatusReconnecting); err != nil {
				logrus.WithError(err).Warn("Erro ao marcar integração para reconexão")
			}
		}
	}

	completedAt := time.Now()
	run.CompletedAt = &completedAt

	if err := s.syncRunRepo.Update(ctx, run); err != nil {
		logrus.WithError(err).Warn("Erro ao atualizar registro da execução de sincronização")
	}

	if syncErr != nil {
		return syncErr
	}

	if err := s.integrationRepo.UpdateLastSyncedAt(ctx, integration.ID, run.StartedAt); err != nil {
		logrus.WithError(err).Warn("Erro ao atualizar last_synced_at da integração")
	}

	return nil
}

func (s *CampaignSyncService) buildOptions(ctx context.Context, integration *domain.Integration) syncing.Options {
	opts := syncing.Options{
		OnProgress: func(phase domain.SyncPhase, total int) {
			logrus.WithFields(logrus.Fields{
				"integration_id": integration.ID,
				"phase":          phase,
				"total":          total,
			}).Debug("Progresso da sincronização")
		},
	}

	if !s.config.Incremental || integration.LastSyncedAt == nil {
		return opts
	}

	opts.Since = integration.LastSyncedAt

	existing, err := s.creativeRepo.ExistingAssetURLs(ctx, integration.ID)
	if err != nil {
		// Sem o mapa a sincronização apenas baixa tudo de novo
		logrus.WithError(err).Warn("Erro ao carregar assets existentes, sincronizando sem cache")
		return opts
	}

	opts.ExistingAssetURLs = existing

	return opts
}

func (s *CampaignSyncService) lockFor(integrationID string) *sync.Mutex {
	s.locksMutex.Lock()
	defer s.locksMutex.Unlock()

	lock, ok := s.locks[integrationID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[integrationID] = lock
	}

	return lock
}
