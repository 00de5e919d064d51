package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/compliance-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/compliance-manager-api/internal/config"
	"github.com/vfg2006/compliance-manager-api/internal/domain"
	"github.com/vfg2006/compliance-manager-api/internal/usecases/syncing"
	syncingmocks "github.com/vfg2006/compliance-manager-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

type syncFixture struct {
	service         *CampaignSyncService
	integrationRepo *mocks.MockIntegrationRepository
	syncRunRepo     *mocks.MockSyncRunRepository
	creativeRepo    *mocks.MockCreativeRepository
	synchronizer    *syncingmocks.MockSynchronizer
}

func newSyncFixture(t *testing.T, incremental bool) *syncFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	integrationRepo := mocks.NewMockIntegrationRepository(ctrl)
	syncRunRepo := mocks.NewMockSyncRunRepository(ctrl)
	creativeRepo := mocks.NewMockCreativeRepository(ctrl)
	synchronizer := syncingmocks.NewMockSynchronizer(ctrl)

	appConfig := &config.Config{
		CampaignSync: config.CampaignSync{
			CronSchedule: "0 3 * * *",
			Enabled:      true,
			Incremental:  incremental,
		},
	}

	return &syncFixture{
		service:         NewCampaignSyncService(integrationRepo, syncRunRepo, creativeRepo, synchronizer, appConfig),
		integrationRepo: integrationRepo,
		syncRunRepo:     syncRunRepo,
		creativeRepo:    creativeRepo,
		synchronizer:    synchronizer,
	}
}

func activeIntegration() *domain.Integration {
	return &domain.Integration{
		ID:                "int-1",
		Platform:          "meta",
		ExternalAccountID: "act_123",
		Status:            domain.IntegrationStatusActive,
	}
}

func TestCampaignSyncService_TriggerManualSync(t *testing.T) {
	t.Run("Integração inexistente devolve erro sem executar sincronização", func(t *testing.T) {
		f := newSyncFixture(t, false)

		f.integrationRepo.EXPECT().
			GetByID(gomock.Any(), "int-404").
			Return(nil, nil)

		err := f.service.TriggerManualSync(context.Background(), "int-404", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "não encontrada")
	})

	t.Run("Sincronização em andamento para a mesma integração é rejeitada", func(t *testing.T) {
		f := newSyncFixture(t, false)

		f.integrationRepo.EXPECT().
			GetByID(gomock.Any(), "int-1").
			Return(activeIntegration(), nil)

		// Simula uma execução concorrente segurando o lock da integração
		lock := f.service.lockFor("int-1")
		lock.Lock()
		defer lock.Unlock()

		err := f.service.TriggerManualSync(context.Background(), "int-1", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "já em andamento")
	})

	t.Run("Execução bem-sucedida registra a corrida e atualiza last_synced_at", func(t *testing.T) {
		f := newSyncFixture(t, false)

		integration := activeIntegration()

		f.integrationRepo.EXPECT().
			GetByID(gomock.Any(), "int-1").
			Return(integration, nil)

		var createdRun *domain.SyncRun
		f.syncRunRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, run *domain.SyncRun) error {
				createdRun = run
				assert.NotEmpty(t, run.ID)
				assert.Equal(t, "int-1", run.IntegrationID)
				return nil
			})

		f.synchronizer.EXPECT().
			Sync(gomock.Any(), integration, gomock.Any()).
			Return(&syncing.Result{
				Campaigns:      make([]domain.Campaign, 3),
				AdSets:         make([]domain.AdSet, 5),
				Creatives:      make([]domain.Creative, 7),
				SkippedOrphans: 1,
			}, nil)

		f.syncRunRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, run *domain.SyncRun) error {
				assert.Equal(t, createdRun.ID, run.ID)
				assert.Equal(t, domain.SyncPhaseDone, run.Phase)
				assert.Equal(t, 3, run.Campaigns)
				assert.Equal(t, 5, run.AdSets)
				assert.Equal(t, 7, run.Creatives)
				assert.Equal(t, 1, run.SkippedOrphans)
				assert.Empty(t, run.Error)
				require.NotNil(t, run.CompletedAt)
				return nil
			})

		f.integrationRepo.EXPECT().
			UpdateLastSyncedAt(gomock.Any(), "int-1", gomock.Any()).
			Return(nil)

		err := f.service.TriggerManualSync(context.Background(), "int-1", nil)

		require.NoError(t, err)
	})

	t.Run("Falha de autenticação marca a integração para reconexão", func(t *testing.T) {
		f := newSyncFixture(t, false)

		integration := activeIntegration()

		f.integrationRepo.EXPECT().
			GetByID(gomock.Any(), "int-1").
			Return(integration, nil)
		f.syncRunRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		authFailure := &syncing.PhaseError{
			Phase: domain.SyncPhaseCampaigns,
			Err:   fmt.Errorf("%w: token expirado", syncing.ErrAuthFailed),
		}

		f.synchronizer.EXPECT().
			Sync(gomock.Any(), integration, gomock.Any()).
			Return(&syncing.Result{}, authFailure)

		f.integrationRepo.EXPECT().
			UpdateStatus(gomock.Any(), "int-1", domain.IntegrationStatusReconnecting).
			Return(nil)

		f.syncRunRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, run *domain.SyncRun) error {
				assert.Equal(t, domain.SyncPhaseCampaigns, run.Phase)
				assert.NotEmpty(t, run.Error)
				return nil
			})

		err := f.service.TriggerManualSync(context.Background(), "int-1", nil)

		require.Error(t, err)
	})

	t.Run("Parâmetro since força a janela incremental da execução", func(t *testing.T) {
		f := newSyncFixture(t, false)

		integration := activeIntegration()
		since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		f.integrationRepo.EXPECT().
			GetByID(gomock.Any(), "int-1").
			Return(integration, nil)
		f.syncRunRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		f.synchronizer.EXPECT().
			Sync(gomock.Any(), integration, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *domain.Integration, opts syncing.Options) (*syncing.Result, error) {
				require.NotNil(t, opts.Since)
				assert.Equal(t, since, *opts.Since)
				return &syncing.Result{}, nil
			})

		f.syncRunRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.integrationRepo.EXPECT().UpdateLastSyncedAt(gomock.Any(), "int-1", gomock.Any()).Return(nil)

		err := f.service.TriggerManualSync(context.Background(), "int-1", &since)

		require.NoError(t, err)
	})
}

func TestCampaignSyncService_buildOptions(t *testing.T) {
	t.Run("Modo incremental usa last_synced_at e o cache de assets", func(t *testing.T) {
		f := newSyncFixture(t, true)

		lastSync := time.Date(2026, 8, 20, 3, 0, 0, 0, time.UTC)
		integration := activeIntegration()
		integration.LastSyncedAt = &lastSync

		f.creativeRepo.EXPECT().
			ExistingAssetURLs(gomock.Any(), "int-1").
			Return(map[string]string{"https://cdn.example.com/a.jpg": "stored/a"}, nil)

		opts := f.service.buildOptions(context.Background(), integration)

		require.NotNil(t, opts.Since)
		assert.Equal(t, lastSync, *opts.Since)
		assert.Equal(t, "stored/a", opts.ExistingAssetURLs["https://cdn.example.com/a.jpg"])
	})

	t.Run("Primeira sincronização incremental roda completa", func(t *testing.T) {
		f := newSyncFixture(t, true)

		opts := f.service.buildOptions(context.Background(), activeIntegration())

		assert.Nil(t, opts.Since)
		assert.Nil(t, opts.ExistingAssetURLs)
	})

	t.Run("Falha ao carregar o cache de assets não impede a sincronização", func(t *testing.T) {
		f := newSyncFixture(t, true)

		lastSync := time.Now()
		integration := activeIntegration()
		integration.LastSyncedAt = &lastSync

		f.creativeRepo.EXPECT().
			ExistingAssetURLs(gomock.Any(), "int-1").
			Return(nil, fmt.Errorf("timeout"))

		opts := f.service.buildOptions(context.Background(), integration)

		require.NotNil(t, opts.Since)
		assert.Nil(t, opts.ExistingAssetURLs)
	})

	t.Run("Modo completo ignora o estado incremental", func(t *testing.T) {
		f := newSyncFixture(t, false)

		lastSync := time.Now()
		integration := activeIntegration()
		integration.LastSyncedAt = &lastSync

		opts := f.service.buildOptions(context.Background(), integration)

		assert.Nil(t, opts.Since)
	})
}

func TestCampaignSyncService_SyncAllIntegrations(t *testing.T) {
	t.Run("Integração com lock ocupado é pulada sem bloquear as demais", func(t *testing.T) {
		f := newSyncFixture(t, false)

		busy := activeIntegration()
		free := &domain.Integration{ID: "int-2", Platform: "meta", ExternalAccountID: "act_456", Status: domain.IntegrationStatusActive}

		f.integrationRepo.EXPECT().
			ListByStatus(gomock.Any(), []domain.IntegrationStatus{domain.IntegrationStatusActive}).
			Return([]*domain.Integration{busy, free}, nil)

		lock := f.service.lockFor("int-1")
		lock.Lock()
		defer lock.Unlock()

		// Só a integração livre executa
		f.syncRunRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.synchronizer.EXPECT().
			Sync(gomock.Any(), free, gomock.Any()).
			Return(&syncing.Result{}, nil)
		f.syncRunRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.integrationRepo.EXPECT().UpdateLastSyncedAt(gomock.Any(), "int-2", gomock.Any()).Return(nil)

		f.service.syncAllIntegrations(context.Background())
	})

	t.Run("Consulta de status durante a execução agendada não corrompe os horários", func(t *testing.T) {
		f := newSyncFixture(t, false)

		f.integrationRepo.EXPECT().
			ListByStatus(gomock.Any(), []domain.IntegrationStatus{domain.IntegrationStatusActive}).
			Return([]*domain.Integration{activeIntegration()}, nil).
			AnyTimes()
		f.integrationRepo.EXPECT().
			ListByStatus(gomock.Any(), nil).
			Return(nil, nil).
			AnyTimes()
		f.syncRunRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.synchronizer.EXPECT().
			Sync(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&syncing.Result{}, nil).
			AnyTimes()
		f.syncRunRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.integrationRepo.EXPECT().UpdateLastSyncedAt(gomock.Any(), "int-1", gomock.Any()).Return(nil).AnyTimes()

		done := make(chan struct{})
		go func() {
			defer close(done)
			f.service.syncAllIntegrations(context.Background())
		}()

		for i := 0; i < 50; i++ {
			_, err := f.service.GetStatus(context.Background())
			require.NoError(t, err)
		}

		<-done

		status, err := f.service.GetStatus(context.Background())
		require.NoError(t, err)
		assert.Contains(t, status, "last_sync_started_at")
		assert.Contains(t, status, "last_sync_completed_at")
	})
}
