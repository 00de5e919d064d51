package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/compliance-manager-api/internal/scheduler"
	"github.com/vfg2006/compliance-manager-api/internal/usecases/syncing"
	"github.com/vfg2006/compliance-manager-api/pkg/apiErrors"
	"github.com/vfg2006/compliance-manager-api/pkg/utils"
)

// TriggerSync dispara manualmente a sincronização de uma integração
func TriggerSync(service *scheduler.CampaignSyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - TriggerSync")

		integrationID := httprouter.ParamsFromContext(r.Context()).ByName("integrationID")
		if integrationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Integração não especificada", nil)
			return
		}

		var since *time.Time
		if sinceParam := r.URL.Query().Get("since"); sinceParam != "" {
			parsed, err := utils.ParseDate(sinceParam)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro since inválido, use o formato YYYY-MM-DD", nil)
				return
			}

			since = parsed
		}

		if err := service.TriggerManualSync(r.Context(), integrationID, since); err != nil {
			logrus.Error("Error triggering sync:", err)

			switch {
			case strings.Contains(err.Error(), "não encontrada"):
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Integração não encontrada", nil)
			case strings.Contains(err.Error(), "já em andamento"):
				apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, "Sincronização já em andamento para esta integração", nil)
			case errors.Is(err, syncing.ErrAuthFailed):
				apiErrors.WriteError(w, apiErrors.ErrPlatformAuth, "Token da plataforma de anúncios inválido ou expirado", nil)
			case errors.Is(err, syncing.ErrRateLimitExceeded):
				apiErrors.WriteError(w, apiErrors.ErrPlatformRateLimit, "Limite de requisições da plataforma excedido", nil)
			default:
				if phaseErr, ok := syncing.AsPhaseError(err); ok {
					apiErrors.WriteError(w, apiErrors.ErrSyncFailed, "Falha na sincronização", map[string]any{
						"phase":     phaseErr.Phase,
						"processed": phaseErr.Processed,
					})
					return
				}

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao disparar sincronização", nil)
			}
			return
		}

		response := map[string]any{
			"message":        "Sincronização concluída com sucesso",
			"integration_id": integrationID,
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetSyncStatus retorna o estado do agendador e as últimas execuções
func GetSyncStatus(service *scheduler.CampaignSyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetSyncStatus")

		status, err := service.GetStatus(r.Context())
		if err != nil {
			logrus.Error("Error fetching sync status:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar status de sincronização", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(status); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
