package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/compliance-manager-api/infrastructure/repository"
	"github.com/vfg2006/compliance-manager-api/internal/usecases/complying"
	"github.com/vfg2006/compliance-manager-api/pkg/apiErrors"
)

// CreativeList lista os criativos sincronizados de uma integração
func CreativeList(creativeRepo repository.CreativeRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		integrationID := r.URL.Query().Get("integration_id")
		adSetID := r.URL.Query().Get("ad_set_id")

		if integrationID == "" && adSetID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe integration_id ou ad_set_id", nil)
			return
		}

		result, err := listCreatives(r, creativeRepo, integrationID, adSetID)
		if err != nil {
			logrus.Error("Error listing creatives:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar criativos no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(result); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func listCreatives(r *http.Request, creativeRepo repository.CreativeRepository, integrationID, adSetID string) (any, error) {
	if adSetID != "" {
		return creativeRepo.ListByAdSet(r.Context(), adSetID)
	}

	return creativeRepo.ListByIntegration(r.Context(), integrationID)
}

// AnalyzeCreative submete um criativo ao serviço de análise de conformidade
func AnalyzeCreative(service complying.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - AnalyzeCreative")

		creativeID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if creativeID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Criativo não especificado", nil)
			return
		}

		result, err := service.AnalyzeCreative(r.Context(), creativeID)
		if err != nil {
			logrus.Error("Error analyzing creative:", err)

			if strings.Contains(err.Error(), "não encontrado") {
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Criativo não encontrado", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao analisar criativo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(result); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
