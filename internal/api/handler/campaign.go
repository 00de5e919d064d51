package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/compliance-manager-api/infrastructure/repository"
	"github.com/vfg2006/compliance-manager-api/pkg/apiErrors"
)

// CampaignList lista as campanhas sincronizadas de uma integração
func CampaignList(campaignRepo repository.CampaignRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		integrationID := r.URL.Query().Get("integration_id")
		if integrationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro integration_id é obrigatório", nil)
			return
		}

		campaigns, err := campaignRepo.ListByIntegration(r.Context(), integrationID)
		if err != nil {
			logrus.Error("Error listing campaigns:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar campanhas no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(campaigns); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// AdSetList lista os conjuntos de anúncios de uma campanha
func AdSetList(adSetRepo repository.AdSetRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campanha não especificada", nil)
			return
		}

		adSets, err := adSetRepo.ListByCampaign(r.Context(), campaignID)
		if err != nil {
			logrus.Error("Error listing ad sets:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar conjuntos de anúncios no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(adSets); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
