package syncing

import (
	"strconv"

	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/compliance-manager-api/internal/domain"
	"github.com/vfg2006/compliance-manager-api/pkg/utils"
)

// Tipos de ação da Graph API contabilizados como conversão.
var conversionActionTypes = map[string]bool{
	"purchase":                             true,
	"omni_purchase":                        true,
	"lead":                                 true,
	"onsite_conversion.purchase":           true,
	"offsite_conversion.fb_pixel_purchase": true,
	"offsite_conversion.fb_pixel_lead":     true,
}

// normalizeBudget converte o orçamento da plataforma (string em unidades
// mínimas da moeda) para valor decimal. Prioriza o orçamento diário.
func normalizeBudget(dailyBudget, lifetimeBudget string) float64 {
	raw := dailyBudget
	if raw == "" {
		raw = lifetimeBudget
	}

	if raw == "" {
		return 0
	}

	cents, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}

	return utils.RoundWithTwoDecimalPlace(cents / 100)
}

// normalizeStatus prefere o effective_status, que reflete o estado real
// de entrega (inclui estados herdados como CAMPAIGN_PAUSED).
func normalizeStatus(effectiveStatus, status string) domain.EntityStatus {
	raw := effectiveStatus
	if raw == "" {
		raw = status
	}

	return domain.NormalizeEntityStatus(raw)
}

// normalizeMetrics converte os campos string de um insight para os
// contadores numéricos do domínio. Insight nulo vira métricas zeradas.
func normalizeMetrics(insight *metadomain.AdInsight) domain.AdMetrics {
	if insight == nil {
		return domain.AdMetrics{}
	}

	metrics := domain.AdMetrics{
		Impressions: parseInt(insight.Impressions),
		Clicks:      parseInt(insight.Clicks),
		CTR:         utils.RoundWithTwoDecimalPlace(parseFloat(insight.CTR)),
		CPC:         utils.RoundWithTwoDecimalPlace(parseFloat(insight.CPC)),
		Spend:       utils.RoundWithTwoDecimalPlace(parseFloat(insight.Spend)),
	}

	for _, action := range insight.Actions {
		if conversionActionTypes[action.ActionType] {
			metrics.Conversions += parseInt(action.Value)
		}
	}

	return metrics
}

func parseInt(s string) int64 {
	if s == "" {
		return 0
	}

	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}

	return value
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return value
}
