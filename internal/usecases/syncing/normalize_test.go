package syncing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
)

func TestNormalizeBudget(t *testing.T) {
	tests := []struct {
		name           string
		dailyBudget    string
		lifetimeBudget string
		expected       float64
	}{
		{
			name:        "Centavos convertidos para valor decimal",
			dailyBudget: "150000",
			expected:    1500.00,
		},
		{
			name:           "Orçamento diário tem prioridade sobre o vitalício",
			dailyBudget:    "5000",
			lifetimeBudget: "900000",
			expected:       50.00,
		},
		{
			name:           "Sem orçamento diário usa o vitalício",
			lifetimeBudget: "250050",
			expected:       2500.50,
		},
		{
			name:     "Ambos vazios viram zero",
			expected: 0,
		},
		{
			name:        "Valor não numérico vira zero",
			dailyBudget: "abc",
			expected:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeBudget(tt.dailyBudget, tt.lifetimeBudget))
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	t.Run("Prefere o effective_status", func(t *testing.T) {
		status := normalizeStatus("CAMPAIGN_PAUSED", "ACTIVE")

		assert.Equal(t, "Parent campaign disabled", status.Display)
		assert.Equal(t, "CAMPAIGN_PAUSED", status.Raw)
	})

	t.Run("Effective_status vazio cai no status configurado", func(t *testing.T) {
		status := normalizeStatus("", "PAUSED")

		assert.Equal(t, "Not delivering", status.Display)
	})

	t.Run("Status desconhecido preserva o valor bruto", func(t *testing.T) {
		status := normalizeStatus("SOMETHING_NEW", "")

		assert.Equal(t, "Unknown", status.Display)
		assert.Equal(t, "SOMETHING_NEW", status.Raw)
		assert.False(t, status.IsKnown())
	})
}

func TestNormalizeMetrics(t *testing.T) {
	t.Run("Insight nulo vira métricas zeradas", func(t *testing.T) {
		metrics := normalizeMetrics(nil)

		assert.Zero(t, metrics.Impressions)
		assert.Zero(t, metrics.Spend)
	})

	t.Run("Campos string convertidos e arredondados", func(t *testing.T) {
		metrics := normalizeMetrics(&metadomain.AdInsight{
			Impressions: "12345",
			Clicks:      "678",
			CTR:         "5.4918",
			CPC:         "0.3333",
			Spend:       "226.0182",
		})

		assert.Equal(t, int64(12345), metrics.Impressions)
		assert.Equal(t, int64(678), metrics.Clicks)
		assert.Equal(t, 5.49, metrics.CTR)
		assert.Equal(t, 0.33, metrics.CPC)
		assert.Equal(t, 226.02, metrics.Spend)
	})

	t.Run("Conversões somam apenas os tipos de ação reconhecidos", func(t *testing.T) {
		metrics := normalizeMetrics(&metadomain.AdInsight{
			Actions: []metadomain.Action{
				{ActionType: "purchase", Value: "3"},
				{ActionType: "lead", Value: "2"},
				{ActionType: "link_click", Value: "100"},
				{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "5"},
			},
		})

		assert.Equal(t, int64(10), metrics.Conversions)
	})

	t.Run("Campos inválidos não derrubam a conversão", func(t *testing.T) {
		metrics := normalizeMetrics(&metadomain.AdInsight{
			Impressions: "n/a",
			Spend:       "",
		})

		assert.Zero(t, metrics.Impressions)
		assert.Zero(t, metrics.Spend)
	})
}
