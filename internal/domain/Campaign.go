package domain

// Campaign é o registro normalizado de uma campanha, pronto para inserção.
// O ID interno é atribuído pela camada de persistência, nunca pelo motor
// de sincronização.
type Campaign struct {
	ID            string       `json:"id"`
	ExternalID    string       `json:"external_id"`
	IntegrationID string       `json:"integration_id"`
	Platform      string       `json:"platform"`
	Name          string       `json:"name"`
	Status        EntityStatus `json:"status"`
	Budget        float64      `json:"budget"`
}

type AdSet struct {
	ID            string       `json:"id"`
	ExternalID    string       `json:"external_id"`
	IntegrationID string       `json:"integration_id"`
	Platform      string       `json:"platform"`
	CampaignID    string       `json:"campaign_id"`
	Name          string       `json:"name"`
	Status        EntityStatus `json:"status"`
	Budget        float64      `json:"budget"`
	Metrics       AdMetrics    `json:"metrics"`
}

// AdSetRef é o valor do mapa de ids de conjuntos de anúncios: o id interno
// do conjunto e o id interno da campanha pai, consumidos ao normalizar a
// camada de anúncios.
type AdSetRef struct {
	AdSetID    string `json:"ad_set_id"`
	CampaignID string `json:"campaign_id"`
}

// AdMetrics são os contadores de performance de um anúncio ou conjunto de
// anúncios, já convertidos dos campos string da plataforma.
type AdMetrics struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	Spend       float64 `json:"spend"`
}
