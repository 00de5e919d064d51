package metadomain

// AdInsight espelha uma linha de insights da Graph API. Números chegam
// como string e são convertidos apenas na normalização.
type AdInsight struct {
	Impressions string   `json:"impressions"`
	Clicks      string   `json:"clicks"`
	Spend       string   `json:"spend"`
	CTR         string   `json:"ctr"`
	CPC         string   `json:"cpc"`
	Actions     []Action `json:"actions"`
}

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightEnvelope é o envelope data[] de uma consulta de insights.
type InsightEnvelope struct {
	Data []AdInsight `json:"data"`
}
