package domain

// ComplianceResult é o resultado repassado pelo serviço de análise de
// conformidade de marca. O motor não interpreta o conteúdo: apenas informa
// ao analisador quando a imagem enviada é de qualidade degradada.
type ComplianceResult struct {
	CreativeID     string   `json:"creative_id"`
	Score          float64  `json:"score"`
	Verdict        string   `json:"verdict"`
	Labels         []string `json:"labels,omitempty"`
	DegradedSource bool     `json:"degraded_source"`
}
