package domain

// EntityStatus é o status normalizado de uma campanha, conjunto de anúncios
// ou criativo. O valor bruto enviado pela plataforma é sempre preservado,
// mesmo quando não reconhecido, para evitar perda silenciosa de dados.
type EntityStatus struct {
	Display string `json:"display"`
	Raw     string `json:"raw"`
}

// Vocabulário fixo: status da plataforma -> status de exibição.
var metaStatusDisplay = map[string]string{
	"ACTIVE":          "Active",
	"PAUSED":          "Not delivering",
	"CAMPAIGN_PAUSED": "Parent campaign disabled",
	"ADSET_PAUSED":    "Parent ad set disabled",
	"ARCHIVED":        "Archived",
	"PENDING_REVIEW":  "In review",
	"DISAPPROVED":     "Rejected",
	"IN_PROCESS":      "Processing",
	"WITH_ISSUES":     "With issues",
	"DELETED":         "Deleted",
}

// NormalizeEntityStatus traduz o status bruto da plataforma para o
// vocabulário de exibição. Status desconhecidos caem em "Unknown" com o
// valor bruto preservado em Raw.
func NormalizeEntityStatus(raw string) EntityStatus {
	if display, ok := metaStatusDisplay[raw]; ok {
		return EntityStatus{Display: display, Raw: raw}
	}

	return EntityStatus{Display: "Unknown", Raw: raw}
}

// IsKnown indica se o status bruto foi reconhecido pelo vocabulário.
func (s EntityStatus) IsKnown() bool {
	_, ok := metaStatusDisplay[s.Raw]
	return ok
}

// CreativeFormat é a enumeração fechada de formatos de criativo.
type CreativeFormat string

const (
	CreativeFormatImage    CreativeFormat = "image"
	CreativeFormatVideo    CreativeFormat = "video"
	CreativeFormatCarousel CreativeFormat = "carousel"
	CreativeFormatUnknown  CreativeFormat = "unknown"
)

// ThumbnailState diferencia explicitamente "vídeo sem thumbnail" de uma
// ausência ambígua, para que a UI renderize um placeholder determinístico.
type ThumbnailState string

const (
	ThumbnailStateResolved ThumbnailState = "resolved"
	ThumbnailStateMissing  ThumbnailState = "missing"
	ThumbnailStateNone     ThumbnailState = ""
)
