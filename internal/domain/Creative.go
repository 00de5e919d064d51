package domain

// Creative é o registro normalizado de um anúncio com seu criativo já
// resolvido. ImageLocation e VideoLocation apontam para o Asset Store
// quando o download foi persistido; DegradedQuality marca criativos cuja
// imagem só pôde ser resolvida pelo thumbnail de baixa resolução.
type Creative struct {
	ID            string         `json:"id"`
	ExternalID    string         `json:"external_id"`
	IntegrationID string         `json:"integration_id"`
	Platform      string         `json:"platform"`
	AdSetID       string         `json:"ad_set_id"`
	CampaignID    string         `json:"campaign_id"`
	Name          string         `json:"name"`
	Status        EntityStatus   `json:"status"`
	Format        CreativeFormat `json:"format"`
	Body          string         `json:"body,omitempty"`
	Title         string         `json:"title,omitempty"`

	ImageLocation          string         `json:"image_location,omitempty"`
	ImageSourceURL         string         `json:"-"`
	VideoLocation          string         `json:"video_location,omitempty"`
	CarouselImageLocations []string       `json:"carousel_image_locations,omitempty"`
	DegradedQuality        bool           `json:"degraded_quality"`
	ThumbnailState         ThumbnailState `json:"thumbnail_state,omitempty"`

	Metrics AdMetrics `json:"metrics"`
}
