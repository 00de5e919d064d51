package metadomain

// CreativeRef espelha o objeto creative retornado junto de um anúncio.
// É a entrada do resolvedor de assets: cada campo alimenta um passo da
// cadeia de fallback.
type CreativeRef struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	Body                   string           `json:"body"`
	Title                  string           `json:"title"`
	ImageURL               string           `json:"image_url"`
	ImageHash              string           `json:"image_hash"`
	ThumbnailURL           string           `json:"thumbnail_url"`
	VideoID                string           `json:"video_id"`
	EffectiveObjectStoryID string           `json:"effective_object_story_id"`
	ObjectStorySpec        *ObjectStorySpec `json:"object_story_spec"`
	AssetFeedSpec          *AssetFeedSpec   `json:"asset_feed_spec"`
}

type ObjectStorySpec struct {
	PageID    string     `json:"page_id"`
	LinkData  *LinkData  `json:"link_data"`
	VideoData *VideoData `json:"video_data"`
	PhotoData *PhotoData `json:"photo_data"`
}

type LinkData struct {
	Message          string            `json:"message"`
	ImageHash        string            `json:"image_hash"`
	Picture          string            `json:"picture"`
	ChildAttachments []ChildAttachment `json:"child_attachments"`
}

// ChildAttachment é um cartão de carrossel.
type ChildAttachment struct {
	Name      string `json:"name"`
	Link      string `json:"link"`
	ImageHash string `json:"image_hash"`
	Picture   string `json:"picture"`
}

type VideoData struct {
	VideoID   string `json:"video_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	ImageURL  string `json:"image_url"`
	ImageHash string `json:"image_hash"`
}

type PhotoData struct {
	ImageHash string `json:"image_hash"`
}

// AssetFeedSpec aparece em criativos dinâmicos/multi-asset.
type AssetFeedSpec struct {
	Images []FeedImage `json:"images"`
	Videos []FeedVideo `json:"videos"`
	Bodies []FeedBody  `json:"bodies"`
}

type FeedImage struct {
	Hash string `json:"hash"`
}

type FeedVideo struct {
	VideoID string `json:"video_id"`
}

type FeedBody struct {
	Text string `json:"text"`
}

// AdImage é o resultado do lookup hash -> URL em resolução completa.
type AdImage struct {
	Hash string `json:"hash"`
	URL  string `json:"url"`
}

// Video é o detalhe de um vídeo: thumbnails ordenados por qualidade
// crescente e a URL da mídia de origem.
type Video struct {
	ID         string        `json:"id"`
	Source     string        `json:"source"`
	Thumbnails ThumbnailList `json:"thumbnails"`
}

type ThumbnailList struct {
	Data []Thumbnail `json:"data"`
}

type Thumbnail struct {
	URI         string  `json:"uri"`
	Scale       float64 `json:"scale"`
	IsPreferred bool    `json:"is_preferred"`
}
