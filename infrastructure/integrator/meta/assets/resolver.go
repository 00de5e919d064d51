package assets

import (
	"context"
	"fmt"

	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/compliance-manager-api/internal/domain"

	"github.com/sirupsen/logrus"
)

// Store persiste um asset a partir da URL de origem e devolve a
// localização final. O resolvedor nunca armazena bytes diretamente.
type Store interface {
	DownloadAndSave(ctx context.Context, sourceURL, owner string) (string, error)
}

// creativeAPI é o subconjunto do cliente da Graph API que o resolvedor
// consome.
type creativeAPI interface {
	GetImageURLByHash(ctx context.Context, accountID, hash string) (string, error)
	GetCreativeByID(ctx context.Context, creativeID string) (*metadomain.CreativeRef, error)
	GetVideoByID(ctx context.Context, videoID string) (*metadomain.Video, error)
}

// Resolution é o resultado da resolução de um criativo.
type Resolution struct {
	Format            domain.CreativeFormat
	ImageLocation     string
	ImageSourceURL    string
	CarouselLocations []string
	VideoLocation     string
	ThumbnailState    domain.ThumbnailState
	DegradedQuality   bool
}

type Resolver interface {
	Resolve(ctx context.Context, accountID string, ref *metadomain.CreativeRef, owner string) (*Resolution, error)
}

type resolver struct {
	api   creativeAPI
	store Store

	// URL de origem -> localização já persistida. Preenchido pelo
	// chamador em sincronizações incrementais para evitar redownload.
	existing map[string]string
}

func NewResolver(api creativeAPI, store Store, existing map[string]string) Resolver {
	if existing == nil {
		existing = map[string]string{}
	}

	return &resolver{
		api:      api,
		store:    store,
		existing: existing,
	}
}

// imageStrategy é um passo da cadeia de fallback de imagens. Devolve a
// URL em resolução completa ou vazio quando o passo não se aplica.
type imageStrategy struct {
	name     string
	degraded bool
	resolve  func(ctx context.Context, accountID string, ref *metadomain.CreativeRef) (string, error)
}

// Ordem estrita: cada passo só roda se o anterior não produziu nada.
// O hash do story spec vem antes do image_url direto porque resolve
// para a imagem original em resolução completa.
func (r *resolver) imageStrategies() []imageStrategy {
	return []imageStrategy{
		{
			name: "story_spec_hash",
			resolve: func(ctx context.Context, accountID string, ref *metadomain.CreativeRef) (string, error) {
				hash := storySpecImageHash(ref)
				if hash == "" {
					return "", nil
				}
				return r.api.GetImageURLByHash(ctx, accountID, hash)
			},
		},
		{
			name: "direct_image_url",
			resolve: func(_ context.Context, _ string, ref *metadomain.CreativeRef) (string, error) {
				return ref.ImageURL, nil
			},
		},
		{
			name: "asset_feed_hash",
			resolve: func(ctx context.Context, accountID string, ref *metadomain.CreativeRef) (string, error) {
				if ref.AssetFeedSpec == nil || len(ref.AssetFeedSpec.Images) == 0 {
					return "", nil
				}
				return r.api.GetImageURLByHash(ctx, accountID, ref.AssetFeedSpec.Images[0].Hash)
			},
		},
		{
			name: "creative_details",
			resolve: func(ctx context.Context, _ string, ref *metadomain.CreativeRef) (string, error) {
				if ref.ID == "" {
					return "", nil
				}
				detail, err := r.api.GetCreativeByID(ctx, ref.ID)
				if err != nil {
					return "", err
				}
				return detail.ImageURL, nil
			},
		},
		{
			name:     "thumbnail",
			degraded: true,
			resolve: func(_ context.Context, _ string, ref *metadomain.CreativeRef) (string, error) {
				return ref.ThumbnailURL, nil
			},
		},
	}
}

// Resolve aplica a cadeia de fallback sobre um criativo e persiste as
// URLs resolvidas via Store. Vídeos e carrosséis são ramos próprios.
func (r *resolver) Resolve(ctx context.Context, accountID string, ref *metadomain.CreativeRef, owner string) (*Resolution, error) {
	if ref == nil {
		return nil, fmt.Errorf("criativo sem referência")
	}

	if videoID := findVideoID(ref); videoID != "" {
		return r.resolveVideo(ctx, videoID, owner)
	}

	if children := carouselChildren(ref); len(children) > 1 {
		return r.resolveCarousel(ctx, accountID, children, owner)
	}

	return r.resolveImage(ctx, accountID, ref, owner)
}

func (r *resolver) resolveImage(ctx context.Context, accountID string, ref *metadomain.CreativeRef, owner string) (*Resolution, error) {
	for _, strategy := range r.imageStrategies() {
		sourceURL, err := strategy.resolve(ctx, accountID, ref)
		if err != nil {
			// Token inválido ou rate limit atingem todas as chamadas
			// seguintes; não adianta tentar o próximo passo.
			if isFatalAPIError(err) {
				return nil, fmt.Errorf("passo %s do criativo %s: %w", strategy.name, ref.ID, err)
			}
			logrus.Warnf("Passo %s falhou para o criativo %s: %v", strategy.name, ref.ID, err)
			continue
		}

		if sourceURL == "" {
			continue
		}

		location, err := r.persist(ctx, sourceURL, owner)
		if err != nil {
			return nil, fmt.Errorf("erro ao persistir imagem do criativo %s: %w", ref.ID, err)
		}

		if strategy.degraded {
			logrus.Debugf("Criativo %s resolvido apenas via thumbnail de baixa resolução", ref.ID)
		}

		return &Resolution{
			Format:          domain.CreativeFormatImage,
			ImageLocation:   location,
			ImageSourceURL:  sourceURL,
			DegradedQuality: strategy.degraded,
		}, nil
	}

	return nil, fmt.Errorf("nenhum passo da cadeia resolveu o criativo %s", ref.ID)
}

func (r *resolver) resolveCarousel(ctx context.Context, accountID string, children []metadomain.ChildAttachment, owner string) (*Resolution, error) {
	locations := make([]string, 0, len(children))
	primarySource := ""

	for i, child := range children {
		sourceURL := ""

		// Mesma prioridade do ramo de imagem única, por cartão:
		// hash primeiro, campo picture como fallback.
		if child.ImageHash != "" {
			url, err := r.api.GetImageURLByHash(ctx, accountID, child.ImageHash)
			if err != nil {
				if isFatalAPIError(err) {
					return nil, fmt.Errorf("cartão %d do carrossel: %w", i, err)
				}
				logrus.Warnf("Lookup de hash falhou para o cartão %d do carrossel: %v", i, err)
			} else {
				sourceURL = url
			}
		}

		if sourceURL == "" {
			sourceURL = child.Picture
		}

		if sourceURL == "" {
			logrus.Warnf("Cartão %d do carrossel sem imagem resolvível", i)
			continue
		}

		location, err := r.persist(ctx, sourceURL, owner)
		if err != nil {
			return nil, fmt.Errorf("erro ao persistir cartão %d do carrossel: %w", i, err)
		}

		if len(locations) == 0 {
			primarySource = sourceURL
		}
		locations = append(locations, location)
	}

	if len(locations) == 0 {
		return nil, fmt.Errorf("nenhum cartão do carrossel foi resolvido")
	}

	// O primeiro cartão resolvido é a imagem principal do criativo.
	return &Resolution{
		Format:            domain.CreativeFormatCarousel,
		ImageLocation:     locations[0],
		ImageSourceURL:    primarySource,
		CarouselLocations: locations,
	}, nil
}

func (r *resolver) resolveVideo(ctx context.Context, videoID, owner string) (*Resolution, error) {
	video, err := r.api.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar detalhes do vídeo %s: %w", videoID, err)
	}

	resolution := &Resolution{
		Format:         domain.CreativeFormatVideo,
		VideoLocation:  video.Source,
		ThumbnailState: domain.ThumbnailStateMissing,
	}

	// A API ordena os thumbnails por qualidade crescente: a última
	// entrada é a de maior resolução.
	if thumbs := video.Thumbnails.Data; len(thumbs) > 0 {
		sourceURL := thumbs[len(thumbs)-1].URI

		location, err := r.persist(ctx, sourceURL, owner)
		if err != nil {
			return nil, fmt.Errorf("erro ao persistir thumbnail do vídeo %s: %w", videoID, err)
		}

		resolution.ImageLocation = location
		resolution.ImageSourceURL = sourceURL
		resolution.ThumbnailState = domain.ThumbnailStateResolved
	}

	return resolution, nil
}

func (r *resolver) persist(ctx context.Context, sourceURL, owner string) (string, error) {
	if location, ok := r.existing[sourceURL]; ok {
		return location, nil
	}

	location, err := r.store.DownloadAndSave(ctx, sourceURL, owner)
	if err != nil {
		return "", err
	}

	r.existing[sourceURL] = location

	return location, nil
}

// isFatalAPIError identifica erros da Graph API que invalidam a passada
// inteira e por isso devem subir ao orquestrador em vez de cair para o
// próximo passo da cadeia.
func isFatalAPIError(err error) bool {
	return metaclient.IsAuthError(err) || metaclient.IsRateLimitError(err)
}

func storySpecImageHash(ref *metadomain.CreativeRef) string {
	if ref.ObjectStorySpec != nil {
		if ref.ObjectStorySpec.LinkData != nil && ref.ObjectStorySpec.LinkData.ImageHash != "" {
			return ref.ObjectStorySpec.LinkData.ImageHash
		}
		if ref.ObjectStorySpec.PhotoData != nil && ref.ObjectStorySpec.PhotoData.ImageHash != "" {
			return ref.ObjectStorySpec.PhotoData.ImageHash
		}
	}

	if ref.ImageHash != "" {
		return ref.ImageHash
	}

	return ""
}

func findVideoID(ref *metadomain.CreativeRef) string {
	if ref.VideoID != "" {
		return ref.VideoID
	}

	if ref.ObjectStorySpec != nil && ref.ObjectStorySpec.VideoData != nil {
		return ref.ObjectStorySpec.VideoData.VideoID
	}

	return ""
}

func carouselChildren(ref *metadomain.CreativeRef) []metadomain.ChildAttachment {
	if ref.ObjectStorySpec == nil || ref.ObjectStorySpec.LinkData == nil {
		return nil
	}

	return ref.ObjectStorySpec.LinkData.ChildAttachments
}
