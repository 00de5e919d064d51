package assets

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/compliance-manager-api/internal/domain"
)

// fakeCreativeAPI devolve lookups pré-definidos e registra as chamadas
// de hash, para verificar a ordem da cadeia de fallback.
type fakeCreativeAPI struct {
	imagesByHash map[string]string
	creatives    map[string]*metadomain.CreativeRef
	videos       map[string]*metadomain.Video

	hashLookups []string
	hashErr     error
}

func (f *fakeCreativeAPI) GetImageURLByHash(ctx context.Context, accountID, hash string) (string, error) {
	f.hashLookups = append(f.hashLookups, hash)

	if f.hashErr != nil {
		return "", f.hashErr
	}

	return f.imagesByHash[hash], nil
}

func (f *fakeCreativeAPI) GetCreativeByID(ctx context.Context, creativeID string) (*metadomain.CreativeRef, error) {
	creative, ok := f.creatives[creativeID]
	if !ok {
		return nil, fmt.Errorf("criativo %s não encontrado", creativeID)
	}
	return creative, nil
}

func (f *fakeCreativeAPI) GetVideoByID(ctx context.Context, videoID string) (*metadomain.Video, error) {
	video, ok := f.videos[videoID]
	if !ok {
		return nil, fmt.Errorf("vídeo %s não encontrado", videoID)
	}
	return video, nil
}

// fakeStore devolve uma localização determinística por URL e registra os
// downloads, para verificar o cache incremental.
type fakeStore struct {
	saved []string
	err   error
}

func (f *fakeStore) DownloadAndSave(ctx context.Context, sourceURL, owner string) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	f.saved = append(f.saved, sourceURL)
	return "stored/" + owner + "/" + sourceURL, nil
}

func TestResolver_Resolve_Image(t *testing.T) {
	t.Run("Hash do story spec tem prioridade sobre a URL direta", func(t *testing.T) {
		api := &fakeCreativeAPI{
			imagesByHash: map[string]string{"hash-1": "https://cdn.example.com/full.jpg"},
		}
		store := &fakeStore{}
		resolver := NewResolver(api, store, nil)

		ref := &metadomain.CreativeRef{
			ID:       "cr-1",
			ImageURL: "https://cdn.example.com/low.jpg",
			ObjectStorySpec: &metadomain.ObjectStorySpec{
				LinkData: &metadomain.LinkData{ImageHash: "hash-1"},
			},
		}

		resolution, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.NoError(t, err)
		assert.Equal(t, domain.CreativeFormatImage, resolution.Format)
		assert.Equal(t, "https://cdn.example.com/full.jpg", resolution.ImageSourceURL)
		assert.Equal(t, "stored/int-1/https://cdn.example.com/full.jpg", resolution.ImageLocation)
		assert.False(t, resolution.DegradedQuality)

		// A URL direta nunca foi baixada
		assert.Equal(t, []string{"https://cdn.example.com/full.jpg"}, store.saved)
	})

	t.Run("Sem hash a URL direta é usada", func(t *testing.T) {
		api := &fakeCreativeAPI{}
		store := &fakeStore{}
		resolver := NewResolver(api, store, nil)

		ref := &metadomain.CreativeRef{ID: "cr-2", ImageURL: "https://cdn.example.com/direct.jpg"}

		resolution, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/direct.jpg", resolution.ImageSourceURL)
		assert.Empty(t, api.hashLookups)
	})

	t.Run("Falha de um passo cai para o próximo em vez de abortar", func(t *testing.T) {
		api := &fakeCreativeAPI{
			hashErr: fmt.Errorf("hash não encontrado"),
		}
		store := &fakeStore{}
		resolver := NewResolver(api, store, nil)

		ref := &metadomain.CreativeRef{
			ID:        "cr-3",
			ImageHash: "hash-x",
			ImageURL:  "https://cdn.example.com/fallback.jpg",
		}

		resolution, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/fallback.jpg", resolution.ImageSourceURL)
	})

	t.Run("Token inválido interrompe a cadeia em vez de cair para o próximo passo", func(t *testing.T) {
		api := &fakeCreativeAPI{
			hashErr: &metaclient.AuthError{Code: 190, Message: "token expirado"},
		}
		store := &fakeStore{}
		resolver := NewResolver(api, store, nil)

		ref := &metadomain.CreativeRef{
			ID:        "cr-auth",
			ImageHash: "hash-x",
			ImageURL:  "https://cdn.example.com/fallback.jpg",
		}

		_, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.Error(t, err)
		assert.True(t, metaclient.IsAuthError(err))
		// A URL de fallback nunca foi baixada
		assert.Empty(t, store.saved)
	})

	t.Run("Rate limit interrompe a cadeia em vez de cair para o próximo passo", func(t *testing.T) {
		api := &fakeCreativeAPI{
			hashErr: &metaclient.RateLimitError{Code: 17, Attempts: 4},
		}
		resolver := NewResolver(api, &fakeStore{}, nil)

		ref := &metadomain.CreativeRef{
			ID:        "cr-rate",
			ImageHash: "hash-x",
			ImageURL:  "https://cdn.example.com/fallback.jpg",
		}

		_, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.Error(t, err)
		assert.True(t, metaclient.IsRateLimitError(err))
	})

	t.Run("Detalhe do criativo é consultado quando os passos anteriores não produzem nada", func(t *testing.T) {
		api := &fakeCreativeAPI{
			creatives: map[string]*metadomain.CreativeRef{
				"cr-4": {ID: "cr-4", ImageURL: "https://cdn.example.com/detail.jpg"},
			},
		}
		store := &fakeStore{}
		resolver := NewResolver(api, store, nil)

		ref := &metadomain.CreativeRef{ID: "cr-4"}

		resolution, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/detail.jpg", resolution.ImageSourceURL)
	})

	t.Run("Thumbnail é o último recurso e marca qualidade degradada", func(t *testing.T) {
		api := &fakeCreativeAPI{
			creatives: map[string]*metadomain.CreativeRef{"cr-5": {ID: "cr-5"}},
		}
		store := &fakeStore{}
		resolver := NewResolver(api, store, nil)

		ref := &metadomain.CreativeRef{ID: "cr-5", ThumbnailURL: "https://cdn.example.com/thumb_64.jpg"}

		resolution, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.NoError(t, err)
		assert.True(t, resolution.DegradedQuality)
		assert.Equal(t, "https://cdn.example.com/thumb_64.jpg", resolution.ImageSourceURL)
	})

	t.Run("Nenhum passo aplicável devolve erro", func(t *testing.T) {
		api := &fakeCreativeAPI{
			creatives: map[string]*metadomain.CreativeRef{"cr-6": {ID: "cr-6"}},
		}
		resolver := NewResolver(api, &fakeStore{}, nil)

		_, err := resolver.Resolve(context.Background(), "act_1", &metadomain.CreativeRef{ID: "cr-6"}, "int-1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "nenhum passo")
	})

	t.Run("URL já persistida não é baixada de novo", func(t *testing.T) {
		api := &fakeCreativeAPI{}
		store := &fakeStore{}
		existing := map[string]string{
			"https://cdn.example.com/cached.jpg": "stored/int-1/cached",
		}
		resolver := NewResolver(api, store, existing)

		ref := &metadomain.CreativeRef{ID: "cr-7", ImageURL: "https://cdn.example.com/cached.jpg"}

		resolution, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.NoError(t, err)
		assert.Equal(t, "stored/int-1/cached", resolution.ImageLocation)
		assert.Empty(t, store.saved)
	})
}

func TestResolver_Resolve_Carousel(t *testing.T) {
	carouselRef := func(children ...metadomain.ChildAttachment) *metadomain.CreativeRef {
		return &metadomain.CreativeRef{
			ID: "cr-car",
			ObjectStorySpec: &metadomain.ObjectStorySpec{
				LinkData: &metadomain.LinkData{ChildAttachments: children},
			},
		}
	}

	t.Run("Resolve cada cartão e usa o primeiro como imagem principal", func(t *testing.T) {
		api := &fakeCreativeAPI{
			imagesByHash: map[string]string{
				"h1": "https://cdn.example.com/card1.jpg",
				"h2": "https://cdn.example.com/card2.jpg",
			},
		}
		store := &fakeStore{}
		resolver := NewResolver(api, store, nil)

		ref := carouselRef(
			metadomain.ChildAttachment{ImageHash: "h1"},
			metadomain.ChildAttachment{ImageHash: "h2"},
			metadomain.ChildAttachment{Picture: "https://cdn.example.com/card3.jpg"},
		)

		resolution, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.NoError(t, err)
		assert.Equal(t, domain.CreativeFormatCarousel, resolution.Format)
		require.Len(t, resolution.CarouselLocations, 3)
		assert.Equal(t, resolution.CarouselLocations[0], resolution.ImageLocation)
		assert.Equal(t, "https://cdn.example.com/card1.jpg", resolution.ImageSourceURL)
	})

	t.Run("Cartão sem imagem é pulado sem derrubar o carrossel", func(t *testing.T) {
		api := &fakeCreativeAPI{
			imagesByHash: map[string]string{"h1": "https://cdn.example.com/card1.jpg"},
		}
		store := &fakeStore{}
		resolver := NewResolver(api, store, nil)

		ref := carouselRef(
			metadomain.ChildAttachment{},
			metadomain.ChildAttachment{ImageHash: "h1"},
		)

		resolution, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.NoError(t, err)
		assert.Len(t, resolution.CarouselLocations, 1)
		assert.Equal(t, "https://cdn.example.com/card1.jpg", resolution.ImageSourceURL)
	})

	t.Run("Token inválido em um cartão derruba o carrossel inteiro", func(t *testing.T) {
		api := &fakeCreativeAPI{
			hashErr: &metaclient.AuthError{Code: 190, Subcode: 463, Message: "token expirado"},
		}
		store := &fakeStore{}
		resolver := NewResolver(api, store, nil)

		ref := carouselRef(
			metadomain.ChildAttachment{ImageHash: "h1", Picture: "https://cdn.example.com/card1.jpg"},
			metadomain.ChildAttachment{Picture: "https://cdn.example.com/card2.jpg"},
		)

		_, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.Error(t, err)
		assert.True(t, metaclient.IsAuthError(err))
		assert.Empty(t, store.saved)
	})

	t.Run("Carrossel sem nenhum cartão resolvível devolve erro", func(t *testing.T) {
		resolver := NewResolver(&fakeCreativeAPI{}, &fakeStore{}, nil)

		ref := carouselRef(metadomain.ChildAttachment{}, metadomain.ChildAttachment{})

		_, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.Error(t, err)
	})

	t.Run("Um único child attachment segue o ramo de imagem", func(t *testing.T) {
		api := &fakeCreativeAPI{
			imagesByHash: map[string]string{"h1": "https://cdn.example.com/solo.jpg"},
		}
		resolver := NewResolver(api, &fakeStore{}, nil)

		ref := carouselRef(metadomain.ChildAttachment{ImageHash: "h1"})
		ref.ImageHash = "h1"

		resolution, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.NoError(t, err)
		assert.Equal(t, domain.CreativeFormatImage, resolution.Format)
	})
}

func TestResolver_Resolve_Video(t *testing.T) {
	t.Run("Persiste o thumbnail de maior qualidade", func(t *testing.T) {
		api := &fakeCreativeAPI{
			videos: map[string]*metadomain.Video{
				"v1": {
					ID:     "v1",
					Source: "https://video.example.com/v1.mp4",
					Thumbnails: metadomain.ThumbnailList{Data: []metadomain.Thumbnail{
						{URI: "https://cdn.example.com/thumb_low.jpg"},
						{URI: "https://cdn.example.com/thumb_high.jpg"},
					}},
				},
			},
		}
		store := &fakeStore{}
		resolver := NewResolver(api, store, nil)

		ref := &metadomain.CreativeRef{ID: "cr-v", VideoID: "v1"}

		resolution, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.NoError(t, err)
		assert.Equal(t, domain.CreativeFormatVideo, resolution.Format)
		assert.Equal(t, "https://video.example.com/v1.mp4", resolution.VideoLocation)
		assert.Equal(t, domain.ThumbnailStateResolved, resolution.ThumbnailState)
		assert.Equal(t, []string{"https://cdn.example.com/thumb_high.jpg"}, store.saved)
	})

	t.Run("Vídeo sem thumbnails mantém o estado ausente", func(t *testing.T) {
		api := &fakeCreativeAPI{
			videos: map[string]*metadomain.Video{
				"v2": {ID: "v2", Source: "https://video.example.com/v2.mp4"},
			},
		}
		resolver := NewResolver(api, &fakeStore{}, nil)

		ref := &metadomain.CreativeRef{
			ID: "cr-v2",
			ObjectStorySpec: &metadomain.ObjectStorySpec{
				VideoData: &metadomain.VideoData{VideoID: "v2"},
			},
		}

		resolution, err := resolver.Resolve(context.Background(), "act_1", ref, "int-1")

		require.NoError(t, err)
		assert.Equal(t, domain.ThumbnailStateMissing, resolution.ThumbnailState)
		assert.Empty(t, resolution.ImageLocation)
	})

	t.Run("Erro ao buscar o vídeo é propagado", func(t *testing.T) {
		resolver := NewResolver(&fakeCreativeAPI{}, &fakeStore{}, nil)

		_, err := resolver.Resolve(context.Background(), "act_1", &metadomain.CreativeRef{ID: "cr-v3", VideoID: "v404"}, "int-1")

		require.Error(t, err)
	})
}

func TestResolver_Resolve_NilRef(t *testing.T) {
	resolver := NewResolver(&fakeCreativeAPI{}, &fakeStore{}, nil)

	_, err := resolver.Resolve(context.Background(), "act_1", nil, "int-1")

	require.Error(t, err)
}
