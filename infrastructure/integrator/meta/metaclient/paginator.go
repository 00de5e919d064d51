package metaclient

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/compliance-manager-api/infrastructure/integrator/meta/domain"
)

// ProgressFunc é chamada após cada página com o total acumulado de itens,
// para que o orquestrador exiba "N buscados até agora" sem bloquear.
type ProgressFunc func(total int)

type pageFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Paginator segue o ponteiro paging.next do Fetcher até esgotar as
// páginas, dormindo entre páginas para respeitar a quota por hora da
// plataforma.
type Paginator struct {
	fetcher   pageFetcher
	pageDelay time.Duration
	sleep     SleepFunc
}

func NewPaginator(fetcher pageFetcher, pageDelay time.Duration) *Paginator {
	return &Paginator{
		fetcher:   fetcher,
		pageDelay: pageDelay,
		sleep:     sleepWithContext,
	}
}

// WithSleep substitui a função de espera. Usada em testes.
func (p *Paginator) WithSleep(sleep SleepFunc) *Paginator {
	p.sleep = sleep
	return p
}

// FetchAllPages acumula os itens de todas as páginas a partir da URL
// inicial. Uma primeira página vazia retorna uma fatia vazia, não erro.
// Não dorme após a última página.
func (p *Paginator) FetchAllPages(ctx context.Context, firstURL string, onProgress ProgressFunc) ([]json.RawMessage, error) {
	items := make([]json.RawMessage, 0)
	nextURL := firstURL
	pages := 0

	for nextURL != "" {
		body, err := p.fetcher.Fetch(ctx, nextURL)
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao buscar página %d", pages+1)
		}

		var page metadomain.Page
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, errors.Wrap(err, "erro ao decodificar página da API")
		}

		items = append(items, page.Data...)
		pages++

		if onProgress != nil {
			onProgress(len(items))
		}

		nextURL = page.Paging.Next
		if nextURL == "" {
			break
		}

		if err := p.sleep(ctx, p.pageDelay); err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"pages": pages,
		"items": len(items),
	}).Debug("Paginação concluída")

	return items, nil
}
