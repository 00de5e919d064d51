package handler

import (
	"net/http"

	"github.com/vfg2006/compliance-manager-api/infrastructure/repository"
	"github.com/vfg2006/compliance-manager-api/internal/api/handler/router"
	"github.com/vfg2006/compliance-manager-api/internal/scheduler"
	"github.com/vfg2006/compliance-manager-api/internal/usecases/complying"
	"github.com/vfg2006/compliance-manager-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Syncs(service *scheduler.CampaignSyncService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/syncs/:integrationID",
			Method:      http.MethodPost,
			Handler:     TriggerSync(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/syncs/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Campaigns(campaignRepo repository.CampaignRepository, adSetRepo repository.AdSetRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     CampaignList(campaignRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/ad-sets",
			Method:      http.MethodGet,
			Handler:     AdSetList(adSetRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Creatives(creativeRepo repository.CreativeRepository, analyzer complying.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/creatives",
			Method:      http.MethodGet,
			Handler:     CreativeList(creativeRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/creatives/:id/analyze",
			Method:      http.MethodPost,
			Handler:     AnalyzeCreative(analyzer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
	}
}
