package controller

import (
	"github.com/TITANForecast/frontend-sub000/internal/service/auth"
	"github.com/TITANForecast/frontend-sub000/internal/service/dashboard"
	"github.com/TITANForecast/frontend-sub000/internal/service/dealer"
	"github.com/TITANForecast/frontend-sub000/internal/service/ingest"
)

type Controller struct {
	authService      *auth.Service
	dealerService    *dealer.Service
	ingestService    *ingest.Service
	dashboardService *dashboard.Service
}

func NewController(
	authService *auth.Service,
	dealerService *dealer.Service,
	ingestService *ingest.Service,
	dashboardService *dashboard.Service,
) *Controller {
	return &Controller{
		authService:      authService,
		dealerService:    dealerService,
		ingestService:    ingestService,
		dashboardService: dashboardService,
	}
}
