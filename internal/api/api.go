package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/TITANForecast/frontend-sub000/internal/api/controller"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/constants"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/logger"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/store"
	"github.com/TITANForecast/frontend-sub000/internal/service/auth"
	"github.com/TITANForecast/frontend-sub000/internal/service/dashboard"
	"github.com/TITANForecast/frontend-sub000/internal/service/dealer"
	"github.com/TITANForecast/frontend-sub000/internal/service/ingest"
)

type APIService struct {
	router *echo.Echo
	store  store.Store
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(store store.Store) (*APIService, error) {
	svc := &APIService{router: echo.New(), store: store}

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.Use(middleware.Logger())
	svc.router.Use(RequestIDMiddleware)
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{viper.GetString(constants.ViperAllowedOrigin)},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	authService := auth.NewService(store)
	dealerService := dealer.NewService(store)
	ingestService := ingest.NewService(store)
	dashboardService := dashboard.NewService(store)

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(authService, dealerService, ingestService, dashboardService)

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", cntrl.SignupUser)
	authGroup.POST("/login", cntrl.LoginUser)
	authGroup.DELETE("/logout", cntrl.LogoutUser)

	dealers := api.Group("/dealers", svc.AdminMiddleware)
	dealers.POST("", cntrl.CreateDealer)
	dealers.GET("/list", cntrl.ListDealers)
	dealers.GET("/:id", cntrl.GetDealer)
	dealers.PUT("/:id/sync-config", cntrl.UpsertSyncConfig)
	dealers.GET("/:id/sync-config", cntrl.GetSyncConfig)
	dealers.GET("/:id/sync-logs", cntrl.ListSyncLogs)

	ingestGroup := api.Group("/ingest", svc.AuthMiddleware)
	ingestGroup.POST("/records", cntrl.IngestRecords)
	ingestGroup.POST("/run", cntrl.RunSync)

	dashboardGroup := api.Group("/dashboard", svc.AuthMiddleware)
	dashboardGroup.GET("", cntrl.GetDashboard)

	return svc, nil
}
