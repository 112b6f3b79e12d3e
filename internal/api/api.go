package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ougirez/turnero/internal/api/controller"
	"github.com/ougirez/turnero/internal/pkg/constants"
	"github.com/ougirez/turnero/internal/pkg/logger"
	"github.com/ougirez/turnero/internal/service/dashboard"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

type APIService struct {
	router           *echo.Echo
	dashboardService *dashboard.Service
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(dashboardService *dashboard.Service) (*APIService, error) {
	svc := &APIService{router: echo.New(), dashboardService: dashboardService}

	svc.router.HideBanner = true
	svc.router.Validator = NewValidator()
	svc.router.JSONSerializer = NewSerializer()
	svc.router.Use(middleware.Logger())
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{viper.GetString(constants.ViperCORSOrigin)},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	svc.router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := svc.router.Group("/api/v1")
	if viper.GetString(constants.ViperSecretKey) != "" {
		api.Use(svc.AdminMiddleware)
	}

	cntrl := controller.NewController(svc.dashboardService)

	api.GET("/catalog", cntrl.GetCatalog)
	api.GET("/templates", cntrl.GetTemplates)
	api.GET("/referrals", cntrl.GetReferrals)

	sessions := api.Group("/sessions")
	sessions.POST("", cntrl.CreateSession)
	sessions.PUT("/:id/selection", cntrl.UpdateSelection)
	sessions.POST("/:id/combinations", cntrl.RequestCombinations)
	sessions.POST("/:id/bulk", cntrl.BulkToggle)
	sessions.GET("/:id/counts", cntrl.GetCounts)

	return svc, nil
}
