package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/turnero/internal/api"
	"github.com/ougirez/turnero/internal/pkg/constants"
	"github.com/ougirez/turnero/internal/pkg/logger"
	"github.com/ougirez/turnero/internal/pkg/metrics"
	"github.com/ougirez/turnero/internal/pkg/upstream"
	"github.com/ougirez/turnero/internal/service/dashboard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
)

func initConfig() error {
	viper.SetDefault(constants.ViperListenAddr, ":8080")
	viper.SetDefault(constants.ViperUpstreamTimeout, 15*time.Second)
	viper.SetDefault(constants.ViperCORSOrigin, "http://localhost:3000")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}

func main() {
	ctx := context.Background()

	if err := initConfig(); err != nil {
		logger.Fatal(ctx, err)
	}

	baseURL := viper.GetString(constants.ViperUpstreamBaseURL)
	if baseURL == "" {
		logger.Fatal(ctx, "upstream_base_url is required")
	}

	client := upstream.NewClient(baseURL, viper.GetDuration(constants.ViperUpstreamTimeout))
	engineMetrics := metrics.NewEngineMetrics(prometheus.DefaultRegisterer)

	dashboardService := dashboard.NewDashboardService(client, engineMetrics)
	if err := dashboardService.LoadCatalog(ctx); err != nil {
		logger.Fatal(ctx, err)
	}

	apiService, err := api.NewAPIService(dashboardService)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go apiService.Serve(viper.GetString(constants.ViperListenAddr))
	logger.Infof(ctx, "listening on %s", viper.GetString(constants.ViperListenAddr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := apiService.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shutdown: %v", err)
	}
}
