package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/TITANForecast/frontend-sub000/internal/api"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/constants"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/logger"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/store"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/store/xpgx"
)

func main() {
	ctx := context.Background()

	initConfig(ctx)

	zl, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger.Init(zl)

	pool, err := xpgx.NewPool(ctx, viper.GetString(constants.ViperPostgresDSN))
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer pool.Close()

	svc, err := api.NewAPIService(store.NewStore(pool))
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go svc.Serve(viper.GetString(constants.ViperListenAddr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shutdown: %s", err.Error())
	}
}

func initConfig(ctx context.Context) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/titan")

	viper.SetEnvPrefix("titan")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(constants.ViperListenAddr, ":8080")
	viper.SetDefault(constants.ViperAllowedOrigin, "http://localhost:3000")
	viper.SetDefault(constants.ViperTokenTTLHours, 24)

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnf(ctx, "no config file found, using env and defaults: %s", err.Error())
	}
}
