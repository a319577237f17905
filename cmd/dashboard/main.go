package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"synth_dashboard/internal/app/service"
	"synth_dashboard/internal/infrastructure/configloader"
	"synth_dashboard/internal/infrastructure/network/client"
	"synth_dashboard/internal/infrastructure/pricefeed"
	"synth_dashboard/internal/infrastructure/restapi"
	"synth_dashboard/internal/pkg/logger"
	"synth_dashboard/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultConfigPath = "config/config.yml"

func main() {
	// Предварительный логгер для самой ранней загрузки конфига
	tempZapLogger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to initialize temporary zapLogger: %v\n", err)
		os.Exit(1)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := configloader.Load(configPath)
	if err != nil {
		tempZapLogger.Fatal("Не удалось загрузить конфигурацию", zap.String("файл", configPath), zap.Error(err))
	}

	var zapLogger *zap.Logger
	if cfg.Logging.Level == "debug" {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		tempZapLogger.Fatal("Не удалось инициализировать основной zapLogger", zap.Error(err))
	}
	_ = tempZapLogger.Sync()
	defer func() { _ = zapLogger.Sync() }()

	// Глобальный slog пишет в zap
	logger.InitZap(zapLogger, cfg.Logging.Level)
	logger.Info("Сервис дашборда запускается...", "config", configPath)

	metrics.MustRegisterMetrics(nil)

	netDef, err := cfg.NetworkDefinition()
	if err != nil {
		logger.Fatal("Не удалось определить сеть", "ошибка", err)
	}

	connectionTimeout := time.Duration(cfg.Performance.ConnectionTimeoutSeconds) * time.Second
	ethClient, err := client.Dial(netDef, connectionTimeout)
	if err != nil {
		logger.Fatal("Не удалось подключиться к RPC", "сеть", netDef.Name, "ошибка", err)
	}
	defer ethClient.Close()

	rpcCallTimeout := time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second
	contracts := client.ContractsFromConfig(cfg.Contracts)
	if cfg.Contracts.AddressResolver != "" {
		resolveCtx, resolveCancel := context.WithTimeout(context.Background(), connectionTimeout)
		var missing []string
		contracts, missing, err = client.ResolveContracts(resolveCtx, ethClient,
			common.HexToAddress(cfg.Contracts.AddressResolver), contracts, rpcCallTimeout)
		resolveCancel()
		if err != nil {
			logger.Error("Не удалось получить адреса контрактов из AddressResolver", "ошибка", err)
		}
		for _, name := range missing {
			logger.Warn("AddressResolver не знает контракт, связанные секции будут недоступны", "контракт", name)
		}
	}

	synthetixReader := client.NewSynthetixClient(
		ethClient,
		netDef,
		contracts,
		cfg.Synths,
		rpcCallTimeout,
	)
	logger.Info("Synthetix клиент инициализирован", "сеть", netDef.Name, "синтов", len(cfg.Synths))

	priceFeed := pricefeed.NewUniswapTickerClient(
		cfg.PriceFeed.BaseURL,
		cfg.PriceFeed.ExchangeAddress,
		time.Duration(cfg.PriceFeed.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)

	dashboardService := service.NewDashboardService(
		synthetixReader,
		priceFeed,
		logger.NewComponentLogger("dashboard"),
		cfg,
	)
	logger.Info("DashboardService успешно инициализирован.")

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	dashboardHandler := restapi.NewDashboardHandler(dashboardService, logger.NewSlogAdapter())
	ginRouter := restapi.SetupRouter(dashboardHandler, zapLogger.Named("http"))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      ginRouter,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("Запуск HTTP сервера", "адрес", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Не удалось запустить HTTP сервер", "ошибка", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("Получен сигнал завершения. Завершение работы HTTP сервера...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при Graceful Shutdown HTTP сервера", "ошибка", err)
	} else {
		logger.Info("HTTP сервер успешно остановлен.")
	}
}
