package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Zigvert/go-shareit/internal/api"
	"github.com/Zigvert/go-shareit/internal/api/handler"
	"github.com/Zigvert/go-shareit/internal/api/middleware"
	"github.com/Zigvert/go-shareit/internal/application"
	"github.com/Zigvert/go-shareit/internal/config"
	"github.com/Zigvert/go-shareit/internal/infrastructure/postgres"
	redisinfra "github.com/Zigvert/go-shareit/internal/infrastructure/redis"
	"github.com/Zigvert/go-shareit/internal/pkg/clock"
	"github.com/Zigvert/go-shareit/internal/pkg/logger"
	"github.com/Zigvert/go-shareit/internal/pkg/metrics"
	"github.com/Zigvert/go-shareit/internal/worker"
)

func main() {
	cfg := config.Load()
	defer logger.Sync()

	m := metrics.Init()
	clk := clock.NewSystem()

	// PostgreSQL接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続エラー", zap.Error(err))
	}
	defer db.Close()

	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		if err := postgres.RunMigrations(db.DB, path); err != nil {
			logger.Fatal("マイグレーションエラー", zap.Error(err))
		}
	}

	// Redis接続（ロックとアイテムキャッシュに使用）
	// 未接続でも起動は継続し、ロックとキャッシュなしで動作する
	var (
		lockManager *redisinfra.LockManager
		itemCache   *redisinfra.ItemCache
	)
	redisClient, err := redisinfra.NewClient(&redisinfra.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("Redis接続エラー（ロック・キャッシュなしで起動）", zap.Error(err))
	} else {
		defer redisClient.Close()
		lockManager = redisinfra.NewLockManager(redisClient)
		itemCache = redisinfra.NewItemCache(redisClient)
	}

	// リポジトリ
	userRepo := postgres.NewUserRepository(db)
	itemRepo := postgres.NewItemRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	txManager := postgres.NewTxManager(db)

	// サービス
	userService := application.NewUserService(userRepo, clk)
	itemService := application.NewItemService(itemRepo, userRepo, bookingRepo, commentRepo, itemCache, clk)
	bookingService := application.NewBookingService(txManager, bookingRepo, itemRepo, userRepo, lockManager, clk, m)
	commentService := application.NewCommentService(commentRepo, userRepo, itemRepo, bookingRepo, clk)

	// バックグラウンドワーカー
	collector := worker.NewBookingMetricsCollector(bookingRepo, m, cfg.Worker.MetricsInterval)
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go collector.Start(workerCtx)

	// Echo設定
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e)
	e.Use(middleware.PrometheusMiddleware(m))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth())

	handler.RegisterRoutes(e,
		handler.NewUserHandler(userService),
		handler.NewItemHandler(itemService, commentService),
		handler.NewBookingHandler(bookingService),
		handler.NewHealthHandler(),
	)

	// サーバー起動
	go func() {
		if err := e.Start(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	cancelWorker()
	collector.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
