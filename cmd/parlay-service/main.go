package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tri-kkk/football-prediction-sub000/internal/catalog"
	"github.com/tri-kkk/football-prediction-sub000/internal/ledger"
	phttp "github.com/tri-kkk/football-prediction-sub000/internal/parlay-service/http"
	"github.com/tri-kkk/football-prediction-sub000/internal/shared/cache"
	"github.com/tri-kkk/football-prediction-sub000/internal/shared/config"
	"github.com/tri-kkk/football-prediction-sub000/internal/shared/db"
	"github.com/tri-kkk/football-prediction-sub000/internal/shared/logger"
	"github.com/tri-kkk/football-prediction-sub000/internal/shared/metrics"
	"github.com/tri-kkk/football-prediction-sub000/internal/stats"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	// Redis
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	// deps
	catalogRepo := catalog.NewPostgres(pg)
	roundCache := catalog.NewCache(rdb)
	freeWindow := time.Duration(cfg.FreeHistoryDays) * 24 * time.Hour
	ledgerRepo := ledger.NewPostgres(pg, cfg.FreeRoundQuota, cfg.MinStake, freeWindow)
	statsRepo := stats.NewPostgres(pg)

	api := phttp.NewServer(log, ledgerRepo, catalogRepo, roundCache, statsRepo,
		cfg.CORSAllowOrigins, cfg.CatalogCacheTTL)

	// metrics/health sidecar
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}
	log.Info("parlay-service listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
