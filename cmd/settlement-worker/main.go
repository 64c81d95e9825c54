package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tri-kkk/football-prediction-sub000/internal/ledger"
	"github.com/tri-kkk/football-prediction-sub000/internal/shared/config"
	"github.com/tri-kkk/football-prediction-sub000/internal/shared/db"
	skafka "github.com/tri-kkk/football-prediction-sub000/internal/shared/kafka"
	"github.com/tri-kkk/football-prediction-sub000/internal/shared/logger"
	"github.com/tri-kkk/football-prediction-sub000/internal/shared/metrics"
	ev "github.com/tri-kkk/football-prediction-sub000/pkg/contracts/events"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	// the worker only transitions status; quota and stake knobs are unused here
	repo := ledger.NewPostgres(pg, cfg.FreeRoundQuota, cfg.MinStake, 0)

	reader := skafka.NewReader(cfg.KafkaBrokers, cfg.TopicSlipSettled, "settlement-worker")
	defer reader.Close()

	var dlqWriter *skafka.Writer
	if cfg.TopicSlipSettledDLQ != "" {
		dlqWriter = skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicSlipSettledDLQ)
		defer dlqWriter.Close()
	}

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	log.Info("settlement-worker started", zap.String("consume", cfg.TopicSlipSettled))

	ctx := context.Background()

	for {
		key, value, err := skafka.ReadNext(ctx, reader)
		if err != nil {
			log.Warn("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var settled ev.SlipSettled
		if jerr := json.Unmarshal(value, &settled); jerr != nil {
			log.Error("unmarshal slip_settled", zap.Error(jerr))
			toDLQ(ctx, dlqWriter, string(key), value)
			continue
		}

		if err := processOne(ctx, log, repo, &settled); err != nil {
			log.Error("settle slip", zap.String("slipId", settled.SlipID), zap.Error(err))
			toDLQ(ctx, dlqWriter, settled.SlipID, value)
		}
	}
}

// processOne applies one terminal status to a slip. The ledger makes replays
// no-ops, so a redelivered event is harmless.
func processOne(ctx context.Context, log *zap.Logger, repo *ledger.Postgres, settled *ev.SlipSettled) error {
	status := ledger.Status(settled.Status)
	if !status.Terminal() {
		return errors.New("non-terminal status " + settled.Status)
	}

	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(300*attempt) * time.Millisecond)
		}
		err = repo.Settle(ctx, settled.SlipID, status == ledger.StatusWon)
		if err == nil || errors.Is(err, ledger.ErrNotFound) {
			break
		}
	}
	if err != nil {
		return err
	}

	metrics.SlipsSettled.WithLabelValues(settled.Status).Inc()
	log.Info("slip settled",
		zap.String("slipId", settled.SlipID),
		zap.String("status", settled.Status),
	)
	return nil
}

func toDLQ(ctx context.Context, w *skafka.Writer, key string, payload []byte) {
	if w == nil {
		return
	}
	_ = skafka.WriteJSON(ctx, w, key, payload)
}
