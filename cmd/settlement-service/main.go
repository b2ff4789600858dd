package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/engine"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/feedcache"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/feeds"
	httpapi "github.com/radieske/bet-settlement-engine/internal/settlement-service/http"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/notify"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/repo"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/resolver"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/runner"
	"github.com/radieske/bet-settlement-engine/internal/shared/cache"
	"github.com/radieske/bet-settlement-engine/internal/shared/config"
	"github.com/radieske/bet-settlement-engine/internal/shared/db"
	"github.com/radieske/bet-settlement-engine/internal/shared/kafka"
	"github.com/radieske/bet-settlement-engine/internal/shared/logger"
	"github.com/radieske/bet-settlement-engine/internal/shared/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// Postgres: apostas, auditoria e estatísticas
	pg, err := db.ConnectPostgres(ctx, cfg.PostgresDSN, cfg.Settlement.Workers*2)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()
	store := repo.NewPostgres(pg)

	// Redis: cache dos feeds e broadcast; sem REDIS_ADDR o cache fica em memória
	var (
		rdb       *redis.Client
		feedCache feedcache.Cache = feedcache.NewMemory()
	)
	if cfg.RedisAddr != "" {
		rdb, err = cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal("redis connect", zap.Error(err))
		}
		defer rdb.Close()
		feedCache = feedcache.NewRedis(rdb)
	} else {
		log.Warn("redis not configured, using in-memory feed cache")
	}

	// Feeds externos e resolvers
	feedClient := feeds.New(feeds.Config{
		ScoresBaseURL: cfg.Feeds.ScoresBaseURL,
		ScoresAPIKey:  cfg.Feeds.ScoresAPIKey,
		StatsBaseURL:  cfg.Feeds.StatsBaseURL,
		StatsAPIKey:   cfg.Feeds.StatsAPIKey,
		Timeout:       cfg.Feeds.Timeout,
		ScoresTTL:     cfg.Feeds.ScoresTTL,
		StatsTTL:      cfg.Feeds.StatsTTL,
		RatePerSec:    cfg.Feeds.RatePerSec,
		Burst:         cfg.Feeds.Burst,
	}, feedCache, log.Named("feeds"))
	scores := resolver.NewScoreResolver(feedClient, cfg.Feeds.DaysFrom, log.Named("scores"))
	stats := resolver.NewStatResolver(feedClient, log.Named("stats"))
	eng := engine.New(scores, stats, store, log.Named("engine"))

	// Notificações: Kafka (bet_settled) + Redis Pub/Sub
	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer writer.Close()
	notifiers := notify.Multi{notify.NewKafkaPublisher(writer, cfg.TopicBetSettled)}
	if rdb != nil {
		notifiers = append(notifiers, notify.NewRedisBroadcaster(rdb, cfg.RedisPubSubChannel))
	}

	// Métricas Prometheus
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	run := runner.New(store, eng, notifiers, runner.NewMetrics(reg), log.Named("runner"), runner.Config{
		Workers: cfg.Settlement.Workers,
	})

	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, reg, func(ctx context.Context) error {
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	})
	log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr))

	var apiSrv *http.Server
	if cfg.HTTPPort != "" {
		api := &httpapi.API{Runner: run, Log: log.Named("http")}
		apiSrv = &http.Server{
			Addr:              ":" + cfg.HTTPPort,
			Handler:           api.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("settlement api listening", zap.String("addr", apiSrv.Addr))
			if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("api server failed", zap.Error(err))
				cancel()
			}
		}()
	}

	if cfg.Settlement.Interval > 0 {
		loop(ctx, run, cfg.Settlement.Interval, log)
	} else {
		log.Info("interval trigger disabled, waiting for manual passes")
		<-ctx.Done()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if apiSrv != nil {
		_ = apiSrv.Shutdown(shutdownCtx)
	}
	_ = metricsSrv.Shutdown(shutdownCtx)
	log.Info("settlement-service stopped")
}

// loop executa uma liquidação imediata e depois a cada intervalo
func loop(ctx context.Context, run *runner.Runner, every time.Duration, log *zap.Logger) {
	log.Info("settlement loop started", zap.Duration("interval", every))

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		if _, err := run.RunPass(ctx); err != nil && ctx.Err() == nil {
			log.Error("settlement pass failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
