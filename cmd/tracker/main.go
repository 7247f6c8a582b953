package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/collector"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/config"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/logging"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/metrics"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/notifier"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/recorder"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/scheduler"
)

func main() {
	boot := logging.New("info")
	if err := config.LoadDotEnv(".env"); err != nil {
		boot.Warn().Err(err).Msg("ignoring .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		boot.Fatal().Err(err).Msg("config validation")
	}

	log := logging.New(cfg.Log.Level)
	log.Info().Strs("watchlist", cfg.Watchlist).Msg("tw-stock-tracker starting")

	// Metrics
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	metricsSrv := metrics.Serve(cfg.Metrics.Addr, reg)
	log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics endpoint listening")

	// Init collector
	fetcher := collector.NewFileFetcher(cfg.DataSource.BarsDir)
	log.Info().Str("source", fetcher.Name()).Str("dir", cfg.DataSource.BarsDir).Msg("data source ready")
	cache := collector.NewCache[[]model.OHLCV](cfg.DataSource.CacheTTL, nil)
	col := collector.NewCollector(fetcher, cfg.DataSource.Period, cfg.DataSource.Interval, cache, m, log)
	if cfg.DataSource.Workers > 0 {
		col.Workers = cfg.DataSource.Workers
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)

	// Init recorder
	var rec recorder.Recorder
	if sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log); err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		rec = recorder.NewNoopRecorder()
	} else {
		rec = sr
	}
	defer rec.Close()

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, tn, rec, m, cfg.Watchlist, log)
	if err := sched.RegisterAll(cfg.Schedule.ReportCron, cfg.Schedule.ScanCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, sending report now")
		go sched.RunReportNow()
	}

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("metrics server shutdown")
	}
	log.Info().Msg("tw-stock-tracker stopped")
}
