package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/collector"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/metrics"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/narrative"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/notifier"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/recorder"
)

const (
	sendRetries      = 3
	cachePurgeCron   = "0 */10 * * * *"
	defaultHistory   = 10
	maxHistory       = 50
	alertDateLayout  = "2006-01-02"
	helpText         = "Available commands:\n• /quote &lt;symbol&gt;\n• /watchlist\n• /history [n]\n• /help"
	collectFailedMsg = "❌ watchlist collection failed: %v"
)

// Notifier delivers formatted messages.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  Notifier
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	Watchlist []string
	Ctx       context.Context

	log zerolog.Logger
	now func() time.Time

	mu      sync.Mutex
	alerted map[string]string // symbol|kind -> day last alerted
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, n Notifier, rec recorder.Recorder, m *metrics.Metrics, watchlist []string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  n,
		Recorder:  rec,
		Metrics:   m,
		Watchlist: watchlist,
		Ctx:       ctx,
		log:       log.With().Str("component", "scheduler").Logger(),
		now:       time.Now,
		alerted:   make(map[string]string),
	}
}

// RegisterAll registers the report, signal scan and cache purge tasks.
func (s *Scheduler) RegisterAll(reportCron, scanCron string) error {
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	if _, err := s.Cron.AddFunc(scanCron, s.signalScan); err != nil {
		return fmt.Errorf("register signal scan: %w", err)
	}
	if _, err := s.Cron.AddFunc(cachePurgeCron, s.cachePurge); err != nil {
		return fmt.Errorf("register cache purge: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Int("entries", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunReportNow executes the report task immediately (RUN_ON_START).
func (s *Scheduler) RunReportNow() {
	s.reportTask()
}

func (s *Scheduler) reportTask() {
	s.log.Info().Strs("watchlist", s.Watchlist).Msg("running report task")
	quotes, err := s.Collector.CollectAll(s.Ctx, s.Watchlist)
	if err != nil {
		s.log.Error().Err(err).Msg("report collect")
	}
	if len(quotes) == 0 {
		s.trySend(fmt.Sprintf(collectFailedMsg, err))
		return
	}
	for _, q := range quotes {
		if err := s.Recorder.RecordQuote(q); err != nil {
			s.log.Error().Err(err).Str("symbol", q.Symbol).Msg("record quote")
		}
	}
	if s.trySend(notifier.FormatWatchlist(quotes)) {
		s.Metrics.ReportsSent.Inc()
	}
}

func (s *Scheduler) signalScan() {
	s.log.Info().Msg("running signal scan")
	quotes, err := s.Collector.CollectAll(s.Ctx, s.Watchlist)
	if err != nil {
		s.log.Error().Err(err).Msg("scan collect")
	}
	day := s.now().Format(alertDateLayout)
	for _, q := range quotes {
		if !q.Signal.Alerting() || !s.markAlerted(q.Symbol, q.Signal.Kind, day) {
			continue
		}
		if err := s.Recorder.RecordSignal(&recorder.SignalEvent{
			Symbol: q.Symbol,
			Kind:   q.Signal.Kind,
			Price:  q.Bundle.Price,
			RSI:    q.Bundle.RSI,
			Reason: q.Signal.Reason,
		}); err != nil {
			s.log.Error().Err(err).Str("symbol", q.Symbol).Msg("record signal")
		}
		s.log.Info().
			Str("symbol", q.Symbol).
			Str("kind", string(q.Signal.Kind)).
			Float64("rsi", q.Bundle.RSI).
			Msg("signal alert")
		s.trySend(notifier.FormatSignalAlert(q))
	}
}

// markAlerted reports whether symbol+kind has not been alerted on day yet,
// and marks it. Entries from earlier days are dropped.
func (s *Scheduler) markAlerted(symbol string, kind model.SignalKind, day string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, d := range s.alerted {
		if d != day {
			delete(s.alerted, k)
		}
	}
	key := symbol + "|" + string(kind)
	if s.alerted[key] == day {
		return false
	}
	s.alerted[key] = day
	return true
}

func (s *Scheduler) cachePurge() {
	cache := s.Collector.Cache()
	if cache == nil {
		return
	}
	if n := cache.Purge(); n > 0 {
		s.log.Debug().Int("purged", n).Msg("bar cache purged")
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	switch strings.ToLower(fields[0]) {
	case "/quote":
		if len(fields) < 2 {
			return "Usage: /quote &lt;symbol&gt;"
		}
		q, err := s.Collector.Collect(ctx, fields[1])
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", fields[1]).Msg("quote command")
			return fmt.Sprintf("❌ %s: no data available", collector.NormalizeSymbol(fields[1]))
		}
		n := narrative.Generate(q.Bundle, q.Symbol, q.FetchedAt.Format(alertDateLayout))
		return notifier.FormatQuote(q, n)
	case "/watchlist":
		quotes, err := s.Collector.CollectAll(ctx, s.Watchlist)
		if err != nil {
			s.log.Warn().Err(err).Msg("watchlist command")
		}
		return notifier.FormatWatchlist(quotes)
	case "/history":
		limit := defaultHistory
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil && n > 0 {
				limit = min(n, maxHistory)
			}
		}
		rows, err := s.Recorder.LatestQuotes(limit)
		if err != nil {
			s.log.Error().Err(err).Msg("history command")
			return "❌ history unavailable"
		}
		return notifier.FormatHistory(rows)
	default:
		return helpText
	}
}

func (s *Scheduler) trySend(text string) bool {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		s.log.Error().Err(err).Msg("send notification")
		return false
	}
	return true
}
