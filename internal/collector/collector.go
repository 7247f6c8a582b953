// Package collector loads bars for the watchlist and runs the indicator
// engine over them.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/calculator"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/metrics"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/strategy"
)

var (
	// ErrNoData means the source has no bars for the symbol.
	ErrNoData = errors.New("no data available")
	// ErrUnknownInterval is returned for unsupported sampling intervals.
	ErrUnknownInterval = errors.New("unknown interval")
)

// rangeLookback is the number of bars spanning 52 weeks per interval.
var rangeLookback = map[string]int{
	IntervalDaily:   calculator.TradingDays52w,
	IntervalWeekly:  52,
	IntervalMonthly: 12,
}

// Collector orchestrates bar loading and indicator computation.
type Collector struct {
	Fetcher  Fetcher
	Period   string
	Interval string
	Workers  int

	cache   *Cache[[]model.OHLCV]
	metrics *metrics.Metrics
	log     zerolog.Logger
	now     Clock
}

// NewCollector creates a Collector. cache may be nil to disable caching.
func NewCollector(fetcher Fetcher, period, interval string, cache *Cache[[]model.OHLCV], m *metrics.Metrics, log zerolog.Logger) *Collector {
	return &Collector{
		Fetcher:  fetcher,
		Period:   period,
		Interval: interval,
		Workers:  4,
		cache:    cache,
		metrics:  m,
		log:      log.With().Str("component", "collector").Logger(),
		now:      time.Now,
	}
}

// Cache returns the bar cache, or nil.
func (c *Collector) Cache() *Cache[[]model.OHLCV] { return c.cache }

// Collect loads bars for symbol and computes its quote.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.Quote, error) {
	sym := NormalizeSymbol(symbol)
	bars, err := c.bars(ctx, sym)
	if err != nil {
		c.metrics.FetchErrors.WithLabelValues(sym).Inc()
		return nil, fmt.Errorf("fetch %s: %w", sym, err)
	}

	start := time.Now()
	bundle := calculator.Compute(bars)
	c.metrics.ComputeDur.Observe(time.Since(start).Seconds())
	if bundle == nil {
		return nil, fmt.Errorf("%s: %w", sym, ErrNoData)
	}
	c.metrics.BundlesTotal.Inc()

	q := &model.Quote{
		Symbol:    sym,
		Interval:  c.Interval,
		Period:    c.Period,
		Bars:      len(bars),
		Bundle:    bundle,
		Signal:    strategy.Evaluate(bundle),
		FetchedAt: c.now(),
	}
	c.metrics.SignalsTotal.WithLabelValues(string(q.Signal.Kind)).Inc()

	lookback, ok := rangeLookback[c.Interval]
	if !ok {
		lookback = calculator.TradingDays52w
	}
	if h, l, err := calculator.CalculateRange(bars, lookback); err != nil {
		c.log.Warn().Err(err).Str("symbol", sym).Msg("52-week range calculation failed")
		q.High52w, q.Low52w = bundle.Price, bundle.Price
	} else {
		q.High52w, q.Low52w = h, l
	}
	if pos, err := calculator.CalculateRangePosition(bundle.Price, q.High52w, q.Low52w); err != nil {
		c.log.Warn().Err(err).Str("symbol", sym).Msg("52-week position calculation failed")
		q.Position52w = 0.5
	} else {
		q.Position52w = pos
	}

	c.log.Debug().
		Str("symbol", sym).
		Int("bars", q.Bars).
		Float64("price", bundle.Price).
		Float64("rsi", bundle.RSI).
		Str("signal", string(q.Signal.Kind)).
		Msg("quote collected")
	return q, nil
}

// CollectAll collects every symbol with at most Workers in flight. Quotes
// come back in watchlist order; failed symbols are skipped and their errors
// joined.
func (c *Collector) CollectAll(ctx context.Context, symbols []string) ([]*model.Quote, error) {
	workers := c.Workers
	if workers <= 0 {
		workers = 1
	}
	results := make([]*model.Quote, len(symbols))
	errs := make([]error, len(symbols))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			defer func() { <-sem }()
			results[i], errs[i] = c.Collect(ctx, sym)
		}(i, sym)
	}
	wg.Wait()

	quotes := make([]*model.Quote, 0, len(symbols))
	for _, q := range results {
		if q != nil {
			quotes = append(quotes, q)
		}
	}
	return quotes, errors.Join(errs...)
}

func (c *Collector) bars(ctx context.Context, sym string) ([]model.OHLCV, error) {
	key := CacheKey(sym, c.Period, c.Interval)
	if c.cache != nil {
		if bars, ok := c.cache.Get(key); ok {
			c.metrics.CacheHits.Inc()
			return bars, nil
		}
		c.metrics.CacheMisses.Inc()
	}
	bars, err := c.Fetcher.FetchBars(ctx, sym, c.Period, c.Interval)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	if c.cache != nil {
		c.cache.Set(key, bars)
	}
	return bars, nil
}
