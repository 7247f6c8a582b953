package collector

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/metrics"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

func newTestCollector(f Fetcher, cache *Cache[[]model.OHLCV]) (*Collector, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	return NewCollector(f, "1y", IntervalDaily, cache, m, zerolog.Nop()), m
}

func risingBars(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		c := 500 + float64(i)
		bars[i] = model.OHLCV{
			Time: mockStart.AddDate(0, 0, i), Open: c, High: c + 2, Low: c - 2, Close: c,
		}
	}
	return bars
}

func TestCollect_Quote(t *testing.T) {
	f := &MockFetcher{Bars: map[string][]model.OHLCV{"2330.TW": risingBars(60)}}
	c, m := newTestCollector(f, nil)

	q, err := c.Collect(context.Background(), "2330")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Symbol != "2330.TW" || q.Bars != 60 {
		t.Errorf("symbol/bars: got %s/%d", q.Symbol, q.Bars)
	}
	if q.Bundle == nil || q.Bundle.Price != 559 {
		t.Fatalf("unexpected bundle: %+v", q.Bundle)
	}
	if q.Signal == nil || q.Signal.Kind != model.SignalOverbought {
		t.Errorf("expected overbought signal for a steady climb, got %+v", q.Signal)
	}
	if q.High52w != 561 || q.Low52w != 498 {
		t.Errorf("52w range: got %v/%v", q.High52w, q.Low52w)
	}
	if q.Position52w <= 0.9 || q.Position52w > 1 {
		t.Errorf("expected position near the top, got %v", q.Position52w)
	}
	if got := testutil.ToFloat64(m.BundlesTotal); got != 1 {
		t.Errorf("bundles_total = %v, want 1", got)
	}
}

func TestCollect_NoData(t *testing.T) {
	f := &MockFetcher{Bars: map[string][]model.OHLCV{"0050.TW": {}}}
	c, m := newTestCollector(f, nil)

	_, err := c.Collect(context.Background(), "0050")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
	if got := testutil.ToFloat64(m.FetchErrors.WithLabelValues("0050.TW")); got != 1 {
		t.Errorf("fetch_errors = %v, want 1", got)
	}
}

func TestCollect_UsesCache(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	cache := NewCache[[]model.OHLCV](time.Minute, func() time.Time { return now })
	f := &MockFetcher{Price: 600}
	c, m := newTestCollector(f, cache)

	for i := 0; i < 3; i++ {
		if _, err := c.Collect(context.Background(), "2317"); err != nil {
			t.Fatal(err)
		}
	}
	if f.Calls() != 1 {
		t.Errorf("expected 1 fetch, got %d", f.Calls())
	}
	if hits := testutil.ToFloat64(m.CacheHits); hits != 2 {
		t.Errorf("cache hits = %v, want 2", hits)
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.Collect(context.Background(), "2317"); err != nil {
		t.Fatal(err)
	}
	if f.Calls() != 2 {
		t.Errorf("expected refetch after expiry, got %d calls", f.Calls())
	}
}

func TestCollectAll_OrderAndErrors(t *testing.T) {
	f := &MockFetcher{
		Price: 100,
		Bars:  map[string][]model.OHLCV{"9999.TW": nil},
	}
	c, _ := newTestCollector(f, nil)
	c.Workers = 2

	symbols := []string{"2330", "9999", "2317", "TAIEX", "2454"}
	quotes, err := c.CollectAll(context.Background(), symbols)
	if err == nil || !strings.Contains(err.Error(), "9999.TW") {
		t.Errorf("expected joined error naming 9999.TW, got %v", err)
	}
	want := []string{"2330.TW", "2317.TW", "^TWII", "2454.TW"}
	if len(quotes) != len(want) {
		t.Fatalf("expected %d quotes, got %d", len(want), len(quotes))
	}
	for i, q := range quotes {
		if q.Symbol != want[i] {
			t.Errorf("quote %d: got %s, want %s", i, q.Symbol, want[i])
		}
	}
}

func TestCollectAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := newTestCollector(&MockFetcher{Price: 100}, nil)

	quotes, err := c.CollectAll(ctx, []string{"2330", "2317"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(quotes) != 0 {
		t.Errorf("expected no quotes, got %d", len(quotes))
	}
}

func TestCollect_FetcherError(t *testing.T) {
	boom := errors.New("disk unavailable")
	c, _ := newTestCollector(&MockFetcher{Err: boom}, nil)
	if _, err := c.Collect(context.Background(), "2330"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped fetcher error, got %v", err)
	}
}
