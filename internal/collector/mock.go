package collector

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Count int
	Bars  map[string][]model.OHLCV // per normalized symbol, overrides generated bars
	Err   error

	calls atomic.Int64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(ctx context.Context, symbol, _, interval string) ([]model.OHLCV, error) {
	m.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.Bars[NormalizeSymbol(symbol)]; ok {
		return Resample(bars, interval)
	}
	count := m.Count
	if count == 0 {
		count = 120
	}
	return Resample(generateMockBars(m.Price, count), interval)
}

// Calls returns how many times FetchBars was invoked.
func (m *MockFetcher) Calls() int { return int(m.calls.Load()) }

var mockStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   mockStart.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
