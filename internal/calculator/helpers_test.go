package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

var baseTime = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.10f, want %.10f (diff=%.3g)", label, got, want, math.Abs(got-want))
	}
}

// barsFromCloses builds daily bars with high=close+spread and low=close-spread.
func barsFromCloses(closes []float64, spread float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:  baseTime.AddDate(0, 0, i),
			Open:  c,
			High:  c + spread,
			Low:   c - spread,
			Close: c,
		}
	}
	return bars
}

func linearCloses(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func flatCloses(price float64, n int) []float64 {
	return linearCloses(price, 0, n)
}

// randomWalk returns a deterministic pseudo-random OHLC series with positive prices.
func randomWalk(seed uint32, n int) []model.OHLCV {
	state := seed
	next := func() float64 {
		state = state*1664525 + 1013904223
		return float64(state>>8) / float64(1<<24)
	}
	bars := make([]model.OHLCV, n)
	price := 100.0
	for i := range bars {
		open := price
		price *= 1 + (next()-0.5)*0.06
		hi := math.Max(open, price) * (1 + next()*0.01)
		lo := math.Min(open, price) * (1 - next()*0.01)
		bars[i] = model.OHLCV{
			Time:  baseTime.AddDate(0, 0, i),
			Open:  open,
			High:  hi,
			Low:   lo,
			Close: price,
		}
	}
	return bars
}
