package calculator

import (
	"errors"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// ErrInvalidPeriod is returned when a lookback period is not positive.
var ErrInvalidPeriod = errors.New("period must be positive")

var errNoData = errors.New("no data")

// CalculateSMA computes the simple moving average of the trailing period values.
// With fewer than period values it averages what is available, which for a
// single value is that value.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(values) == 0 {
		return 0, errNoData
	}
	window := trailing(values, period)
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window)), nil
}

// CalculateEMA computes the exponential moving average seeded with the SMA of
// the first period values. With fewer than period values it returns the last
// value.
func CalculateEMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(values) == 0 {
		return 0, errNoData
	}
	e := newEMATracker(period)
	for _, v := range values {
		e.add(v)
	}
	return e.value, nil
}

// emaTracker folds values one at a time. After n values its value equals
// CalculateEMA over those n values.
type emaTracker struct {
	period int
	k      float64
	count  int
	sum    float64
	value  float64
}

func newEMATracker(period int) *emaTracker {
	return &emaTracker{period: period, k: 2.0 / float64(period+1)}
}

func (e *emaTracker) add(v float64) {
	e.count++
	switch {
	case e.count < e.period:
		e.sum += v
		e.value = v
	case e.count == e.period:
		e.sum += v
		e.value = e.sum / float64(e.period)
	default:
		e.value = v*e.k + e.value*(1-e.k)
	}
}

// ClassifyTrend compares price against the 20 and 50 period SMAs.
func ClassifyTrend(price, sma20, sma50 float64) model.MATrend {
	switch {
	case price > sma20 && sma20 > sma50:
		return model.Uptrend
	case price < sma20 && sma20 < sma50:
		return model.Downtrend
	default:
		return model.Sideways
	}
}

func trailing(values []float64, period int) []float64 {
	if len(values) <= period {
		return values
	}
	return values[len(values)-period:]
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
