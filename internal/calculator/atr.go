package calculator

import (
	"math"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// CalculateATR computes the Average True Range with Wilder smoothing.
// The first bar uses its own close as the previous close. With fewer than
// period bars the result is the latest bar's high-low range.
func CalculateATR(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	n := len(bars)
	if n == 0 {
		return 0, errNoData
	}
	if n < period {
		return bars[n-1].High - bars[n-1].Low, nil
	}

	var atr float64
	for i := 0; i < period; i++ {
		atr += trueRange(bars, i)
	}
	atr /= float64(period)

	p := float64(period)
	for i := period; i < n; i++ {
		atr = (atr*(p-1) + trueRange(bars, i)) / p
	}
	return atr, nil
}

func trueRange(bars []model.OHLCV, i int) float64 {
	b := bars[i]
	prevClose := b.Close
	if i > 0 {
		prevClose = bars[i-1].Close
	}
	return math.Max(b.High-b.Low, math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
}
