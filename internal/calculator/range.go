package calculator

import (
	"errors"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// TradingDays52w is the number of daily bars in a 52-week lookback.
const TradingDays52w = 252

// CalculateRange scans the most recent lookback bars and returns the highest
// high and the lowest low. Shorter series are scanned in full.
func CalculateRange(bars []model.OHLCV, lookback int) (high, low float64, err error) {
	if lookback <= 0 {
		return 0, 0, ErrInvalidPeriod
	}
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	n := len(bars)
	start := n - lookback
	if start < 0 {
		start = 0
	}
	high, low = bars[start].High, bars[start].Low
	for i := start + 1; i < n; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low, nil
}

// CalculateRangePosition returns where price sits within [low, high] (0.0~1.0).
func CalculateRangePosition(price, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	return clamp((price-low)/(high-low), 0, 1), nil
}
