package calculator

import "github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"

// CalculateMACD computes the MACD line, the signal line and the histogram.
//
// The signal line is the EMA of the MACD history, where the history holds the
// fast/slow EMA difference evaluated at every index from slow-1 onward. Both
// EMAs are tracked incrementally, which yields the same values as recomputing
// them over each prefix. With no history yet the signal equals the MACD line.
func CalculateMACD(closes []float64, fast, slow, signal int) (model.MACD, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return model.MACD{}, ErrInvalidPeriod
	}
	if len(closes) == 0 {
		return model.MACD{}, errNoData
	}

	fastEMA := newEMATracker(fast)
	slowEMA := newEMATracker(slow)
	var history []float64
	if n := len(closes) - slow + 1; n > 0 {
		history = make([]float64, 0, n)
	}
	var line float64
	for i, c := range closes {
		fastEMA.add(c)
		slowEMA.add(c)
		line = fastEMA.value - slowEMA.value
		if i >= slow-1 {
			history = append(history, line)
		}
	}

	sig := line
	if len(history) > 0 {
		sig, _ = CalculateEMA(history, signal)
	}
	hist := line - sig

	// A zero histogram is Bearish.
	trend := model.MACDBearish
	if hist > 0 {
		trend = model.MACDBullish
	}
	return model.MACD{Value: line, Signal: sig, Histogram: hist, Trend: trend}, nil
}
