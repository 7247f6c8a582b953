package calculator

import "github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"

const (
	stochOverbought = 80.0
	stochOversold   = 20.0
	// flatRangeK is %K when the high/low range of the window is zero.
	flatRangeK = 50.0
)

// CalculateStochastic computes %K over the trailing period bars and %D as the
// mean of the last dPeriod %K values, fewer when history is shorter.
func CalculateStochastic(bars []model.OHLCV, period, dPeriod int) (model.Stochastic, error) {
	if period <= 0 || dPeriod <= 0 {
		return model.Stochastic{}, ErrInvalidPeriod
	}
	if len(bars) == 0 {
		return model.Stochastic{}, errNoData
	}

	n := len(bars)
	var k, sumK float64
	count := 0
	for end := n - 1; end >= 0 && count < dPeriod; end-- {
		v := stochK(bars, end, period)
		if end == n-1 {
			k = v
		}
		sumK += v
		count++
	}

	st := model.Stochastic{K: k, D: sumK / float64(count)}
	switch {
	case k > stochOverbought:
		st.Status = model.Overbought
	case k < stochOversold:
		st.Status = model.Oversold
	default:
		st.Status = model.StochNeutral
	}
	return st, nil
}

// stochK computes %K for the window of up to period bars ending at index end.
func stochK(bars []model.OHLCV, end, period int) float64 {
	start := end - period + 1
	if start < 0 {
		start = 0
	}
	highest, lowest := bars[start].High, bars[start].Low
	for i := start + 1; i <= end; i++ {
		if bars[i].High > highest {
			highest = bars[i].High
		}
		if bars[i].Low < lowest {
			lowest = bars[i].Low
		}
	}
	if highest == lowest {
		return flatRangeK
	}
	return clamp((bars[end].Close-lowest)/(highest-lowest)*100, 0, 100)
}
