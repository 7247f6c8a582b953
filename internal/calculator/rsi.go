package calculator

// CalculateRSI computes RSI from the last period close-to-close changes using
// plain averages. Returns 50 when fewer than period+1 closes are available or
// when the window is flat.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(closes) < period+1 {
		return 50.0, nil // default when data insufficient
	}

	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		if avgGain > 0 {
			return 100.0, nil
		}
		return 50.0, nil
	}
	rs := avgGain / avgLoss
	return clamp(100.0-100.0/(1.0+rs), 0, 100), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
