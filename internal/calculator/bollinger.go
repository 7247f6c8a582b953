package calculator

import (
	"math"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// CalculateBollinger computes bands at k population standard deviations
// around the SMA of the trailing period closes.
func CalculateBollinger(closes []float64, period int, k float64) (model.BollingerBands, error) {
	middle, err := CalculateSMA(closes, period)
	if err != nil {
		return model.BollingerBands{}, err
	}
	window := trailing(closes, period)
	var sq float64
	for _, c := range window {
		d := c - middle
		sq += d * d
	}
	stdDev := math.Sqrt(sq / float64(len(window)))

	bb := model.BollingerBands{
		Upper:  middle + k*stdDev,
		Middle: middle,
		Lower:  middle - k*stdDev,
	}
	last := closes[len(closes)-1]
	switch {
	case last > bb.Upper:
		bb.Position = model.AboveUpper
	case last < bb.Lower:
		bb.Position = model.BelowLower
	default:
		bb.Position = model.InsideBands
	}
	return bb, nil
}
