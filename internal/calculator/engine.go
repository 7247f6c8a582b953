// Package calculator implements the technical indicator engine.
//
// Every function here is pure: it reads the bars it is given, allocates its
// own scratch space and returns. Nothing is cached or logged, so calls on
// independent inputs may run concurrently.
package calculator

import (
	"errors"
	"fmt"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// Params holds the lookback periods used by Compute.
type Params struct {
	RSIPeriod    int
	MACDFast     int
	MACDSlow     int
	MACDSignal   int
	SMAShort     int
	SMALong      int
	EMAPeriod    int
	BollingerLen int
	BollingerK   float64
	StochPeriod  int
	StochDPeriod int
	ATRPeriod    int
}

// DefaultParams returns the standard dashboard settings.
func DefaultParams() Params {
	return Params{
		RSIPeriod:    14,
		MACDFast:     12,
		MACDSlow:     26,
		MACDSignal:   9,
		SMAShort:     20,
		SMALong:      50,
		EMAPeriod:    12,
		BollingerLen: 20,
		BollingerK:   2,
		StochPeriod:  14,
		StochDPeriod: 3,
		ATRPeriod:    14,
	}
}

// Validate checks that every period is positive.
func (p Params) Validate() error {
	periods := []struct {
		name  string
		value int
	}{
		{"rsi", p.RSIPeriod},
		{"macd_fast", p.MACDFast},
		{"macd_slow", p.MACDSlow},
		{"macd_signal", p.MACDSignal},
		{"sma_short", p.SMAShort},
		{"sma_long", p.SMALong},
		{"ema", p.EMAPeriod},
		{"bollinger", p.BollingerLen},
		{"stochastic", p.StochPeriod},
		{"stochastic_d", p.StochDPeriod},
		{"atr", p.ATRPeriod},
	}
	for _, pp := range periods {
		if pp.value <= 0 {
			return fmt.Errorf("%s: %w", pp.name, ErrInvalidPeriod)
		}
	}
	if p.BollingerK < 0 {
		return errors.New("bollinger k must not be negative")
	}
	return nil
}

// Compute returns the indicator bundle for bars using DefaultParams.
// Bars must be in ascending time order. It returns nil for an empty series.
func Compute(bars []model.OHLCV) *model.IndicatorBundle {
	b, _ := ComputeWithParams(bars, DefaultParams())
	return b
}

// ComputeWithParams is Compute with explicit periods. The error is non-nil
// only when p is invalid; an empty series yields (nil, nil).
func ComputeWithParams(bars []model.OHLCV, p Params) (*model.IndicatorBundle, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, nil
	}

	closes := extractCloses(bars)
	n := len(closes)
	b := &model.IndicatorBundle{Price: closes[n-1]}
	if n > 1 {
		prev := closes[n-2]
		b.Change = b.Price - prev
		if prev != 0 {
			b.ChangePercent = b.Change / prev * 100
		}
	}

	// Periods are validated and the series is non-empty, so none of the
	// calls below can fail.
	b.RSI, _ = CalculateRSI(closes, p.RSIPeriod)
	b.MACD, _ = CalculateMACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)

	ma := &b.MovingAverages
	ma.SMA20, _ = CalculateSMA(closes, p.SMAShort)
	ma.SMA50, _ = CalculateSMA(closes, p.SMALong)
	ma.EMA12, _ = CalculateEMA(closes, p.EMAPeriod)
	ma.Trend = ClassifyTrend(b.Price, ma.SMA20, ma.SMA50)

	b.BollingerBands, _ = CalculateBollinger(closes, p.BollingerLen, p.BollingerK)
	b.Stochastic, _ = CalculateStochastic(bars, p.StochPeriod, p.StochDPeriod)
	b.ATR, _ = CalculateATR(bars, p.ATRPeriod)
	return b, nil
}
