package strategy

import (
	"fmt"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// RSI thresholds for the overall signal.
const (
	RSIOverbought = 70.0
	RSIOversold   = 30.0
)

// rule yields a signal when it matches, nil otherwise.
type rule func(b *model.IndicatorBundle) *model.Signal

// rules are checked in order; the first match wins.
var rules = []rule{
	overboughtRule,
	oversoldRule,
	momentumRule,
}

func overboughtRule(b *model.IndicatorBundle) *model.Signal {
	if b.RSI <= RSIOverbought {
		return nil
	}
	return &model.Signal{
		Kind:   model.SignalOverbought,
		Reason: fmt.Sprintf("RSI %.1f above %.0f", b.RSI, RSIOverbought),
	}
}

func oversoldRule(b *model.IndicatorBundle) *model.Signal {
	if b.RSI >= RSIOversold {
		return nil
	}
	return &model.Signal{
		Kind:   model.SignalOversold,
		Reason: fmt.Sprintf("RSI %.1f below %.0f", b.RSI, RSIOversold),
	}
}

// momentumRule always matches.
func momentumRule(b *model.IndicatorBundle) *model.Signal {
	if b.MACD.Trend == model.MACDBullish {
		return &model.Signal{
			Kind:   model.SignalBullish,
			Reason: fmt.Sprintf("MACD histogram %+.4f", b.MACD.Histogram),
		}
	}
	return &model.Signal{
		Kind:   model.SignalBearish,
		Reason: fmt.Sprintf("MACD histogram %+.4f", b.MACD.Histogram),
	}
}
