// Package narrative renders canned commentary for an indicator bundle.
//
// The text is picked from fixed templates by hashing a caller-supplied seed,
// so the same bundle and seed always produce the same narrative. Nothing
// here feeds back into the numbers.
package narrative

import (
	"fmt"
	"hash/fnv"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/strategy"
)

var summaryTemplates = []string{
	"%s closed at %.2f, %+.2f (%+.2f%%) on the session.",
	"Last print for %s was %.2f, a move of %+.2f (%+.2f%%).",
	"%s settled at %.2f after a %+.2f (%+.2f%%) change.",
}

var momentumTemplates = map[model.SignalKind][]string{
	model.SignalOverbought: {
		"RSI at %.2f is stretched; momentum buyers are running out of room.",
		"With RSI at %.2f the move looks extended and a pullback would not surprise.",
	},
	model.SignalOversold: {
		"RSI at %.2f sits in oversold territory; sellers may be exhausted.",
		"RSI has sunk to %.2f, a level where rebounds often start.",
	},
	model.SignalBullish: {
		"RSI at %.2f is balanced while MACD leans positive.",
		"Momentum is constructive: RSI %.2f with the MACD histogram above zero.",
	},
	model.SignalBearish: {
		"RSI at %.2f is balanced but MACD has not turned up.",
		"Momentum is soft: RSI %.2f and the MACD histogram at or below zero.",
	},
}

var volatilityTemplates = map[model.BandPosition][]string{
	model.AboveUpper: {
		"Price is trading above the upper band (%.2f); ATR is %.2f.",
		"A close over the upper Bollinger Band at %.2f flags a breakout, ATR %.2f.",
	},
	model.BelowLower: {
		"Price has slipped under the lower band (%.2f); ATR is %.2f.",
		"A close below the lower Bollinger Band at %.2f shows heavy selling, ATR %.2f.",
	},
	model.InsideBands: {
		"Price holds inside the bands around %.2f; ATR is %.2f.",
		"Bollinger Bands centred on %.2f contain the price, ATR %.2f.",
	},
}

var outlookTemplates = map[model.MATrend][]string{
	model.Uptrend: {
		"Moving averages are stacked upward (SMA20 %.2f over SMA50 %.2f).",
		"The trend is up: price leads SMA20 %.2f, which leads SMA50 %.2f.",
	},
	model.Downtrend: {
		"Moving averages point lower (SMA20 %.2f under SMA50 %.2f).",
		"The trend is down: price trails SMA20 %.2f, which trails SMA50 %.2f.",
	},
	model.Sideways: {
		"Moving averages are mixed (SMA20 %.2f, SMA50 %.2f); no clear trend.",
		"No trend confirmation yet with SMA20 at %.2f and SMA50 at %.2f.",
	},
}

// Generate renders the narrative for b. symbol only appears in the text;
// seed selects the templates. A nil bundle yields an empty Narrative.
func Generate(b *model.IndicatorBundle, symbol, seed string) model.Narrative {
	if b == nil {
		return model.Narrative{}
	}
	h := hashSeed(seed)
	sig := strategy.Evaluate(b)

	var n model.Narrative
	n.Summary = fmt.Sprintf(pick(summaryTemplates, h, 0), symbol, b.Price, b.Change, b.ChangePercent)
	n.Momentum = fmt.Sprintf(pick(momentumTemplates[sig.Kind], h, 1), b.RSI)
	bb := b.BollingerBands
	switch bb.Position {
	case model.AboveUpper:
		n.Volatility = fmt.Sprintf(pick(volatilityTemplates[bb.Position], h, 2), bb.Upper, b.ATR)
	case model.BelowLower:
		n.Volatility = fmt.Sprintf(pick(volatilityTemplates[bb.Position], h, 2), bb.Lower, b.ATR)
	default:
		n.Volatility = fmt.Sprintf(pick(volatilityTemplates[model.InsideBands], h, 2), bb.Middle, b.ATR)
	}
	ma := b.MovingAverages
	outlook, ok := outlookTemplates[ma.Trend]
	if !ok {
		outlook = outlookTemplates[model.Sideways]
	}
	n.Outlook = fmt.Sprintf(pick(outlook, h, 3), ma.SMA20, ma.SMA50)
	return n
}

func hashSeed(seed string) uint64 {
	f := fnv.New64a()
	f.Write([]byte(seed))
	return f.Sum64()
}

// pick chooses a template for section using a different slice of the hash
// per section.
func pick(templates []string, h uint64, section uint) string {
	return templates[(h>>(section*8))%uint64(len(templates))]
}
