package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/recorder"
)

// price renders v rounded half away from zero to 2 places.
func price(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func signedPct(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsPositive() {
		return "+" + d.StringFixed(2) + "%"
	}
	return d.StringFixed(2) + "%"
}

func signalIcon(k model.SignalKind) string {
	switch k {
	case model.SignalOverbought:
		return "🔥"
	case model.SignalOversold:
		return "🧊"
	case model.SignalBullish:
		return "📈"
	default:
		return "📉"
	}
}

// FormatQuote formats one symbol's indicators and narrative for Telegram.
func FormatQuote(q *model.Quote, n model.Narrative) string {
	if q == nil || q.Bundle == nil {
		return "No data available"
	}
	b := q.Bundle
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s %s | %s\n\n",
		html.EscapeString(q.Symbol), q.Period, q.Interval, q.FetchedAt.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("Price: %s (%s)\n", price(b.Price), signedPct(b.ChangePercent)))
	sb.WriteString(fmt.Sprintf("52w: %s – %s (%s%%)\n\n",
		price(q.Low52w), price(q.High52w), decimal.NewFromFloat(q.Position52w*100).StringFixed(0)))

	sb.WriteString("<b>Indicators</b>\n")
	sb.WriteString(fmt.Sprintf("  RSI(14): %s\n", price(b.RSI)))
	sb.WriteString(fmt.Sprintf("  MACD: %s / %s / %s (%s)\n",
		price(b.MACD.Value), price(b.MACD.Signal), price(b.MACD.Histogram), b.MACD.Trend))
	ma := b.MovingAverages
	sb.WriteString(fmt.Sprintf("  SMA20 %s | SMA50 %s | EMA12 %s (%s)\n",
		price(ma.SMA20), price(ma.SMA50), price(ma.EMA12), ma.Trend))
	bb := b.BollingerBands
	sb.WriteString(fmt.Sprintf("  BB: %s / %s / %s (%s)\n",
		price(bb.Upper), price(bb.Middle), price(bb.Lower), bb.Position))
	sb.WriteString(fmt.Sprintf("  Stoch: K %s D %s (%s)\n",
		price(b.Stochastic.K), price(b.Stochastic.D), b.Stochastic.Status))
	sb.WriteString(fmt.Sprintf("  ATR(14): %s\n", price(b.ATR)))

	if q.Signal != nil {
		sb.WriteString(fmt.Sprintf("\n%s <b>%s</b>: %s\n",
			signalIcon(q.Signal.Kind), q.Signal.Kind, html.EscapeString(q.Signal.Reason)))
	}

	if !n.Empty() {
		sb.WriteString("\n<i>")
		sb.WriteString(html.EscapeString(strings.Join([]string{n.Summary, n.Momentum, n.Volatility, n.Outlook}, " ")))
		sb.WriteString("</i>\n")
	}
	return sb.String()
}

// FormatWatchlist formats a one-line-per-symbol overview.
func FormatWatchlist(quotes []*model.Quote) string {
	var sb strings.Builder
	sb.WriteString("📋 <b>Watchlist</b>\n\n")
	if len(quotes) == 0 {
		sb.WriteString("No data available\n")
		return sb.String()
	}
	for _, q := range quotes {
		if q == nil || q.Bundle == nil {
			continue
		}
		kind := model.SignalKind("-")
		if q.Signal != nil {
			kind = q.Signal.Kind
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s (%s)  RSI %s  %s\n",
			signalIcon(kind), html.EscapeString(q.Symbol), price(q.Bundle.Price),
			signedPct(q.Bundle.ChangePercent), decimal.NewFromFloat(q.Bundle.RSI).StringFixed(0),
			q.Bundle.MovingAverages.Trend))
	}
	return sb.String()
}

// FormatSignalAlert formats an RSI extreme alert.
func FormatSignalAlert(q *model.Quote) string {
	if q == nil || q.Bundle == nil || q.Signal == nil {
		return ""
	}
	title := "Overbought warning"
	if q.Signal.Kind == model.SignalOversold {
		title = "Oversold opportunity"
	}
	return fmt.Sprintf("%s <b>%s</b> | %s\n\nPrice: %s\n%s\nStoch K: %s (%s)\n",
		signalIcon(q.Signal.Kind), title, html.EscapeString(q.Symbol),
		price(q.Bundle.Price), html.EscapeString(q.Signal.Reason),
		price(q.Bundle.Stochastic.K), q.Bundle.Stochastic.Status)
}

// FormatHistory formats recently recorded snapshots, newest first.
func FormatHistory(rows []recorder.QuoteRow) string {
	var sb strings.Builder
	sb.WriteString("🗂 <b>Recent snapshots</b>\n\n")
	if len(rows) == 0 {
		sb.WriteString("No snapshots recorded\n")
		return sb.String()
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s %s  %s  RSI %s  %s\n",
			r.Timestamp.Format("01-02 15:04"), html.EscapeString(r.Symbol),
			price(r.Price), decimal.NewFromFloat(r.RSI).StringFixed(0), r.Signal))
	}
	return sb.String()
}
