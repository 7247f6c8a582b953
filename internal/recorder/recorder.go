package recorder

import (
	"time"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// SignalEvent records an alerting signal for one symbol.
type SignalEvent struct {
	Symbol string
	Kind   model.SignalKind
	Price  float64
	RSI    float64
	Reason string
}

// QuoteRow is one stored indicator snapshot.
type QuoteRow struct {
	Timestamp     time.Time
	Symbol        string
	Interval      string
	Price         float64
	ChangePercent float64
	RSI           float64
	MACDHistogram float64
	MACDTrend     string
	MATrend       string
	BandPosition  string
	StochK        float64
	ATR           float64
	Signal        string
}

// Recorder persists indicator history for later analysis.
type Recorder interface {
	RecordQuote(q *model.Quote) error
	RecordSignal(evt *SignalEvent) error
	LatestQuotes(limit int) ([]QuoteRow, error)
	Close() error
}
