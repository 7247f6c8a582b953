package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "tracker.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func quote(symbol string, price float64, at time.Time) *model.Quote {
	return &model.Quote{
		Symbol:   symbol,
		Interval: "1d",
		Bars:     120,
		Bundle: &model.IndicatorBundle{
			Price:          price,
			ChangePercent:  1.5,
			RSI:            72,
			MACD:           model.MACD{Histogram: 0.4, Trend: model.MACDBullish},
			MovingAverages: model.MovingAverages{Trend: model.Uptrend},
			BollingerBands: model.BollingerBands{Position: model.InsideBands},
			Stochastic:     model.Stochastic{K: 85, Status: model.Overbought},
			ATR:            3.2,
		},
		Signal:    &model.Signal{Kind: model.SignalOverbought},
		FetchedAt: at,
	}
}

func TestSQLiteRecorder_QuoteRoundTrip(t *testing.T) {
	r := openTestRecorder(t)
	at := time.Date(2024, 6, 3, 13, 30, 0, 0, time.UTC)

	if err := r.RecordQuote(quote("2330.TW", 850, at)); err != nil {
		t.Fatal(err)
	}
	if err := r.RecordQuote(quote("2317.TW", 150, at.Add(time.Minute))); err != nil {
		t.Fatal(err)
	}

	rows, err := r.LatestQuotes(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Symbol != "2317.TW" {
		t.Errorf("expected newest first, got %s", rows[0].Symbol)
	}
	got := rows[1]
	if got.Price != 850 || got.RSI != 72 || got.MACDTrend != "Bullish" || got.MATrend != "Uptrend" ||
		got.BandPosition != "Inside Bands" || got.Signal != "OVERBOUGHT_WARNING" {
		t.Errorf("unexpected row: %+v", got)
	}
	if !got.Timestamp.Equal(at) {
		t.Errorf("timestamp: got %v, want %v", got.Timestamp, at)
	}

	rows, err = r.LatestQuotes(1)
	if err != nil || len(rows) != 1 {
		t.Errorf("limit not applied: %d rows, err %v", len(rows), err)
	}
}

func TestSQLiteRecorder_RejectsEmptyQuote(t *testing.T) {
	r := openTestRecorder(t)
	if err := r.RecordQuote(&model.Quote{Symbol: "2330.TW"}); err == nil {
		t.Error("expected error for quote without bundle")
	}
}

func TestSQLiteRecorder_RecordSignal(t *testing.T) {
	r := openTestRecorder(t)
	err := r.RecordSignal(&SignalEvent{
		Symbol: "2330.TW", Kind: model.SignalOversold, Price: 780, RSI: 24, Reason: "RSI 24.0 below 30",
	})
	if err != nil {
		t.Fatal(err)
	}
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM signal_events WHERE kind = ?`, "OVERSOLD_OPPORTUNITY").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 signal event, got %d", n)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	if err := r.RecordQuote(nil); err != nil {
		t.Error(err)
	}
	rows, err := r.LatestQuotes(5)
	if err != nil || rows != nil {
		t.Errorf("expected empty result, got %v %v", rows, err)
	}
}
