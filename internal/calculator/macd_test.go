package calculator

import (
	"testing"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// naiveMACD recomputes both EMAs over every prefix to build the history.
func naiveMACD(closes []float64, fast, slow, signal int) model.MACD {
	emaF, _ := CalculateEMA(closes, fast)
	emaS, _ := CalculateEMA(closes, slow)
	line := emaF - emaS

	var history []float64
	for i := slow - 1; i < len(closes); i++ {
		f, _ := CalculateEMA(closes[:i+1], fast)
		s, _ := CalculateEMA(closes[:i+1], slow)
		history = append(history, f-s)
	}
	sig := line
	if len(history) > 0 {
		sig, _ = CalculateEMA(history, signal)
	}
	trend := model.MACDBearish
	if line-sig > 0 {
		trend = model.MACDBullish
	}
	return model.MACD{Value: line, Signal: sig, Histogram: line - sig, Trend: trend}
}

func TestCalculateMACD_MatchesPrefixRecomputation(t *testing.T) {
	for _, n := range []int{1, 10, 26, 27, 34, 35, 80, 250} {
		closes := extractCloses(randomWalk(uint32(n), n))
		got, err := CalculateMACD(closes, 12, 26, 9)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		want := naiveMACD(closes, 12, 26, 9)
		if got != want {
			t.Errorf("n=%d: got %+v, want %+v", n, got, want)
		}
	}
}

func TestCalculateMACD_LinearRampHasZeroHistogram(t *testing.T) {
	// On a linear ramp both EMAs settle at a constant lag, so the short
	// history (5 values, fewer than the signal period) ends at the MACD line
	// itself. A zero histogram is Bearish.
	m, err := CalculateMACD(linearCloses(100, 1, 30), 12, 26, 9)
	if err != nil {
		t.Fatal(err)
	}
	if m.Histogram != 0 {
		t.Errorf("expected zero histogram, got %v", m.Histogram)
	}
	if m.Trend != model.MACDBearish {
		t.Errorf("expected Bearish at zero histogram, got %s", m.Trend)
	}
	assertClose(t, "MACD line", m.Value, 7, 1e-9)
}

func TestCalculateMACD_AcceleratingSeriesIsBullish(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + 0.05*float64(i*i)
	}
	m, err := CalculateMACD(closes, 12, 26, 9)
	if err != nil {
		t.Fatal(err)
	}
	if m.Histogram <= 0 || m.Trend != model.MACDBullish {
		t.Errorf("expected Bullish with positive histogram, got %+v", m)
	}
}

func TestCalculateMACD_DeceleratingSeriesIsBearish(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 500 - 0.05*float64(i*i)
	}
	m, err := CalculateMACD(closes, 12, 26, 9)
	if err != nil {
		t.Fatal(err)
	}
	if m.Histogram >= 0 || m.Trend != model.MACDBearish {
		t.Errorf("expected Bearish with negative histogram, got %+v", m)
	}
}

func TestCalculateMACD_ShortSeries(t *testing.T) {
	m, err := CalculateMACD([]float64{100, 101, 102}, 12, 26, 9)
	if err != nil {
		t.Fatal(err)
	}
	if m.Value != 0 || m.Signal != 0 || m.Histogram != 0 {
		t.Errorf("expected all-zero MACD before any EMA is seeded, got %+v", m)
	}
}
