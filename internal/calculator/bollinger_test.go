package calculator

import (
	"math"
	"testing"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

func TestCalculateBollinger_Flat(t *testing.T) {
	bb, err := CalculateBollinger(flatCloses(100, 25), 20, 2)
	if err != nil {
		t.Fatal(err)
	}
	if bb.Upper != bb.Middle || bb.Middle != bb.Lower {
		t.Errorf("expected collapsed bands, got %+v", bb)
	}
	if bb.Position != model.InsideBands {
		t.Errorf("expected Inside Bands, got %s", bb.Position)
	}
}

func TestCalculateBollinger_LinearRamp(t *testing.T) {
	// Last 20 closes are 110..129: mean 119.5, population variance (20^2-1)/12.
	bb, err := CalculateBollinger(linearCloses(100, 1, 30), 20, 2)
	if err != nil {
		t.Fatal(err)
	}
	sd := math.Sqrt(399.0 / 12.0)
	assertClose(t, "middle", bb.Middle, 119.5, 1e-9)
	assertClose(t, "upper", bb.Upper, 119.5+2*sd, 1e-9)
	assertClose(t, "lower", bb.Lower, 119.5-2*sd, 1e-9)
	if bb.Position != model.InsideBands {
		t.Errorf("129 < %.4f, expected Inside Bands, got %s", bb.Upper, bb.Position)
	}
}

func TestCalculateBollinger_Breakouts(t *testing.T) {
	tests := []struct {
		name string
		last float64
		want model.BandPosition
	}{
		// middle 101, variance (19*1 + 19^2)/20 = 19, upper ~109.72
		{"above upper", 120, model.AboveUpper},
		{"below lower", 80, model.BelowLower},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closes := append(flatCloses(100, 19), tt.last)
			bb, err := CalculateBollinger(closes, 20, 2)
			if err != nil {
				t.Fatal(err)
			}
			if bb.Position != tt.want {
				t.Errorf("got %s, want %s (bands %+v)", bb.Position, tt.want, bb)
			}
		})
	}
}

func TestCalculateBollinger_ShortSeries(t *testing.T) {
	bb, err := CalculateBollinger([]float64{10, 20}, 20, 2)
	if err != nil {
		t.Fatal(err)
	}
	assertClose(t, "middle", bb.Middle, 15, 1e-12)
	assertClose(t, "upper", bb.Upper, 25, 1e-12)
	assertClose(t, "lower", bb.Lower, 5, 1e-12)
}
