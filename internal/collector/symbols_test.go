package collector

import "testing"

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct{ in, want string }{
		{"2330", "2330.TW"},
		{" 0050 ", "0050.TW"},
		{"6488.two", "6488.TWO"},
		{"taiex", "^TWII"},
		{"TWII", "^TWII"},
		{"^TWII", "^TWII"},
		{"AAPL", "AAPL"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeSymbol(tt.in); got != tt.want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
