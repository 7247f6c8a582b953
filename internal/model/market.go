package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote is the calling layer's view of one symbol after a collection run.
type Quote struct {
	Symbol      string
	Interval    string
	Period      string
	Bars        int
	Bundle      *IndicatorBundle
	Signal      *Signal
	High52w     float64
	Low52w      float64
	Position52w float64 // 0.0 ~ 1.0
	FetchedAt   time.Time
}
