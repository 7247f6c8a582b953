package model

// MACDTrend is the momentum direction derived from the MACD histogram.
type MACDTrend string

const (
	MACDBullish MACDTrend = "Bullish"
	MACDBearish MACDTrend = "Bearish"
)

// MATrend is the alignment of price against the 20 and 50 period SMAs.
type MATrend string

const (
	Uptrend   MATrend = "Uptrend"
	Downtrend MATrend = "Downtrend"
	Sideways  MATrend = "Neutral"
)

// BandPosition locates the latest close relative to the Bollinger Bands.
type BandPosition string

const (
	AboveUpper  BandPosition = "Above Upper"
	BelowLower  BandPosition = "Below Lower"
	InsideBands BandPosition = "Inside Bands"
)

// StochStatus classifies %K.
type StochStatus string

const (
	Overbought   StochStatus = "Overbought"
	Oversold     StochStatus = "Oversold"
	StochNeutral StochStatus = "Neutral"
)

// MACD holds the MACD line, its signal line and the histogram.
type MACD struct {
	Value     float64   `json:"value"`
	Signal    float64   `json:"signal"`
	Histogram float64   `json:"histogram"`
	Trend     MACDTrend `json:"trend"`
}

// MovingAverages groups the moving averages shown on the dashboard.
type MovingAverages struct {
	SMA20 float64 `json:"sma20"`
	SMA50 float64 `json:"sma50"`
	EMA12 float64 `json:"ema12"`
	Trend MATrend `json:"trend"`
}

// BollingerBands holds the bands around the middle SMA.
type BollingerBands struct {
	Upper    float64      `json:"upper"`
	Middle   float64      `json:"middle"`
	Lower    float64      `json:"lower"`
	Position BandPosition `json:"position"`
}

// Stochastic holds %K, %D and the overbought/oversold status.
type Stochastic struct {
	K      float64     `json:"k"`
	D      float64     `json:"d"`
	Status StochStatus `json:"status"`
}

// IndicatorBundle is the full set of indicators computed from one series.
// Values are full precision; rounding is left to the consumer.
type IndicatorBundle struct {
	Price          float64        `json:"price"`
	Change         float64        `json:"change"`
	ChangePercent  float64        `json:"changePercent"`
	RSI            float64        `json:"rsi"`
	MACD           MACD           `json:"macd"`
	MovingAverages MovingAverages `json:"movingAverages"`
	BollingerBands BollingerBands `json:"bollingerBands"`
	Stochastic     Stochastic     `json:"stochastic"`
	ATR            float64        `json:"atr"`
}
