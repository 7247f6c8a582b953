package model

// SignalKind indicates which rule produced the overall signal.
type SignalKind string

const (
	SignalOverbought SignalKind = "OVERBOUGHT_WARNING"
	SignalOversold   SignalKind = "OVERSOLD_OPPORTUNITY"
	SignalBullish    SignalKind = "BULLISH_MOMENTUM"
	SignalBearish    SignalKind = "BEARISH_MOMENTUM"
)

// Signal is the overall classification consumed by the presentation layer.
type Signal struct {
	Kind   SignalKind
	Reason string
}

// Alerting reports whether the signal comes from an RSI extreme.
func (s *Signal) Alerting() bool {
	return s != nil && (s.Kind == SignalOverbought || s.Kind == SignalOversold)
}

// Narrative is the templated commentary rendered next to a bundle.
type Narrative struct {
	Summary    string
	Momentum   string
	Volatility string
	Outlook    string
}

// Empty reports whether no section was generated.
func (n Narrative) Empty() bool {
	return n.Summary == "" && n.Momentum == "" && n.Volatility == "" && n.Outlook == ""
}
