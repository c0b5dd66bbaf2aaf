package model

// SignalKind identifies the rule that produced a signal.
type SignalKind string

const (
	SignalRSIOverbought SignalKind = "RSI_OVERBOUGHT"
	SignalRSIOversold   SignalKind = "RSI_OVERSOLD"
	SignalTrendBullish  SignalKind = "TREND_BULLISH"
	SignalTrendBearish  SignalKind = "TREND_BEARISH"
	SignalMACDBullCross SignalKind = "MACD_BULL_CROSS"
	SignalMACDBearCross SignalKind = "MACD_BEAR_CROSS"
	SignalVolumeSpike   SignalKind = "VOLUME_SPIKE"
)

// Severity classifies a signal for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Signal is one discrete alert emitted by the signal generator. Signals are
// produced fresh on every analysis run and never persisted.
type Signal struct {
	Kind     SignalKind `json:"kind"`
	Severity Severity   `json:"severity"`
	Message  string     `json:"message"`
	Value    Value      `json:"value"`
}
