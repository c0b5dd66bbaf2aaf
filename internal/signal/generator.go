// Package signal derives discrete alerts from the last one or two rows of an
// analysis result table. Every rule is independent: an undefined input
// suppresses that one rule, never the whole evaluation, and multiple signals
// may co-occur.
package signal

import (
	"fmt"
	"sort"

	"StockLens/internal/analysis"
	"StockLens/internal/model"
)

// Evaluate inspects the freshest table rows against the configured thresholds
// and returns zero or more signals, in rule-priority order.
func Evaluate(t *analysis.ResultTable, series *model.Series, cfg analysis.Config) []model.Signal {
	if t == nil || series == nil || series.Len() == 0 {
		return nil
	}

	var signals []model.Signal
	signals = appendRSI(signals, t, cfg)
	signals = appendTrend(signals, t, cfg)
	signals = appendMACDCross(signals, t)
	signals = appendVolumeSpike(signals, t, series, cfg)
	return signals
}

func appendRSI(signals []model.Signal, t *analysis.ResultTable, cfg analysis.Config) []model.Signal {
	rsi := t.RSI.Last()
	if !rsi.Valid {
		return signals
	}
	switch {
	case rsi.F > cfg.RSI.Overbought:
		signals = append(signals, model.Signal{
			Kind:     model.SignalRSIOverbought,
			Severity: model.SeverityDanger,
			Message:  fmt.Sprintf("RSI Overbought: %.1f > %.0f", rsi.F, cfg.RSI.Overbought),
			Value:    rsi,
		})
	case rsi.F < cfg.RSI.Oversold:
		signals = append(signals, model.Signal{
			Kind:     model.SignalRSIOversold,
			Severity: model.SeveritySuccess,
			Message:  fmt.Sprintf("RSI Oversold: %.1f < %.0f", rsi.F, cfg.RSI.Oversold),
			Value:    rsi,
		})
	}
	return signals
}

// appendTrend compares the two shortest configured moving averages (20 vs 50
// with the default configuration). Both must be defined.
func appendTrend(signals []model.Signal, t *analysis.ResultTable, cfg analysis.Config) []model.Signal {
	if len(cfg.MA.Periods) < 2 {
		return signals
	}
	periods := append([]int(nil), cfg.MA.Periods...)
	sort.Ints(periods)
	fast := t.MA[periods[0]].Last()
	slow := t.MA[periods[1]].Last()
	if !fast.Valid || !slow.Valid {
		return signals
	}
	if fast.F > slow.F {
		signals = append(signals, model.Signal{
			Kind:     model.SignalTrendBullish,
			Severity: model.SeveritySuccess,
			Message:  fmt.Sprintf("Bullish trend: MA%d above MA%d", periods[0], periods[1]),
		})
	} else {
		signals = append(signals, model.Signal{
			Kind:     model.SignalTrendBearish,
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("Bearish trend: MA%d below MA%d", periods[0], periods[1]),
		})
	}
	return signals
}

// appendMACDCross fires only on a strict sign change between the previous and
// current bar, so it needs two defined rows of both macd and signal.
func appendMACDCross(signals []model.Signal, t *analysis.ResultTable) []model.Signal {
	macd, sig := t.MACD.Last(), t.MACDSignal.Last()
	prevMACD, prevSig := t.MACD.At(1), t.MACDSignal.At(1)
	if !macd.Valid || !sig.Valid || !prevMACD.Valid || !prevSig.Valid {
		return signals
	}
	switch {
	case prevMACD.F <= prevSig.F && macd.F > sig.F:
		signals = append(signals, model.Signal{
			Kind:     model.SignalMACDBullCross,
			Severity: model.SeveritySuccess,
			Message:  "Bullish MACD cross: MACD crossed above its signal line",
			Value:    macd,
		})
	case prevMACD.F >= prevSig.F && macd.F < sig.F:
		signals = append(signals, model.Signal{
			Kind:     model.SignalMACDBearCross,
			Severity: model.SeverityDanger,
			Message:  "Bearish MACD cross: MACD crossed below its signal line",
			Value:    macd,
		})
	}
	return signals
}

func appendVolumeSpike(signals []model.Signal, t *analysis.ResultTable, series *model.Series, cfg analysis.Config) []model.Signal {
	vma := t.VolumeMA.Last()
	if !vma.Valid || vma.F == 0 {
		return signals
	}
	volume := float64(series.Last().Volume)
	if volume > vma.F*cfg.Volume.SpikeRatio {
		ratio := volume / vma.F
		signals = append(signals, model.Signal{
			Kind:     model.SignalVolumeSpike,
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("High volume: %.1fx the %d-day average", ratio, cfg.Volume.MAPeriod),
			Value:    model.Some(ratio),
		})
	}
	return signals
}
