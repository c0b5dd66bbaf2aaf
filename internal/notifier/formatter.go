package notifier

import (
	"fmt"
	"sort"
	"strings"

	"StockLens/internal/analysis"
	"StockLens/internal/model"
)

// FormatSummary renders an analysis summary into a Telegram HTML message.
func FormatSummary(s analysis.Summary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", s.Ticker, s.LastDate))
	b.WriteString(fmt.Sprintf("Price: %.2f\n", s.LastPrice))

	periods := make([]int, 0, len(s.MA))
	for p := range s.MA {
		periods = append(periods, p)
	}
	sort.Ints(periods)
	for _, p := range periods {
		if v := s.MA[p]; v.Valid {
			dev := (s.LastPrice - v.F) / v.F * 100
			b.WriteString(fmt.Sprintf("MA%d: %.2f (%+.1f%%)\n", p, v.F, dev))
		}
	}

	b.WriteString("\n📈 <b>Indicators</b>\n")
	writeValue(&b, "RSI", s.RSI, "%.1f")
	writeValue(&b, "MACD", s.MACD, "%.3f")
	writeValue(&b, "%B", s.PercentB, "%.2f")
	writeValue(&b, "ATR", s.ATR, "%.2f")
	writeValue(&b, "ADX", s.ADX, "%.1f")
	writeValue(&b, "SAR", s.SAR, "%.2f")
	writeValue(&b, "Stoch %K", s.StochK, "%.1f")
	writeValue(&b, "VWAP", s.VWAP, "%.2f")
	writeValue(&b, "Volume ratio", s.VolumeRatio, "%.2fx")

	if s.Pivots.Pivot != 0 {
		b.WriteString(fmt.Sprintf("\nPivot: %.2f | R1: %.2f | S1: %.2f\n",
			s.Pivots.Pivot, s.Pivots.R1, s.Pivots.S1))
	}
	if len(s.Levels.Supports) > 0 {
		b.WriteString(fmt.Sprintf("Support: %.2f\n", s.Levels.Supports[0]))
	}
	if len(s.Levels.Resistances) > 0 {
		b.WriteString(fmt.Sprintf("Resistance: %.2f\n", s.Levels.Resistances[0]))
	}

	if len(s.Signals) > 0 {
		b.WriteString("\n" + FormatSignals(s.Signals))
	}
	return b.String()
}

// FormatSignals renders a signal list, one line per signal.
func FormatSignals(signals []model.Signal) string {
	if len(signals) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("🔔 <b>Signals</b>\n")
	for _, s := range signals {
		b.WriteString(fmt.Sprintf("%s %s\n", severityIcon(s.Severity), s.Message))
	}
	return b.String()
}

// FormatAlert renders the message pushed by the watchlist scheduler when a
// ticker has active signals.
func FormatAlert(s analysis.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⚡ <b>%s</b> @ %.2f | %s\n\n", s.Ticker, s.LastPrice, s.LastDate))
	b.WriteString(FormatSignals(s.Signals))
	return b.String()
}

func writeValue(b *strings.Builder, label string, v model.Value, format string) {
	if !v.Valid {
		return
	}
	b.WriteString(fmt.Sprintf("  %s: "+format+"\n", label, v.F))
}

func severityIcon(sev model.Severity) string {
	switch sev {
	case model.SeverityDanger:
		return "🔴"
	case model.SeverityWarning:
		return "🟡"
	case model.SeveritySuccess:
		return "🟢"
	default:
		return "ℹ️"
	}
}
