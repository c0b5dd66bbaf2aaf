package signal

import (
	"strings"
	"testing"
	"time"

	"StockLens/internal/analysis"
	"StockLens/internal/model"
)

// table builds a minimal result table whose last rows carry the given values.
func table(mutate func(*analysis.ResultTable)) *analysis.ResultTable {
	t := &analysis.ResultTable{
		Length:     2,
		MA:         map[int]model.IndicatorSeries{20: undef(2), 50: undef(2)},
		RSI:        undef(2),
		MACD:       undef(2),
		MACDSignal: undef(2),
		VolumeMA:   undef(2),
	}
	if mutate != nil {
		mutate(t)
	}
	return t
}

func undef(n int) model.IndicatorSeries { return model.NewIndicatorSeries(n) }

func pair(prev, cur float64) model.IndicatorSeries {
	return model.IndicatorSeries{model.Some(prev), model.Some(cur)}
}

func series(volume int64) *model.Series {
	return &model.Series{
		Ticker: "TEST",
		Bars: []model.Bar{
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000},
			{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Open: 100, High: 102, Low: 99, Close: 101, Volume: volume},
		},
	}
}

func kinds(signals []model.Signal) map[model.SignalKind]model.Signal {
	out := make(map[model.SignalKind]model.Signal, len(signals))
	for _, s := range signals {
		out[s.Kind] = s
	}
	return out
}

func TestEvaluate_RSIThresholds(t *testing.T) {
	cfg := analysis.DefaultConfig()

	over := Evaluate(table(func(tb *analysis.ResultTable) { tb.RSI = pair(65, 75) }), series(1000), cfg)
	if s, ok := kinds(over)[model.SignalRSIOverbought]; !ok {
		t.Fatal("expected overbought signal for RSI 75")
	} else if s.Severity != model.SeverityDanger {
		t.Errorf("expected danger severity, got %s", s.Severity)
	}

	under := Evaluate(table(func(tb *analysis.ResultTable) { tb.RSI = pair(35, 25) }), series(1000), cfg)
	if s, ok := kinds(under)[model.SignalRSIOversold]; !ok {
		t.Fatal("expected oversold signal for RSI 25")
	} else if s.Severity != model.SeveritySuccess {
		t.Errorf("expected success severity, got %s", s.Severity)
	}

	mid := Evaluate(table(func(tb *analysis.ResultTable) { tb.RSI = pair(50, 50) }), series(1000), cfg)
	ks := kinds(mid)
	if _, ok := ks[model.SignalRSIOverbought]; ok {
		t.Error("no RSI signal expected at 50")
	}
	if _, ok := ks[model.SignalRSIOversold]; ok {
		t.Error("no RSI signal expected at 50")
	}
}

func TestEvaluate_TrendRule(t *testing.T) {
	cfg := analysis.DefaultConfig()

	bull := Evaluate(table(func(tb *analysis.ResultTable) {
		tb.MA[20] = pair(101, 102)
		tb.MA[50] = pair(100, 100)
	}), series(1000), cfg)
	if _, ok := kinds(bull)[model.SignalTrendBullish]; !ok {
		t.Error("expected bullish trend when MA20 > MA50")
	}

	bear := Evaluate(table(func(tb *analysis.ResultTable) {
		tb.MA[20] = pair(99, 98)
		tb.MA[50] = pair(100, 100)
	}), series(1000), cfg)
	if s, ok := kinds(bear)[model.SignalTrendBearish]; !ok {
		t.Error("expected bearish trend when MA20 < MA50")
	} else if s.Severity != model.SeverityWarning {
		t.Errorf("expected warning severity, got %s", s.Severity)
	}

	// Undefined slow MA suppresses only the trend rule.
	partial := Evaluate(table(func(tb *analysis.ResultTable) {
		tb.MA[20] = pair(101, 102)
		tb.RSI = pair(65, 75)
	}), series(1000), cfg)
	ks := kinds(partial)
	if _, ok := ks[model.SignalTrendBullish]; ok {
		t.Error("trend rule must be skipped when MA50 is undefined")
	}
	if _, ok := ks[model.SignalRSIOverbought]; !ok {
		t.Error("other rules must still run")
	}
}

func TestEvaluate_MACDCrossover(t *testing.T) {
	cfg := analysis.DefaultConfig()

	up := Evaluate(table(func(tb *analysis.ResultTable) {
		tb.MACD = pair(-0.5, 0.5)
		tb.MACDSignal = pair(0, 0)
	}), series(1000), cfg)
	if _, ok := kinds(up)[model.SignalMACDBullCross]; !ok {
		t.Error("expected bullish cross when macd moves from below to above the signal")
	}

	down := Evaluate(table(func(tb *analysis.ResultTable) {
		tb.MACD = pair(0.5, -0.5)
		tb.MACDSignal = pair(0, 0)
	}), series(1000), cfg)
	if s, ok := kinds(down)[model.SignalMACDBearCross]; !ok {
		t.Error("expected bearish cross")
	} else if s.Severity != model.SeverityDanger {
		t.Errorf("expected danger severity, got %s", s.Severity)
	}

	// No sign change: stays above on both bars.
	flat := Evaluate(table(func(tb *analysis.ResultTable) {
		tb.MACD = pair(0.5, 0.6)
		tb.MACDSignal = pair(0, 0)
	}), series(1000), cfg)
	ks := kinds(flat)
	if _, ok := ks[model.SignalMACDBullCross]; ok {
		t.Error("no crossover signal without a sign change")
	}

	// A single defined row is not enough for a crossover.
	single := Evaluate(table(func(tb *analysis.ResultTable) {
		tb.MACD = model.IndicatorSeries{model.None(), model.Some(0.5)}
		tb.MACDSignal = model.IndicatorSeries{model.None(), model.Some(0)}
	}), series(1000), cfg)
	if _, ok := kinds(single)[model.SignalMACDBullCross]; ok {
		t.Error("crossover needs two defined rows")
	}
}

func TestEvaluate_VolumeSpike(t *testing.T) {
	cfg := analysis.DefaultConfig()

	spike := Evaluate(table(func(tb *analysis.ResultTable) {
		tb.VolumeMA = pair(1000, 1000)
	}), series(2000), cfg)
	s, ok := kinds(spike)[model.SignalVolumeSpike]
	if !ok {
		t.Fatal("expected volume spike at 2x the average")
	}
	if !s.Value.Valid || s.Value.F != 2 {
		t.Errorf("expected ratio 2.0 in the signal value, got %+v", s.Value)
	}
	if !strings.Contains(s.Message, "2.0x") {
		t.Errorf("expected the ratio in the message, got %q", s.Message)
	}

	calm := Evaluate(table(func(tb *analysis.ResultTable) {
		tb.VolumeMA = pair(1000, 1000)
	}), series(1200), cfg)
	if _, ok := kinds(calm)[model.SignalVolumeSpike]; ok {
		t.Error("1.2x the average is below the spike ratio")
	}
}

func TestEvaluate_EmptyInputs(t *testing.T) {
	cfg := analysis.DefaultConfig()
	if got := Evaluate(nil, series(1000), cfg); got != nil {
		t.Error("nil table yields no signals")
	}
	if got := Evaluate(table(nil), &model.Series{}, cfg); got != nil {
		t.Error("empty series yields no signals")
	}
	// Fully undefined table: every rule skips, no panic.
	if got := Evaluate(table(nil), series(1000), cfg); len(got) != 0 {
		t.Errorf("expected no signals from an all-undefined table, got %d", len(got))
	}
}
