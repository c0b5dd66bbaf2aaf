package indicator

import (
	"math"
	"testing"
)

func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func TestMACD_Identity(t *testing.T) {
	closes := ramp(40)
	res := MACD(closes, 12, 26, 9)

	for i := range closes {
		m, s, h := res.MACD[i], res.Signal[i], res.Histogram[i]
		if m.Valid != s.Valid || m.Valid != h.Valid {
			t.Fatalf("index %d: macd/signal/histogram definedness diverges", i)
		}
		if m.Valid && h.F != m.F-s.F {
			t.Errorf("index %d: histogram %.12f != macd-signal %.12f", i, h.F, m.F-s.F)
		}
	}

	// Reference values for a 1..40 ramp.
	if math.Abs(res.MACD.Last().F-6.3867273176) > 1e-9 {
		t.Errorf("macd last: got %.10f", res.MACD.Last().F)
	}
	if math.Abs(res.Signal.Last().F-6.1145557406) > 1e-9 {
		t.Errorf("signal last: got %.10f", res.Signal.Last().F)
	}
}

func TestMACD_ShortHistory(t *testing.T) {
	res := MACD(ramp(25), 12, 26, 9)
	if !res.MACD.AllUndefined() || !res.Signal.AllUndefined() || !res.Histogram.AllUndefined() {
		t.Error("expected all-undefined MACD when history < slow period")
	}
}

func TestBollinger_BandOrdering(t *testing.T) {
	closes := make([]float64, 60)
	price := 50.0
	for i := range closes {
		if i%2 == 0 {
			price += 1.3
		} else {
			price -= 0.9
		}
		closes[i] = price
	}
	res := Bollinger(closes, 20, 2)

	for i := range closes {
		if !res.Upper[i].Valid {
			continue
		}
		if res.Upper[i].F < res.Middle[i].F || res.Middle[i].F < res.Lower[i].F {
			t.Errorf("index %d: band ordering violated (%.4f / %.4f / %.4f)",
				i, res.Upper[i].F, res.Middle[i].F, res.Lower[i].F)
		}
	}
	for i := 0; i < 19; i++ {
		if res.Middle[i].Valid {
			t.Errorf("index %d: expected undefined during warm-up", i)
		}
	}
}

func TestBollinger_ConstantPrice(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	res := Bollinger(closes, 20, 2)

	for i := 19; i < len(closes); i++ {
		if !res.Upper[i].Valid || res.Upper[i].F != 100 || res.Lower[i].F != 100 || res.Middle[i].F != 100 {
			t.Errorf("index %d: expected collapsed bands at 100", i)
		}
		if res.PercentB[i].Valid {
			t.Errorf("index %d: %%B must be undefined on zero bandwidth", i)
		}
	}
}

func TestATR_NonNegativeAndWarmup(t *testing.T) {
	highs := []float64{12, 13, 20, 15, 16, 17}
	lows := []float64{10, 11, 18, 13, 14, 15}
	closes := []float64{11, 12, 19, 14, 15, 16}

	atr := ATR(highs, lows, closes, 3)
	for i := 0; i < 2; i++ {
		if atr[i].Valid {
			t.Errorf("index %d: expected undefined ATR during warm-up", i)
		}
	}
	for i := 2; i < len(atr); i++ {
		if !atr[i].Valid || atr[i].F < 0 {
			t.Errorf("index %d: expected non-negative defined ATR, got %+v", i, atr[i])
		}
	}
	// TR = 2, 2, 8 for the first three bars.
	if math.Abs(atr[2].F-4) > 1e-9 {
		t.Errorf("expected ATR 4 at index 2, got %.4f", atr[2].F)
	}
}

func TestStochastic_KnownValueAndFlatRange(t *testing.T) {
	highs := []float64{10, 11, 12, 13, 14}
	lows := []float64{9, 10, 11, 12, 13}
	closes := []float64{9.5, 10.5, 11.5, 12.5, 13.5}

	res := Stochastic(highs, lows, closes, 3, 3)
	if !res.K[4].Valid || math.Abs(res.K[4].F-83.333333333333) > 1e-9 {
		t.Errorf("expected %%K 83.33 at index 4, got %+v", res.K[4])
	}
	if res.K[1].Valid {
		t.Error("expected undefined %%K during warm-up")
	}
	if !res.D[4].Valid {
		t.Error("expected defined %%D once three %%K values exist")
	}

	// Flat range: highest == lowest leaves %K undefined.
	flatH := []float64{10, 10, 10, 10}
	flatL := []float64{10, 10, 10, 10}
	flatC := []float64{10, 10, 10, 10}
	flat := Stochastic(flatH, flatL, flatC, 3, 3)
	if !flat.K.AllUndefined() {
		t.Error("expected undefined %%K on a flat range")
	}
}

func TestADX_TrendingSeries(t *testing.T) {
	n := 30
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		closes[i] = 100 + float64(i)
		highs[i] = closes[i] + 0.5
		lows[i] = closes[i] - 0.5
	}
	res := ADX(highs, lows, closes, 5)

	// First defined ADX needs period DX values, i.e. index 2*period-1.
	if res.ADX[8].Valid {
		t.Error("expected undefined ADX at index 8")
	}
	if !res.ADX[9].Valid {
		t.Fatal("expected defined ADX at index 9")
	}
	last := res.ADX.Last()
	if math.Abs(last.F-100) > 1e-9 {
		t.Errorf("pure uptrend should read DX=ADX=100, got %.6f", last.F)
	}
	if !res.PlusDI.Last().Valid || !res.MinusDI.Last().Valid {
		t.Fatal("expected defined directional indicators")
	}
	if res.PlusDI.Last().F <= res.MinusDI.Last().F {
		t.Error("expected +DI > -DI in an uptrend")
	}
}

func TestADX_ShortHistory(t *testing.T) {
	res := ADX(ramp(9), ramp(9), ramp(9), 5)
	if !res.ADX.AllUndefined() || !res.PlusDI.AllUndefined() || !res.MinusDI.AllUndefined() {
		t.Error("expected all-undefined ADX with fewer than 2*period bars")
	}
}

func TestOBV_UpOnlySeries(t *testing.T) {
	n := 20
	closes := make([]float64, n)
	volumes := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		closes[i] = 100 + float64(i)
		volumes[i] = float64(1000 + 10*i)
		total += volumes[i]
	}
	obv := OBV(closes, volumes)

	prev := math.Inf(-1)
	for i, v := range obv {
		if !v.Valid {
			t.Fatalf("index %d: OBV must be defined from bar 0", i)
		}
		if v.F < prev {
			t.Errorf("index %d: OBV decreased on an up-only series", i)
		}
		prev = v.F
	}
	if obv.Last().F != total {
		t.Errorf("expected final OBV %.0f (sum of volumes), got %.0f", total, obv.Last().F)
	}
}

func TestOBV_Directions(t *testing.T) {
	closes := []float64{10, 11, 10, 10}
	volumes := []float64{100, 200, 300, 400}
	obv := OBV(closes, volumes)
	want := []float64{100, 300, 0, 0}
	for i, w := range want {
		if obv[i].F != w {
			t.Errorf("index %d: expected %.0f, got %.0f", i, w, obv[i].F)
		}
	}
}

func TestVWAP_FirstBarsAndZeroVolume(t *testing.T) {
	closes := []float64{10, 12, 14}
	volumes := []float64{100, 100, 100}
	vwap := VWAP(closes, volumes)

	// Bar 0: tp=10. Bar 1: tp=(12+10)/2=11 -> (10*100+11*100)/200 = 10.5.
	// Bar 2: tp=(14+12+10)/3=12 -> (1000+1100+1200)/300 = 11.
	want := []float64{10, 10.5, 11}
	for i, w := range want {
		if !vwap[i].Valid || math.Abs(vwap[i].F-w) > 1e-9 {
			t.Errorf("index %d: expected %.2f, got %+v", i, w, vwap[i])
		}
	}

	zero := VWAP([]float64{10, 11}, []float64{0, 0})
	if !zero.AllUndefined() {
		t.Error("expected undefined VWAP while cumulative volume is zero")
	}
}

func TestPivotPoints_ClassicFormula(t *testing.T) {
	p := PivotPoints(110, 90, 100)
	if p.Pivot != 100 {
		t.Fatalf("expected pivot 100, got %.4f", p.Pivot)
	}
	if p.R1 != 110 || p.S1 != 90 {
		t.Errorf("R1/S1: got %.2f/%.2f", p.R1, p.S1)
	}
	if p.R2 != 120 || p.S2 != 80 {
		t.Errorf("R2/S2: got %.2f/%.2f", p.R2, p.S2)
	}
	if p.R3 != 130 || p.S3 != 70 {
		t.Errorf("R3/S3: got %.2f/%.2f", p.R3, p.S3)
	}
}

func TestFibonacci_DefaultLevels(t *testing.T) {
	levels := FibonacciRetracement(200, 100, nil)
	if len(levels) != len(DefaultFibRatios) {
		t.Fatalf("expected %d levels, got %d", len(DefaultFibRatios), len(levels))
	}
	byRatio := map[float64]float64{}
	for _, l := range levels {
		byRatio[l.Ratio] = l.Price
	}
	if byRatio[0] != 200 || byRatio[1.0] != 100 {
		t.Errorf("expected ratio 0 at the high and 1.0 at the low, got %.2f / %.2f", byRatio[0], byRatio[1.0])
	}
	if math.Abs(byRatio[0.5]-150) > 1e-9 {
		t.Errorf("expected midpoint 150, got %.4f", byRatio[0.5])
	}
	// Extensions project below the low.
	if math.Abs(byRatio[1.618]-38.2) > 1e-9 {
		t.Errorf("expected 1.618 extension at 38.2, got %.4f", byRatio[1.618])
	}
}

func TestSupportResistance_Deterministic(t *testing.T) {
	n := 25
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		// Oscillate between two price shelves so clusters form at each.
		if i%2 == 0 {
			closes[i] = 100
		} else {
			closes[i] = 110
		}
		highs[i] = closes[i] + 0.05
		lows[i] = closes[i] - 0.05
	}
	// Last close sits between the shelves so both sides have levels.
	closes[n-1] = 105
	highs[n-1] = 105.05
	lows[n-1] = 104.95
	lv := SupportResistance(highs, lows, closes, 20, 0.01, 5)

	if len(lv.Supports) == 0 {
		t.Fatal("expected at least one support below the current price")
	}
	for _, s := range lv.Supports {
		if s >= closes[n-1] {
			t.Errorf("support %.4f not below current price %.4f", s, closes[n-1])
		}
	}
	for _, r := range lv.Resistances {
		if r <= closes[n-1] {
			t.Errorf("resistance %.4f not above current price %.4f", r, closes[n-1])
		}
	}

	// Recomputing yields identical levels: clustering runs over sorted
	// prices, so input ordering never affects the result.
	lv2 := SupportResistance(highs, lows, closes, 20, 0.01, 5)
	if len(lv2.Supports) != len(lv.Supports) || len(lv2.Resistances) != len(lv.Resistances) {
		t.Error("expected deterministic clustering output")
	}
}

func TestSupportResistance_ShortWindow(t *testing.T) {
	lv := SupportResistance([]float64{1}, []float64{1}, []float64{1}, 20, 0.01, 5)
	if len(lv.Supports) != 0 || len(lv.Resistances) != 0 {
		t.Error("expected no levels with history shorter than the window")
	}
}

func TestIchimoku_Displacement(t *testing.T) {
	n := 80
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i] = 100 + float64(i) + 0.5
		lows[i] = 100 + float64(i) - 0.5
	}
	res := Ichimoku(highs, lows, 9, 26, 52, 26)

	if res.Conversion[7].Valid || !res.Conversion[8].Valid {
		t.Error("conversion line should be defined from index 8")
	}
	// Leading spans are shifted forward by the displacement.
	if res.LeadingB[76].Valid && !res.LeadingB[77].Valid {
		t.Error("unexpected leading span definedness")
	}
	if !res.LeadingB[77].Valid {
		t.Error("expected defined leading span B once source and shift allow")
	}
	// Lagging span ends displacement bars early.
	if res.Lagging[n-1].Valid {
		t.Error("lagging span must be undefined at the series end")
	}
	if !res.Lagging[0].Valid || res.Lagging[0].F != lows[26] {
		t.Errorf("expected lagging[0] = low[26], got %+v", res.Lagging[0])
	}
}

func TestIchimoku_ShortHistory(t *testing.T) {
	res := Ichimoku(ramp(51), ramp(51), 9, 26, 52, 26)
	if !res.Conversion.AllUndefined() || !res.LeadingB.AllUndefined() {
		t.Error("expected all-undefined Ichimoku with fewer bars than the leading period")
	}
}
