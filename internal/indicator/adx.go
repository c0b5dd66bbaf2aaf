package indicator

import (
	"math"

	"StockLens/internal/calculator"
	"StockLens/internal/model"
)

// ADXResult holds the trend-strength series: ADX plus the directional
// indicators it is derived from.
type ADXResult struct {
	ADX     model.IndicatorSeries
	PlusDI  model.IndicatorSeries
	MinusDI model.IndicatorSeries
}

// ADX computes the Average Directional Index over the given period.
//
// Directional movement per bar: +DM = max(high[i]-high[i-1], 0),
// -DM = max(low[i-1]-low[i], 0). Both are smoothed by a period SMA and scaled
// by smoothed true range to get +DI/-DI; DX = 100*|+DI - -DI|/(+DI + -DI) and
// ADX is the period SMA of DX. The DX ratio is undefined where its denominator
// is zero. ADX needs roughly 2*period bars before its first defined value;
// with less history than that every output position is undefined.
func ADX(highs, lows, closes []float64, period int) ADXResult {
	n := len(highs)
	res := ADXResult{
		ADX:     model.NewIndicatorSeries(n),
		PlusDI:  model.NewIndicatorSeries(n),
		MinusDI: model.NewIndicatorSeries(n),
	}
	if period <= 0 || n < 2*period {
		return res
	}

	// Per-bar directional movement; index 0 has no previous bar.
	plusDM := model.NewIndicatorSeries(n)
	minusDM := model.NewIndicatorSeries(n)
	trSeries := model.NewIndicatorSeries(n)
	tr := calculator.TrueRange(highs, lows, closes)
	for i := 1; i < n; i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		plusDM[i] = model.Some(math.Max(up, 0))
		minusDM[i] = model.Some(math.Max(down, 0))
		trSeries[i] = model.Some(tr[i])
	}

	plusSmooth := calculator.SMASeries(plusDM, period)
	minusSmooth := calculator.SMASeries(minusDM, period)
	trSmooth := calculator.SMASeries(trSeries, period)

	dx := model.NewIndicatorSeries(n)
	for i := 0; i < n; i++ {
		if !plusSmooth[i].Valid || !minusSmooth[i].Valid || !trSmooth[i].Valid || trSmooth[i].F == 0 {
			continue
		}
		plusDI := 100 * plusSmooth[i].F / trSmooth[i].F
		minusDI := 100 * minusSmooth[i].F / trSmooth[i].F
		res.PlusDI[i] = model.Some(plusDI)
		res.MinusDI[i] = model.Some(minusDI)

		if sum := plusDI + minusDI; sum != 0 {
			dx[i] = model.Some(100 * math.Abs(plusDI-minusDI) / sum)
		}
	}

	res.ADX = calculator.SMASeries(dx, period)
	return res
}
