package calculator

import (
	"math"

	"StockLens/internal/model"
)

// TrueRange computes the per-bar true range:
// max(high-low, |high-prevClose|, |low-prevClose|).
// The first bar has no previous close, so its true range is high-low.
func TrueRange(highs, lows, closes []float64) []float64 {
	out := make([]float64, len(highs))
	for i := range highs {
		tr := highs[i] - lows[i]
		if i > 0 {
			prev := closes[i-1]
			tr = math.Max(tr, math.Abs(highs[i]-prev))
			tr = math.Max(tr, math.Abs(lows[i]-prev))
		}
		out[i] = tr
	}
	return out
}

// HighestHigh computes the rolling maximum of the trailing period values.
// Defined from index period-1 onward.
func HighestHigh(values []float64, period int) model.IndicatorSeries {
	out := model.NewIndicatorSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		hi := math.Inf(-1)
		for _, v := range values[i-period+1 : i+1] {
			if v > hi {
				hi = v
			}
		}
		out[i] = model.Some(hi)
	}
	return out
}

// LowestLow computes the rolling minimum of the trailing period values.
// Defined from index period-1 onward.
func LowestLow(values []float64, period int) model.IndicatorSeries {
	out := model.NewIndicatorSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		lo := math.Inf(1)
		for _, v := range values[i-period+1 : i+1] {
			if v < lo {
				lo = v
			}
		}
		out[i] = model.Some(lo)
	}
	return out
}
