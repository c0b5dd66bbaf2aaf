package indicator

import (
	"StockLens/internal/calculator"
	"StockLens/internal/model"
)

// OBV computes On-Balance Volume: a cumulative sum seeded with the first
// bar's volume that adds volume on up-closes, subtracts it on down-closes and
// holds on flat closes. Defined from bar 0.
func OBV(closes, volumes []float64) model.IndicatorSeries {
	n := len(closes)
	out := model.NewIndicatorSeries(n)
	if n == 0 {
		return out
	}
	obv := volumes[0]
	out[0] = model.Some(obv)
	for i := 1; i < n; i++ {
		switch {
		case closes[i] > closes[i-1]:
			obv += volumes[i]
		case closes[i] < closes[i-1]:
			obv -= volumes[i]
		}
		out[i] = model.Some(obv)
	}
	return out
}

// VWAP computes the daily approximation of the volume-weighted average price:
// cumulative (typical price * volume) / cumulative volume, where the typical
// price is the mean of the close and up to two prior closes. The first two
// bars simply average fewer terms. Positions with zero cumulative volume are
// undefined.
func VWAP(closes, volumes []float64) model.IndicatorSeries {
	n := len(closes)
	out := model.NewIndicatorSeries(n)

	var cumPV, cumVol float64
	for i := 0; i < n; i++ {
		tp := closes[i]
		terms := 1.0
		if i >= 1 {
			tp += closes[i-1]
			terms++
		}
		if i >= 2 {
			tp += closes[i-2]
			terms++
		}
		tp /= terms

		cumPV += tp * volumes[i]
		cumVol += volumes[i]
		if cumVol != 0 {
			out[i] = model.Some(cumPV / cumVol)
		}
	}
	return out
}

// VolumeMA computes the simple moving average of volume, used by the volume
// spike signal rule.
func VolumeMA(volumes []float64, period int) model.IndicatorSeries {
	return calculator.SMA(volumes, period)
}
