// Package calculator provides the primitive rolling computations the indicator
// library is built on. Every function returns a series positionally aligned
// with its input; positions without enough trailing history are undefined.
// Primitives never fail: a nonsensical period simply yields an all-undefined
// series, so indicator code stays free of error plumbing.
package calculator

import "StockLens/internal/model"

// SMA computes the arithmetic mean of the trailing period values.
// Defined from index period-1 onward.
func SMA(values []float64, period int) model.IndicatorSeries {
	out := model.NewIndicatorSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = model.Some(sum / float64(period))
		}
	}
	return out
}

// EMA computes the exponential moving average seeded with the first value,
// k = 2/(period+1). Defined from index 0: the seed is a real observation,
// so there is no warm-up gap.
func EMA(values []float64, period int) model.IndicatorSeries {
	out := model.NewIndicatorSeries(len(values))
	if period <= 0 || len(values) == 0 {
		return out
	}
	k := 2.0 / float64(period+1)
	ema := values[0]
	out[0] = model.Some(ema)
	for i := 1; i < len(values); i++ {
		ema += (values[i] - ema) * k
		out[i] = model.Some(ema)
	}
	return out
}

// SMASeries computes the arithmetic mean of the trailing period elements of an
// already-derived indicator series. A position is defined only when the whole
// trailing window is defined, so undefined holes in the input propagate.
func SMASeries(values model.IndicatorSeries, period int) model.IndicatorSeries {
	out := model.NewIndicatorSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		defined := true
		for _, v := range values[i-period+1 : i+1] {
			if !v.Valid {
				defined = false
				break
			}
			sum += v.F
		}
		if defined {
			out[i] = model.Some(sum / float64(period))
		}
	}
	return out
}

// EMASeries applies the EMA recurrence to an already-derived indicator series.
// The seed is the first defined element; everything before it stays undefined.
// MACD uses this to smooth its own output into the signal line.
func EMASeries(values model.IndicatorSeries, period int) model.IndicatorSeries {
	out := model.NewIndicatorSeries(len(values))
	if period <= 0 {
		return out
	}
	k := 2.0 / float64(period+1)
	seeded := false
	var ema float64
	for i, v := range values {
		if !v.Valid {
			continue
		}
		if !seeded {
			ema = v.F
			seeded = true
		} else {
			ema += (v.F - ema) * k
		}
		out[i] = model.Some(ema)
	}
	return out
}
