package indicator

import (
	"StockLens/internal/calculator"
	"StockLens/internal/model"
)

// MACDResult holds the three aligned MACD series. Histogram is derived from
// the exact same macd/signal instances, so Histogram[i] == MACD[i] - Signal[i]
// holds bit-for-bit wherever defined.
type MACDResult struct {
	MACD      model.IndicatorSeries
	Signal    model.IndicatorSeries
	Histogram model.IndicatorSeries
}

// MACD computes EMA(fast) - EMA(slow), its signal-period EMA and their
// difference. With fewer than slow bars every position is undefined; otherwise
// the EMA convention (seed = first observation) makes all three series defined
// from index 0.
func MACD(closes []float64, fast, slow, signal int) MACDResult {
	n := len(closes)
	res := MACDResult{
		MACD:      model.NewIndicatorSeries(n),
		Signal:    model.NewIndicatorSeries(n),
		Histogram: model.NewIndicatorSeries(n),
	}
	if fast <= 0 || slow <= 0 || signal <= 0 || n < slow {
		return res
	}

	fastEMA := calculator.EMA(closes, fast)
	slowEMA := calculator.EMA(closes, slow)
	for i := 0; i < n; i++ {
		if fastEMA[i].Valid && slowEMA[i].Valid {
			res.MACD[i] = model.Some(fastEMA[i].F - slowEMA[i].F)
		}
	}
	res.Signal = calculator.EMASeries(res.MACD, signal)
	for i := 0; i < n; i++ {
		if res.MACD[i].Valid && res.Signal[i].Valid {
			res.Histogram[i] = model.Some(res.MACD[i].F - res.Signal[i].F)
		}
	}
	return res
}
