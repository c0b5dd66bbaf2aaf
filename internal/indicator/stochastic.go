package indicator

import (
	"StockLens/internal/calculator"
	"StockLens/internal/model"
)

// StochasticResult holds the %K and %D oscillator series.
type StochasticResult struct {
	K model.IndicatorSeries
	D model.IndicatorSeries
}

// Stochastic computes %K = 100*(close - lowestLow) / (highestHigh - lowestLow)
// over kPeriod bars and %D as the dPeriod simple moving average of %K.
// A flat range (highest == lowest) leaves %K undefined at that position.
func Stochastic(highs, lows, closes []float64, kPeriod, dPeriod int) StochasticResult {
	n := len(closes)
	k := model.NewIndicatorSeries(n)

	hh := calculator.HighestHigh(highs, kPeriod)
	ll := calculator.LowestLow(lows, kPeriod)
	for i := 0; i < n; i++ {
		if !hh[i].Valid || !ll[i].Valid {
			continue
		}
		span := hh[i].F - ll[i].F
		if span == 0 {
			continue
		}
		k[i] = model.Some(100 * (closes[i] - ll[i].F) / span)
	}

	return StochasticResult{K: k, D: calculator.SMASeries(k, dPeriod)}
}
