package indicator

import (
	"StockLens/internal/calculator"
	"StockLens/internal/model"
)

// BollingerResult holds the aligned Bollinger Band series.
// Wherever all three bands are defined, Upper >= Middle >= Lower.
type BollingerResult struct {
	Middle    model.IndicatorSeries
	Upper     model.IndicatorSeries
	Lower     model.IndicatorSeries
	PercentB  model.IndicatorSeries // (close-lower)/(upper-lower); undefined on zero bandwidth
	Bandwidth model.IndicatorSeries // (upper-lower)/middle * 100
}

// Bollinger computes the middle band (SMA), the upper/lower bands at stdDev
// population standard deviations, %B and bandwidth.
func Bollinger(closes []float64, period int, stdDev float64) BollingerResult {
	n := len(closes)
	res := BollingerResult{
		Middle:    calculator.SMA(closes, period),
		Upper:     model.NewIndicatorSeries(n),
		Lower:     model.NewIndicatorSeries(n),
		PercentB:  model.NewIndicatorSeries(n),
		Bandwidth: model.NewIndicatorSeries(n),
	}
	sigma := calculator.RollingStdDev(closes, period)

	for i := 0; i < n; i++ {
		if !res.Middle[i].Valid || !sigma[i].Valid {
			continue
		}
		mid := res.Middle[i].F
		band := sigma[i].F * stdDev
		upper := mid + band
		lower := mid - band
		res.Upper[i] = model.Some(upper)
		res.Lower[i] = model.Some(lower)

		if width := upper - lower; width != 0 {
			res.PercentB[i] = model.Some((closes[i] - lower) / width)
		}
		if mid != 0 {
			res.Bandwidth[i] = model.Some((upper - lower) / mid * 100)
		}
	}
	return res
}
