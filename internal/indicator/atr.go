package indicator

import (
	"StockLens/internal/calculator"
	"StockLens/internal/model"
)

// ATR computes the Average True Range: the simple moving average of the
// per-bar true range over the trailing period. Always >= 0 wherever defined.
func ATR(highs, lows, closes []float64, period int) model.IndicatorSeries {
	tr := calculator.TrueRange(highs, lows, closes)
	return calculator.SMA(tr, period)
}
