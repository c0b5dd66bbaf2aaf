package calculator

import (
	"math"

	"StockLens/internal/model"
)

// RollingStdDev computes the population standard deviation over the trailing
// period values. Defined from index period-1 onward.
func RollingStdDev(values []float64, period int) model.IndicatorSeries {
	out := model.NewIndicatorSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		mean := 0.0
		for _, v := range window {
			mean += v
		}
		mean /= float64(period)
		variance := 0.0
		for _, v := range window {
			d := v - mean
			variance += d * d
		}
		variance /= float64(period)
		out[i] = model.Some(math.Sqrt(variance))
	}
	return out
}
