package indicator

// FibLevel is one retracement/extension level of a swing.
type FibLevel struct {
	Ratio float64 `json:"ratio"`
	Price float64 `json:"price"`
}

// DefaultFibRatios is the conventional retracement/extension level set.
// Ratios above 1.0 are extensions below the swing low.
var DefaultFibRatios = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1.0, 1.272, 1.618}

// FibonacciRetracement computes the price at each ratio of the high-low range.
// The caller supplies the swing high/low explicitly; there is no automatic
// swing detection. Ratio 0 is the high, 1.0 the low, and extensions project
// past the low by ratio-1 of the range.
func FibonacciRetracement(high, low float64, ratios []float64) []FibLevel {
	if len(ratios) == 0 {
		ratios = DefaultFibRatios
	}
	diff := high - low
	levels := make([]FibLevel, 0, len(ratios))
	for _, r := range ratios {
		price := high - r*diff
		if r > 1.0 {
			price = low - (r-1.0)*diff
		}
		levels = append(levels, FibLevel{Ratio: r, Price: price})
	}
	return levels
}
