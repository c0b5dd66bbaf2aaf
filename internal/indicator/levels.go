package indicator

import "sort"

// Levels holds clustered support and resistance prices relative to the
// current price. Supports are ordered nearest-first (descending), resistances
// nearest-first (ascending).
type Levels struct {
	Supports    []float64 `json:"supports"`
	Resistances []float64 `json:"resistances"`
}

// SupportResistance clusters the union of the trailing window's high, low and
// close prices. Prices are processed in sorted order so the clustering is
// deterministic regardless of input ordering. Two prices belong to the same
// cluster when they sit within tolerance (a fraction of the window's full
// price range) of the cluster's latest member; only clusters with at least two
// members produce a level, valued at the cluster mean. The nearest maxLevels
// per side of the current price are kept.
func SupportResistance(highs, lows, closes []float64, window int, tolerance float64, maxLevels int) Levels {
	n := len(closes)
	if n == 0 || n < window || window <= 0 {
		return Levels{}
	}

	prices := make([]float64, 0, 3*window)
	prices = append(prices, highs[n-window:]...)
	prices = append(prices, lows[n-window:]...)
	prices = append(prices, closes[n-window:]...)
	sort.Float64s(prices)

	span := prices[len(prices)-1] - prices[0]
	maxGap := span * tolerance

	var levels []float64
	clusterStart := 0
	clusterSum := prices[0]
	for i := 1; i <= len(prices); i++ {
		if i < len(prices) && prices[i]-prices[i-1] <= maxGap {
			clusterSum += prices[i]
			continue
		}
		if size := i - clusterStart; size > 1 {
			levels = append(levels, clusterSum/float64(size))
		}
		if i < len(prices) {
			clusterStart = i
			clusterSum = prices[i]
		}
	}

	current := closes[n-1]
	var supports, resistances []float64
	for _, lv := range levels {
		switch {
		case lv < current:
			supports = append(supports, lv)
		case lv > current:
			resistances = append(resistances, lv)
		}
	}

	// Nearest levels first on both sides.
	sort.Sort(sort.Reverse(sort.Float64Slice(supports)))
	sort.Float64s(resistances)
	if maxLevels > 0 {
		if len(supports) > maxLevels {
			supports = supports[:maxLevels]
		}
		if len(resistances) > maxLevels {
			resistances = resistances[:maxLevels]
		}
	}
	return Levels{Supports: supports, Resistances: resistances}
}
