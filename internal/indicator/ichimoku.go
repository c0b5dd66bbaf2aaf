package indicator

import (
	"StockLens/internal/calculator"
	"StockLens/internal/model"
)

// IchimokuResult holds the five aligned cloud series. The leading spans are
// displaced forward, so their first displacement positions are undefined; the
// lagging span is displaced backward, so its last displacement positions are.
type IchimokuResult struct {
	Conversion model.IndicatorSeries // Tenkan-sen
	Base       model.IndicatorSeries // Kijun-sen
	LeadingA   model.IndicatorSeries // Senkou Span A
	LeadingB   model.IndicatorSeries // Senkou Span B
	Lagging    model.IndicatorSeries // Chikou Span
}

// Ichimoku computes the Ichimoku cloud. Each line is the midpoint of the
// rolling high/low range over its own period; with fewer bars than the
// leading-span period every series is undefined.
func Ichimoku(highs, lows []float64, conversionPeriod, basePeriod, leadingPeriod, displacement int) IchimokuResult {
	n := len(highs)
	res := IchimokuResult{
		Conversion: model.NewIndicatorSeries(n),
		Base:       model.NewIndicatorSeries(n),
		LeadingA:   model.NewIndicatorSeries(n),
		LeadingB:   model.NewIndicatorSeries(n),
		Lagging:    model.NewIndicatorSeries(n),
	}
	if n < leadingPeriod || conversionPeriod <= 0 || basePeriod <= 0 || displacement < 0 {
		return res
	}

	res.Conversion = midpoint(highs, lows, conversionPeriod)
	res.Base = midpoint(highs, lows, basePeriod)
	leadingB := midpoint(highs, lows, leadingPeriod)

	for i := 0; i < n; i++ {
		// Leading spans are plotted displacement bars ahead of their source.
		if src := i - displacement; src >= 0 {
			if res.Conversion[src].Valid && res.Base[src].Valid {
				res.LeadingA[i] = model.Some((res.Conversion[src].F + res.Base[src].F) / 2)
			}
			res.LeadingB[i] = leadingB[src]
		}
		if src := i + displacement; src < n {
			res.Lagging[i] = model.Some(lows[src])
		}
	}
	return res
}

func midpoint(highs, lows []float64, period int) model.IndicatorSeries {
	hh := calculator.HighestHigh(highs, period)
	ll := calculator.LowestLow(lows, period)
	out := model.NewIndicatorSeries(len(highs))
	for i := range out {
		if hh[i].Valid && ll[i].Valid {
			out[i] = model.Some((hh[i].F + ll[i].F) / 2)
		}
	}
	return out
}
