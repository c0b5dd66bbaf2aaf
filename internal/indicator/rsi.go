// Package indicator implements the technical indicator library over daily
// OHLCV series. Every calculator returns series aligned with its input and
// follows one policy for short history: the affected positions are undefined,
// never an error and never a fabricated neutral value.
package indicator

import "StockLens/internal/model"

// RSI computes the Relative Strength Index with Wilder smoothing.
//
// The first period deltas seed the average gain/loss with a simple mean; later
// positions use avg = (avg*(period-1) + new) / period. Pure uptrends (zero
// average loss) read 100. A window with no price variation at all has no
// meaningful RSI and stays undefined rather than defaulting to 50.
func RSI(closes []float64, period int) model.IndicatorSeries {
	out := model.NewIndicatorSeries(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	p := float64(period)
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) model.Value {
	if avgGain == 0 && avgLoss == 0 {
		// No variation in the window: undefined, not a neutral 50.
		return model.None()
	}
	if avgLoss == 0 {
		return model.Some(100)
	}
	rs := avgGain / avgLoss
	return model.Some(100 - 100/(1+rs))
}
