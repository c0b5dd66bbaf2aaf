// Package analysis orchestrates a full indicator run over one OHLCV series.
//
// A session is a pure function of its inputs: it owns its working buffers and
// result table, keeps no state between calls and never mutates the borrowed
// series, so independent sessions are free to run concurrently.
package analysis

import (
	"errors"

	"StockLens/internal/calculator"
	"StockLens/internal/indicator"
	"StockLens/internal/model"
)

// ErrEmptySeries is the only failure mode of a session: analysis of zero bars.
// Every other shortfall (too little history for some indicator) degrades to
// undefined positions in the result table.
var ErrEmptySeries = errors.New("analysis: empty series")

// Run computes every configured indicator over the series and assembles the
// aligned result table. Each indicator is computed exactly once; derived
// columns (MACD histogram, %D) come from the same instances as their sources.
func Run(series *model.Series, cfg Config) (*ResultTable, error) {
	if series == nil || series.Len() == 0 {
		return nil, ErrEmptySeries
	}

	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()
	n := series.Len()

	t := &ResultTable{
		Ticker: series.Ticker,
		Length: n,
		MA:     make(map[int]model.IndicatorSeries, len(cfg.MA.Periods)),
	}

	for _, period := range cfg.MA.Periods {
		t.MA[period] = calculator.SMA(closes, period)
	}

	t.RSI = indicator.RSI(closes, cfg.RSI.Period)

	macd := indicator.MACD(closes, cfg.MACD.Fast, cfg.MACD.Slow, cfg.MACD.Signal)
	t.MACD = macd.MACD
	t.MACDSignal = macd.Signal
	t.MACDHist = macd.Histogram

	bb := indicator.Bollinger(closes, cfg.Bollinger.Period, cfg.Bollinger.StdDev)
	t.BBMiddle = bb.Middle
	t.BBUpper = bb.Upper
	t.BBLower = bb.Lower
	t.BBPercentB = bb.PercentB
	t.BBBandwidth = bb.Bandwidth

	t.ATR = indicator.ATR(highs, lows, closes, cfg.ATR.Period)

	stoch := indicator.Stochastic(highs, lows, closes, cfg.Stochastic.K, cfg.Stochastic.D)
	t.StochK = stoch.K
	t.StochD = stoch.D

	adx := indicator.ADX(highs, lows, closes, cfg.ADX.Period)
	t.ADX = adx.ADX
	t.PlusDI = adx.PlusDI
	t.MinusDI = adx.MinusDI

	t.SAR = indicator.ParabolicSAR(highs, lows, cfg.SAR.Accel, cfg.SAR.MaxAccel)

	t.OBV = indicator.OBV(closes, volumes)
	t.VWAP = indicator.VWAP(closes, volumes)
	t.VolumeMA = indicator.VolumeMA(volumes, cfg.Volume.MAPeriod)

	ichi := indicator.Ichimoku(highs, lows,
		cfg.Ichimoku.Conversion, cfg.Ichimoku.Base, cfg.Ichimoku.Leading, cfg.Ichimoku.Displacement)
	t.IchimokuConversion = ichi.Conversion
	t.IchimokuBase = ichi.Base
	t.IchimokuLeadingA = ichi.LeadingA
	t.IchimokuLeadingB = ichi.LeadingB
	t.IchimokuLagging = ichi.Lagging

	last := series.Last()
	t.Pivots = indicator.PivotPoints(last.High, last.Low, last.Close)

	// A nonsensical window yields no levels, same as every other parameter.
	if swingWindow := cfg.Levels.Window; swingWindow > 0 {
		if swingWindow > n {
			swingWindow = n
		}
		swingHigh, swingLow := windowExtremes(highs, lows, swingWindow)
		t.Fibonacci = indicator.FibonacciRetracement(swingHigh, swingLow, cfg.Fibonacci.Ratios)
	}

	t.Levels = indicator.SupportResistance(highs, lows, closes,
		cfg.Levels.Window, cfg.Levels.Tolerance, cfg.Levels.MaxLevels)

	return t, nil
}

// windowExtremes finds the swing high/low over the trailing window bars.
func windowExtremes(highs, lows []float64, window int) (hi, lo float64) {
	start := len(highs) - window
	hi, lo = highs[start], lows[start]
	for i := start + 1; i < len(highs); i++ {
		if highs[i] > hi {
			hi = highs[i]
		}
		if lows[i] < lo {
			lo = lows[i]
		}
	}
	return hi, lo
}
