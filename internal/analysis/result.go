package analysis

import (
	"StockLens/internal/indicator"
	"StockLens/internal/model"
)

// ResultTable holds every computed indicator column, all positionally aligned
// with the input series. The column set is closed: a fixed struct rather than
// an open string-keyed record, so a missing or misspelled column is a compile
// error instead of a silent nil lookup. The table lives for one session and is
// never persisted.
type ResultTable struct {
	Ticker string
	Length int

	// Moving averages keyed by period (the one dynamically-sized column
	// family; the period set comes from configuration).
	MA map[int]model.IndicatorSeries

	RSI model.IndicatorSeries

	MACD       model.IndicatorSeries
	MACDSignal model.IndicatorSeries
	MACDHist   model.IndicatorSeries

	BBMiddle    model.IndicatorSeries
	BBUpper     model.IndicatorSeries
	BBLower     model.IndicatorSeries
	BBPercentB  model.IndicatorSeries
	BBBandwidth model.IndicatorSeries

	ATR model.IndicatorSeries

	StochK model.IndicatorSeries
	StochD model.IndicatorSeries

	ADX     model.IndicatorSeries
	PlusDI  model.IndicatorSeries
	MinusDI model.IndicatorSeries

	SAR model.IndicatorSeries

	OBV      model.IndicatorSeries
	VWAP     model.IndicatorSeries
	VolumeMA model.IndicatorSeries

	IchimokuConversion model.IndicatorSeries
	IchimokuBase       model.IndicatorSeries
	IchimokuLeadingA   model.IndicatorSeries
	IchimokuLeadingB   model.IndicatorSeries
	IchimokuLagging    model.IndicatorSeries

	// Point-in-time outputs, not series.
	Pivots    indicator.PivotLevels
	Fibonacci []indicator.FibLevel
	Levels    indicator.Levels
}

// Summary is the point-in-time view handed to presentation: the last price,
// the last defined value of each headline indicator and the signal list.
type Summary struct {
	Ticker      string                `json:"ticker"`
	LastPrice   float64               `json:"last_price"`
	LastDate    string                `json:"last_date"`
	RSI         model.Value           `json:"rsi"`
	MACD        model.Value           `json:"macd"`
	MACDSignal  model.Value           `json:"macd_signal"`
	PercentB    model.Value           `json:"bb_percent_b"`
	ATR         model.Value           `json:"atr"`
	ADX         model.Value           `json:"adx"`
	SAR         model.Value           `json:"sar"`
	StochK      model.Value           `json:"stoch_k"`
	VWAP        model.Value           `json:"vwap"`
	VolumeRatio model.Value           `json:"volume_ratio"`
	MA          map[int]model.Value   `json:"ma"`
	Pivots      indicator.PivotLevels `json:"pivots"`
	Levels      indicator.Levels      `json:"levels"`
	Signals     []model.Signal        `json:"signals"`
}

// Summarize condenses the table and a signal list into a Summary for the
// given series.
func (t *ResultTable) Summarize(series *model.Series, signals []model.Signal) Summary {
	last := series.Last()
	ma := make(map[int]model.Value, len(t.MA))
	for period, col := range t.MA {
		ma[period] = col.Last()
	}

	var volumeRatio model.Value
	if vma := t.VolumeMA.Last(); vma.Valid && vma.F != 0 {
		volumeRatio = model.Some(float64(last.Volume) / vma.F)
	}

	return Summary{
		Ticker:      t.Ticker,
		LastPrice:   last.Close,
		LastDate:    last.Date.Format("2006-01-02"),
		RSI:         t.RSI.Last(),
		MACD:        t.MACD.Last(),
		MACDSignal:  t.MACDSignal.Last(),
		PercentB:    t.BBPercentB.Last(),
		ATR:         t.ATR.Last(),
		ADX:         t.ADX.Last(),
		SAR:         t.SAR.Last(),
		StochK:      t.StochK.Last(),
		VWAP:        t.VWAP.Last(),
		VolumeRatio: volumeRatio,
		MA:          ma,
		Pivots:      t.Pivots,
		Levels:      t.Levels,
		Signals:     signals,
	}
}
