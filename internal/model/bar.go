package model

import (
	"fmt"
	"time"
)

// Bar represents a single daily candlestick.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Series is an ordered sequence of daily bars, ascending by date with no
// duplicate dates. The analysis engine borrows it read-only and never mutates it.
type Series struct {
	Ticker string
	Bars   []Bar
}

// Len returns the number of bars in the series.
func (s *Series) Len() int { return len(s.Bars) }

// Closes extracts the close prices in bar order.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Highs extracts the high prices in bar order.
func (s *Series) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low prices in bar order.
func (s *Series) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Low
	}
	return out
}

// Volumes extracts the volumes in bar order, widened to float64 for window math.
func (s *Series) Volumes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = float64(b.Volume)
	}
	return out
}

// Last returns the most recent bar. It panics on an empty series, so callers
// must check Len first.
func (s *Series) Last() Bar { return s.Bars[len(s.Bars)-1] }

// Validate checks the input contract: ascending unique dates, high >= low,
// non-negative volume. Data sources must reject bad bars before analysis.
func (s *Series) Validate() error {
	for i, b := range s.Bars {
		if b.High < b.Low {
			return fmt.Errorf("bar %d (%s): high %.4f < low %.4f", i, b.Date.Format("2006-01-02"), b.High, b.Low)
		}
		if b.Volume < 0 {
			return fmt.Errorf("bar %d (%s): negative volume %d", i, b.Date.Format("2006-01-02"), b.Volume)
		}
		if i > 0 && !s.Bars[i-1].Date.Before(b.Date) {
			return fmt.Errorf("bar %d (%s): date not after previous bar", i, b.Date.Format("2006-01-02"))
		}
	}
	return nil
}
