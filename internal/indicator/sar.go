package indicator

import "StockLens/internal/model"

// sarState carries the Parabolic SAR working variables between bars: the
// current trend, the extreme point since the last reversal and the
// acceleration factor. Keeping it an explicit struct keeps the bar-by-bar
// transition testable in isolation.
type sarState struct {
	bullish bool
	ep      float64 // extreme point since last reversal
	af      float64 // acceleration factor
	sar     float64
}

// step advances the state by one bar and returns the SAR value for it.
func (s *sarState) step(high, low, accel, maxAccel float64) float64 {
	raw := s.sar + s.af*(s.ep-s.sar)

	if s.bullish {
		if raw > low {
			// Reversal: SAR jumps to the prior extreme point.
			s.bullish = false
			s.sar = s.ep
			s.ep = low
			s.af = accel
			return s.sar
		}
		s.sar = raw
		if high > s.ep {
			s.ep = high
			s.af = minf(s.af+accel, maxAccel)
		}
		return s.sar
	}

	if raw < high {
		s.bullish = true
		s.sar = s.ep
		s.ep = high
		s.af = accel
		return s.sar
	}
	s.sar = raw
	if low < s.ep {
		s.ep = low
		s.af = minf(s.af+accel, maxAccel)
	}
	return s.sar
}

// ParabolicSAR computes the Parabolic Stop-and-Reverse series. The state is
// seeded bullish from the first bar (EP = high[0], SAR = low[0]) and must be
// advanced strictly in bar order; this is the one indicator that cannot be
// evaluated position-by-position. Fewer than two bars yield no defined values.
func ParabolicSAR(highs, lows []float64, accel, maxAccel float64) model.IndicatorSeries {
	n := len(highs)
	out := model.NewIndicatorSeries(n)
	if n < 2 || accel <= 0 || maxAccel < accel {
		return out
	}

	st := sarState{bullish: true, ep: highs[0], af: accel, sar: lows[0]}
	out[0] = model.Some(st.sar)
	for i := 1; i < n; i++ {
		out[i] = model.Some(st.step(highs[i], lows[i], accel, maxAccel))
	}
	return out
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
