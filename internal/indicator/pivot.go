package indicator

// PivotLevels holds the classic floor-trader pivot points derived from the
// most recent bar. This is a single-point calculation, not a series.
type PivotLevels struct {
	Pivot float64 `json:"pivot"`
	R1    float64 `json:"r1"`
	R2    float64 `json:"r2"`
	R3    float64 `json:"r3"`
	S1    float64 `json:"s1"`
	S2    float64 `json:"s2"`
	S3    float64 `json:"s3"`
}

// PivotPoints computes the classic pivot formula from a high/low/close.
func PivotPoints(high, low, close float64) PivotLevels {
	pivot := (high + low + close) / 3
	return PivotLevels{
		Pivot: pivot,
		R1:    2*pivot - low,
		S1:    2*pivot - high,
		R2:    pivot + (high - low),
		S2:    pivot - (high - low),
		R3:    high + 2*(pivot-low),
		S3:    low - 2*(high-pivot),
	}
}
