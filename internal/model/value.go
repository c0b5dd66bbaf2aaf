package model

import "encoding/json"

// Value is one element of an indicator series. Positions that lack enough
// history carry Valid=false rather than a NaN or a made-up neutral number.
type Value struct {
	F     float64
	Valid bool
}

// Some wraps a defined value.
func Some(f float64) Value { return Value{F: f, Valid: true} }

// None is the undefined marker.
func None() Value { return Value{} }

// MarshalJSON renders an undefined value as null so presentation layers can
// choose their own display fallback.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.F)
}

// UnmarshalJSON accepts null or a number.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	if err := json.Unmarshal(data, &v.F); err != nil {
		return err
	}
	v.Valid = true
	return nil
}

// IndicatorSeries is a named numeric sequence positionally aligned with the
// input Series: same length, same index meaning.
type IndicatorSeries []Value

// NewIndicatorSeries allocates an all-undefined series of length n.
func NewIndicatorSeries(n int) IndicatorSeries {
	return make(IndicatorSeries, n)
}

// Last returns the final element, or an undefined Value for an empty series.
func (s IndicatorSeries) Last() Value {
	if len(s) == 0 {
		return None()
	}
	return s[len(s)-1]
}

// At returns the element at index i counted from the end: At(0) is the last
// element, At(1) the one before it. Out-of-range indexes are undefined.
func (s IndicatorSeries) At(back int) Value {
	i := len(s) - 1 - back
	if i < 0 || i >= len(s) {
		return None()
	}
	return s[i]
}

// AllUndefined reports whether no position holds a defined value.
func (s IndicatorSeries) AllUndefined() bool {
	for _, v := range s {
		if v.Valid {
			return false
		}
	}
	return true
}
