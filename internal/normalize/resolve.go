package normalize

import (
	"encoding/json"
	"math"

	"energy-insights/internal/model"
)

// Resolve returns the first candidate key of rec holding a finite number.
// It returns nil if rec is nil or no candidate yields one. Strings and bools
// are never coerced.
func Resolve(rec model.Record, keys []string) *float64 {
	if rec == nil {
		return nil
	}
	for _, k := range keys {
		v, ok := rec[k]
		if !ok {
			continue
		}
		if f, ok := toFinite(v); ok {
			return &f
		}
	}
	return nil
}

// toFinite accepts values that already are numbers. json.Number is accepted
// because decoders using UseNumber produce it for numeric literals only.
func toFinite(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Finite reports whether p points at a finite number.
func Finite(p *float64) bool {
	return p != nil && !math.IsNaN(*p) && !math.IsInf(*p, 0)
}
