package normalize

import (
	"encoding/json"
	"math"
	"testing"

	"energy-insights/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		rec  model.Record
		keys []string
		want *float64
	}{
		{"nil record", nil, []string{"a"}, nil},
		{"no keys", model.Record{"a": 1.0}, nil, nil},
		{"first present wins", model.Record{"a": 1.0, "b": 2.0}, []string{"a", "b"}, ptr(1)},
		{"falls through to second", model.Record{"b": 2.0}, []string{"a", "b"}, ptr(2)},
		{"null skipped", model.Record{"a": nil, "b": 3.0}, []string{"a", "b"}, ptr(3)},
		{"string not coerced", model.Record{"a": "12", "b": 4.0}, []string{"a", "b"}, ptr(4)},
		{"bool not coerced", model.Record{"a": true}, []string{"a"}, nil},
		{"nan skipped", model.Record{"a": math.NaN(), "b": 5.0}, []string{"a", "b"}, ptr(5)},
		{"inf skipped", model.Record{"a": math.Inf(1)}, []string{"a"}, nil},
		{"int accepted", model.Record{"a": 7}, []string{"a"}, ptr(7)},
		{"json number accepted", model.Record{"a": json.Number("2.5")}, []string{"a"}, ptr(2.5)},
		{"zero is a value", model.Record{"a": 0.0, "b": 9.0}, []string{"a", "b"}, ptr(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.rec, tt.keys)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestFinite(t *testing.T) {
	assert.False(t, Finite(nil))
	assert.False(t, Finite(ptr(math.NaN())))
	assert.False(t, Finite(ptr(math.Inf(-1))))
	assert.True(t, Finite(ptr(-3)))
}

func ptr(v float64) *float64 { return &v }
