package argmap

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_LoadAccepted(t *testing.T) {
	tests := []struct {
		value string
		want  float32
	}{
		{value: "0.5", want: 0.5},
		{value: "+0.5", want: 0.5},
		{value: "-2", want: -2},
		{value: ".25", want: 0.25},
		{value: "1.", want: 1},
		{value: "1e-2", want: 0.01},
		{value: "2.5E1", want: 25},
		{value: "0.5f", want: 0.5},
		{value: "3D", want: 3},
		{value: " 0.75 ", want: 0.75},
		{value: "\t1\n", want: 1},
		{value: "0x1.8p1", want: 3},
		{value: "0X10P0", want: 16},
		{value: "Infinity", want: float32(math.Inf(1))},
		{value: "-Infinity", want: float32(math.Inf(-1))},
		{value: "1e39", want: float32(math.Inf(1))},
		{value: "-1e39", want: float32(math.Inf(-1))},
		{value: "1e-50", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			m, err := Parse("load=" + tt.value)
			require.NoError(t, err)

			got, ok := m.Float("load")
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_LoadNaN(t *testing.T) {
	for _, value := range []string{"NaN", "+NaN", "-NaN"} {
		t.Run(value, func(t *testing.T) {
			m, err := Parse("load=" + value)
			require.NoError(t, err)

			got, ok := m.Float("load")
			require.True(t, ok)
			assert.True(t, math.IsNaN(float64(got)))
		})
	}
}

func TestParse_LoadRejected(t *testing.T) {
	values := []string{
		"0_5",
		"1_0",
		"inf",
		"+inf",
		"infinity",
		"Inf",
		"nan",
		"NAN",
		"",
		" ",
		".",
		"e5",
		"1e",
		"1.0ff",
		"0x1.8",
		"0x_1p1",
		"--1",
		"high",
	}

	for _, value := range values {
		t.Run(value, func(t *testing.T) {
			m, err := Parse("load=" + value)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedValue))
			assert.Equal(t, 0, m.Len())

			var valErr *ValueError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, KindFloat, valErr.Kind)
		})
	}
}
