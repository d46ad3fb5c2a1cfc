package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BankLens/internal/model"
)

func seq(from, to float64) []float64 {
	var out []float64
	for v := from; v <= to; v++ {
		out = append(out, v)
	}
	return out
}

func countUndefined(s []float64) int {
	n := 0
	for _, v := range s {
		if !model.IsDefined(v) {
			n++
		}
	}
	return n
}

func TestSMA_ElevenPointScenario(t *testing.T) {
	closes := seq(10, 20)
	got := SMA(closes, 5)

	require.Len(t, got, 11)
	for i := 0; i < 4; i++ {
		assert.False(t, model.IsDefined(got[i]), "index %d should be undefined", i)
	}
	assert.Equal(t, 12.0, got[4])
	assert.Equal(t, 18.0, got[10])
}

func TestSMA_ShorterThanWindow(t *testing.T) {
	for n := 0; n < 20; n++ {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = float64(100 + i)
		}
		got := SMA(closes, 20)
		assert.Len(t, got, n)
		assert.Equal(t, n, countUndefined(got), "n=%d", n)
	}
}

func TestSMA_InvalidWindow(t *testing.T) {
	got := SMA([]float64{1, 2, 3}, 0)
	assert.Equal(t, 3, countUndefined(got))
}

func TestSMA_DoesNotMutateInput(t *testing.T) {
	closes := seq(1, 30)
	orig := append([]float64(nil), closes...)
	_ = SMA(closes, 7)
	assert.Equal(t, orig, closes)
}

func TestEMA_SeededWithFirstValue(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		span   int
	}{
		{"single", []float64{42}, 20},
		{"rising", seq(1, 40), 12},
		{"shorter than span", []float64{5, 6, 7}, 26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EMA(tt.closes, tt.span)
			require.Len(t, got, len(tt.closes))
			assert.Equal(t, tt.closes[0], got[0])
			assert.Zero(t, countUndefined(got))
		})
	}
}

func TestEMA_Recursion(t *testing.T) {
	closes := []float64{10, 11, 12}
	got := EMA(closes, 3) // alpha 0.5
	assert.InDelta(t, 10.0, got[0], 1e-12)
	assert.InDelta(t, 10.5, got[1], 1e-12)
	assert.InDelta(t, 11.25, got[2], 1e-12)
}

func TestEMA_SkipsLeadingUndefined(t *testing.T) {
	nan := math.NaN()
	got := EMA([]float64{nan, nan, 4, 6}, 3)
	assert.False(t, model.IsDefined(got[0]))
	assert.False(t, model.IsDefined(got[1]))
	assert.Equal(t, 4.0, got[2])
	assert.Equal(t, 5.0, got[3])
}

func TestEMA_Empty(t *testing.T) {
	assert.Empty(t, EMA(nil, 20))
}
