package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BankLens/internal/model"
)

func wave(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 9000 + 150*math.Sin(float64(i)/5) + float64(i)
	}
	return out
}

func TestMACD_HistogramIdentity(t *testing.T) {
	closes := wave(60)
	m := MACD(closes, 12, 26, 9)
	require.Len(t, m.Line, 60)
	require.Len(t, m.Signal, 60)
	require.Len(t, m.Histogram, 60)
	for i := range closes {
		if !model.IsDefined(m.Histogram[i]) {
			continue
		}
		assert.Equal(t, m.Line[i]-m.Signal[i], m.Histogram[i], "index %d", i)
	}
}

func TestMACD_StartsAtZero(t *testing.T) {
	m := MACD(wave(40), 12, 26, 9)
	assert.Equal(t, 0.0, m.Line[0])
	assert.Equal(t, 0.0, m.Signal[0])
	assert.Equal(t, 0.0, m.Histogram[0])
}

func TestMACD_Empty(t *testing.T) {
	m := MACD(nil, 12, 26, 9)
	assert.Empty(t, m.Line)
	assert.Empty(t, m.Signal)
	assert.Empty(t, m.Histogram)
}

func sameBits(t *testing.T, a, b []float64) {
	t.Helper()
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, math.Float64bits(a[i]), math.Float64bits(b[i]), "index %d", i)
	}
}

func TestIndicators_Idempotent(t *testing.T) {
	closes := wave(80)
	orig := append([]float64(nil), closes...)

	sameBits(t, SMA(closes, 20), SMA(closes, 20))
	sameBits(t, EMA(closes, 20), EMA(closes, 20))
	sameBits(t, RSI(closes, 14), RSI(closes, 14))
	a, b := MACD(closes, 12, 26, 9), MACD(closes, 12, 26, 9)
	sameBits(t, a.Line, b.Line)
	sameBits(t, a.Signal, b.Signal)
	sameBits(t, a.Histogram, b.Histogram)

	assert.Equal(t, orig, closes)
}
