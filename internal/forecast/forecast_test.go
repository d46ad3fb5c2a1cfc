package forecast

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDayLabel(t *testing.T) {
	tests := []struct {
		day  time.Time
		want string
	}{
		{time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), "Tomorrow's close estimate"}, // Monday
		{time.Date(2026, 10, 22, 9, 0, 0, 0, time.UTC), "Tomorrow's close estimate"}, // Thursday
		{time.Date(2026, 10, 23, 9, 0, 0, 0, time.UTC), "Monday forecast"},           // Friday
		{time.Date(2026, 10, 24, 9, 0, 0, 0, time.UTC), "Monday forecast"},           // Saturday
		{time.Date(2026, 10, 25, 9, 0, 0, 0, time.UTC), "Tomorrow's close estimate"}, // Sunday
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextDayLabel(tt.day), tt.day.Weekday().String())
	}
}

func TestSimulator_Bounds(t *testing.T) {
	friday := time.Date(2026, 10, 23, 9, 0, 0, 0, time.UTC)
	sim := NewSimulator(rand.NewSource(42), func() time.Time { return friday })
	last := 9875.0
	for i := 0; i < 500; i++ {
		est := sim.Estimate(last, friday)
		require.True(t, est.Simulated)
		assert.Equal(t, "Monday forecast", est.NextLabel)
		assert.GreaterOrEqual(t, float64(est.Today), last*(1-todayNoise))
		assert.LessOrEqual(t, float64(est.Today), last*(1+todayNoise)+1)
		assert.GreaterOrEqual(t, float64(est.Next), float64(est.Today)*(1-nextNoise))
		assert.LessOrEqual(t, float64(est.Next), float64(est.Today)*(1+nextNoise)+1)
		assert.Equal(t, est.Next-est.Today, est.Delta)
	}
}

func TestSimulator_Deterministic(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC) }
	a := NewSimulator(rand.NewSource(1), now).Estimate(4210, time.Time{})
	b := NewSimulator(rand.NewSource(1), now).Estimate(4210, time.Time{})
	assert.Equal(t, a, b)
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		v    int64
		want string
	}{
		{0, "Rp 0"},
		{5, "Rp 5"},
		{950, "Rp 950"},
		{9875, "Rp 9,875"},
		{1234567, "Rp 1,234,567"},
		{-4200, "Rp -4,200"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRupiah(tt.v))
	}
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+35", FormatDelta(35))
	assert.Equal(t, "-1,200", FormatDelta(-1200))
	assert.Equal(t, "0", FormatDelta(0))
}
