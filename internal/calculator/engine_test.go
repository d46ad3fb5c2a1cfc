package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BankLens/internal/model"
)

func TestCompute_EmptySeries(t *testing.T) {
	series := &model.PriceSeries{Ticker: "BBCA"}
	set, warnings := Compute(series, DefaultParams())

	for name, s := range set.Named() {
		assert.Empty(t, s, name)
	}
	assert.NotEmpty(t, warnings)

	lv := Latest(series, set)
	assert.False(t, model.IsDefined(lv.Close))
	assert.False(t, model.IsDefined(lv.SMA20))
	assert.False(t, model.IsDefined(lv.RSI))
	assert.False(t, model.IsDefined(lv.RangePos))
}

func TestLatest_RangePosition(t *testing.T) {
	// highs 11..31, lows 9..29, last close 30
	series := &model.PriceSeries{Ticker: "BMRI", Bars: barsFrom(seq(10, 30))}
	set, _ := Compute(series, DefaultParams())
	lv := Latest(series, set)
	assert.Equal(t, 31.0, lv.RangeHigh)
	assert.Equal(t, 9.0, lv.RangeLow)
	assert.InDelta(t, 21.0/22.0, lv.RangePos, 1e-12)
}

func TestCompute_AlignedLengths(t *testing.T) {
	series := &model.PriceSeries{Ticker: "BBRI", Bars: barsFrom(wave(60))}
	set, warnings := Compute(series, DefaultParams())
	assert.Empty(t, warnings)
	for name, s := range set.Named() {
		assert.Len(t, s, 60, name)
	}

	lv := Latest(series, set)
	assert.Equal(t, series.Bars[59].Close, lv.Close)
	assert.Equal(t, set.SMA20[59], lv.SMA20)
	assert.Equal(t, set.RSI14[59], lv.RSI)
	assert.Equal(t, 1000.0, lv.VolumeAvg)
}

func TestCompute_ShortSeriesWarns(t *testing.T) {
	series := &model.PriceSeries{Ticker: "BBTN", Bars: barsFrom(seq(1, 15))}
	set, warnings := Compute(series, DefaultParams())
	require.NotEmpty(t, warnings)

	joined := ""
	for _, w := range warnings {
		joined += w + "\n"
	}
	assert.Contains(t, joined, model.IndicatorSMA20)
	assert.Contains(t, joined, model.IndicatorMACD)
	assert.NotContains(t, joined, model.IndicatorRSI14)
	assert.Equal(t, 15, countUndefined(set.SMA20))
	assert.Equal(t, 13, countUndefined(set.RSI14))
}
