package collector

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BankLens/internal/forecast"
	"BankLens/internal/metrics"
	"BankLens/internal/model"
)

var banks = []string{"BBCA", "BBRI", "BMRI", "BBNI", "BBTN"}

func testCollector(f Fetcher) *Collector {
	c := NewCollector(f, banks, 60)
	fixed := time.Date(2026, 10, 21, 10, 0, 0, 0, time.UTC)
	c.Now = func() time.Time { return fixed }
	c.Simulator = forecast.NewSimulator(rand.NewSource(3), c.Now)
	return c
}

func TestAnalyze_MockData(t *testing.T) {
	mock := &MockFetcher{Price: 9800}
	c := testCollector(mock)

	a, err := c.Analyze(context.Background(), "bbca")
	require.NoError(t, err)
	assert.Equal(t, "BBCA", a.Ticker)
	assert.Equal(t, "BBCA.JK", a.Series.Symbol)
	assert.Len(t, a.Series.Bars, 60)
	assert.Len(t, a.Indicators.SMA20, 60)
	assert.Empty(t, a.Warnings)
	assert.NotEmpty(t, a.ID)

	// mock bars rise steadily
	assert.Equal(t, model.TrendAboveMA, a.Labels.Trend)
	assert.Equal(t, model.MomentumOverbought, a.Labels.Momentum)
	assert.Equal(t, model.CrossoverBullish, a.Labels.Crossover)
	assert.Equal(t, model.ActivityLow, a.Labels.Activity)
	assert.Len(t, a.Interpretations, 4)

	require.NotNil(t, a.Estimate)
	assert.True(t, a.Estimate.Simulated)
	assert.Equal(t, "Tomorrow's close estimate", a.Estimate.NextLabel)
}

func TestAnalyze_FetchFailureSkipsEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	c := testCollector(&MockFetcher{Err: errors.New("connection refused")})
	c.Metrics = rec

	a, err := c.Analyze(context.Background(), "BBRI")
	assert.Nil(t, a)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrFetchFailure)
	assert.Contains(t, err.Error(), "connection refused")

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.FetchTotal.WithLabelValues("mock", "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.AnalysesTotal.WithLabelValues("BBRI")))
}

func TestAnalyze_EmptyFetchIsFailure(t *testing.T) {
	c := testCollector(&MockFetcher{DailyData: []model.OHLCV{}})
	_, err := c.Analyze(context.Background(), "BMRI")
	assert.ErrorIs(t, err, model.ErrFetchFailure)
}

func TestAnalyze_UnknownTicker(t *testing.T) {
	mock := &MockFetcher{Price: 100}
	c := testCollector(mock)
	_, err := c.Analyze(context.Background(), "GOTO")
	assert.ErrorIs(t, err, model.ErrUnknownTicker)
	assert.Zero(t, mock.Calls)
}

func TestAnalyze_ShortHistory(t *testing.T) {
	c := testCollector(&MockFetcher{DailyData: generateMockBars(4200, 10)})
	a, err := c.Analyze(context.Background(), "BBTN")
	require.NoError(t, err)
	assert.NotEmpty(t, a.Warnings)
	assert.Equal(t, model.TrendUnknown, a.Labels.Trend)
	assert.Equal(t, model.MomentumUnknown, a.Labels.Momentum)
	assert.Equal(t, model.ActivityUnknown, a.Labels.Activity)
	assert.NotEqual(t, model.CrossoverUnknown, a.Labels.Crossover)
}

func TestAnalyze_SortsAndDedupes(t *testing.T) {
	base := generateMockBars(5000, 30)
	shuffled := make([]model.OHLCV, 0, 31)
	for i := len(base) - 1; i >= 0; i-- {
		shuffled = append(shuffled, base[i])
	}
	shuffled = append(shuffled, base[10])

	c := testCollector(&MockFetcher{DailyData: shuffled})
	a, err := c.Analyze(context.Background(), "BBNI")
	require.NoError(t, err)
	require.Len(t, a.Series.Bars, 30)
	assert.NoError(t, a.Series.Validate())
	// input left untouched
	assert.Equal(t, base[29].Time, shuffled[0].Time)
}
