package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BankLens/internal/model"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func sampleAnalysis(id string, at time.Time) *model.Analysis {
	return &model.Analysis{
		ID:     id,
		Ticker: "BBCA",
		Series: &model.PriceSeries{Ticker: "BBCA", Bars: []model.OHLCV{
			{Time: at.AddDate(0, 0, -1), Close: 9800, Volume: 2e6},
			{Time: at, Close: 9875, Volume: 3e6},
		}},
		Latest: model.LatestValues{
			Close: 9875, SMA20: model.Undefined(), RSI: 64.2,
			MACD: 12.5, MACDSignal: 10.1, Volume: 3e6, VolumeAvg: model.Undefined(),
		},
		Labels: model.Labels{
			Trend: model.TrendUnknown, Momentum: model.MomentumNeutral,
			Crossover: model.CrossoverBullish, Activity: model.ActivityUnknown,
		},
		Warnings:   []string{"SMA_20 short"},
		Estimate:   &model.Estimate{Today: 9880, Next: 9900, Delta: 20},
		ComputedAt: at,
	}
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r := newTestRecorder(t)
	t0 := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	require.NoError(t, r.RecordAnalysis(sampleAnalysis("a1", t0)))
	require.NoError(t, r.RecordAnalysis(sampleAnalysis("a2", t0.Add(time.Hour))))

	hist, err := r.History("BBCA", 10)
	require.NoError(t, err)
	require.Len(t, hist, 2)

	got := hist[0]
	assert.Equal(t, "a2", got.ID)
	assert.Equal(t, 2, got.Bars)
	assert.Equal(t, 9875.0, got.Close)
	assert.False(t, model.IsDefined(got.SMA20), "NaN should round-trip as undefined")
	assert.InDelta(t, 64.2, got.RSI, 1e-9)
	assert.Equal(t, model.CrossoverBullish, got.Crossover)
	assert.Equal(t, model.TrendUnknown, got.Trend)
	assert.Equal(t, int64(9900), got.EstNext)
	assert.Equal(t, 1, got.Warnings)
	assert.True(t, t0.Add(time.Hour).Equal(got.ComputedAt))
	assert.True(t, t0.Equal(got.BarDate))
}

func TestSQLiteRecorder_HistoryFiltersTicker(t *testing.T) {
	r := newTestRecorder(t)
	require.NoError(t, r.RecordAnalysis(sampleAnalysis("a1", time.Now())))

	hist, err := r.History("BBRI", 5)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestSQLiteRecorder_DuplicateID(t *testing.T) {
	r := newTestRecorder(t)
	a := sampleAnalysis("dup", time.Now())
	require.NoError(t, r.RecordAnalysis(a))
	assert.Error(t, r.RecordAnalysis(a))
}

func TestSQLiteRecorder_FetchFailure(t *testing.T) {
	r := newTestRecorder(t)
	require.NoError(t, r.RecordFetchFailure(&FetchFailure{Ticker: "BMRI", Source: "yahoo", Err: "timeout"}))

	var n int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM fetch_failures WHERE ticker = 'BMRI'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordAnalysis(sampleAnalysis("x", time.Now())))
	hist, err := r.History("BBCA", 1)
	assert.NoError(t, err)
	assert.Nil(t, hist)
	assert.NoError(t, r.Close())
}
