package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BankLens/internal/model"
)

func summaryWithImportance() model.DatasetSummary {
	s := model.DatasetSummary{
		FeatureImportance: &model.FeatureImportance{
			Top5Contribution: 91.4,
			Features80Count:  3,
			Top10: []model.FeatureWeight{
				{Feature: "Close_Lag1", Percentage: 52},
				{Feature: "SMA_5", Percentage: 21},
				{Feature: "EMA_5", Percentage: 10},
			},
		},
		GlobalImportance: &model.GlobalImportance{MostConsistent: []string{"Close_Lag1", "SMA_5"}},
	}
	s.GlobalImportance.TopCategory.Name = "Trend"
	s.GlobalImportance.TopCategory.Percentage = 78.5
	s.GlobalImportance.ReductionPotential.To = "8"
	return s
}

func TestFeatureImportance(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	out, err := FeatureImportance("BBCA", summaryWithImportance(), now)
	require.NoError(t, err)

	assert.Contains(t, out, "Generated: 2026-10-19")
	assert.Contains(t, out, "Target Bank: BBCA")
	assert.Contains(t, out, "Dominant Category: Trend (78.50%)")
	assert.Contains(t, out, "Consistent Features: Close_Lag1, SMA_5")
	assert.Contains(t, out, "1. Close_Lag1 (52.00%)")
	assert.Contains(t, out, "3. EMA_5 (10.00%)")
	assert.Contains(t, out, "~8 features")
	assert.True(t, strings.HasPrefix(out, rule))
}

func TestFeatureImportance_Missing(t *testing.T) {
	_, err := FeatureImportance("BBNI", model.DatasetSummary{}, time.Now())
	assert.ErrorIs(t, err, model.ErrMissingReference)
}

func TestFeatureImportanceFilename(t *testing.T) {
	assert.Equal(t, "Laporan_FI_BMRI.txt", FeatureImportanceFilename("BMRI"))
}

func TestDatasetDetail(t *testing.T) {
	out := DatasetDetail(model.DatasetSummary{
		File: "BBRI_raw.csv", Rows: 730, Columns: []string{"Date", "Close"},
		DateRange: "2022-10-17 to 2025-10-17", Status: "Clean", MissingValues: "0",
	})
	assert.Contains(t, out, "File: BBRI_raw.csv")
	assert.Contains(t, out, "Rows: 730")
	assert.Contains(t, out, "Columns: Date, Close")
	assert.Contains(t, out, "Missing Values: 0")
}

func TestAnalysis(t *testing.T) {
	a := &model.Analysis{
		Ticker: "BBTN",
		Series: &model.PriceSeries{Ticker: "BBTN", Symbol: "BBTN.JK", Bars: []model.OHLCV{
			{Time: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), Close: 1250, Volume: 1e6},
		}},
		Latest: model.LatestValues{
			Close: 1250, SMA20: model.Undefined(), RSI: model.Undefined(),
			MACD: 0, MACDSignal: 0,
			RangeHigh: 1300, RangeLow: 1200, RangePos: 0.5,
		},
		Interpretations: []model.Interpretation{{Heading: "Price Action", Status: "Not enough history for SMA20"}},
		Warnings:        []string{"SMA_20 needs 20 bars, have 1: insufficient history"},
		Estimate:        &model.Estimate{Today: 1251, Next: 1255, Delta: 4, NextLabel: "Monday forecast", Simulated: true},
	}
	out := Analysis(a)
	assert.Contains(t, out, "BBTN (BBTN.JK)")
	assert.Contains(t, out, "SMA20 n/a")
	assert.Contains(t, out, "Range 1200.00 - 1300.00 | position 50%")
	assert.Contains(t, out, "Warnings:")
	assert.Contains(t, out, "simulated")
	assert.Contains(t, out, "Rp 1,255 (+4)")
}
