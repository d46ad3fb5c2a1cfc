// Package report builds the plain-text reports offered for download.
package report

import (
	"fmt"
	"strings"
	"time"

	"BankLens/internal/forecast"
	"BankLens/internal/model"
)

const rule = "============================================================"
const thin = "------------------------------------------------------------"

// FeatureImportanceFilename names the downloadable report for ticker.
func FeatureImportanceFilename(ticker string) string {
	return fmt.Sprintf("Laporan_FI_%s.txt", ticker)
}

// FeatureImportance renders the feature-importance report for one ticker.
// It fails with model.ErrMissingReference if either importance section is
// absent from the summary.
func FeatureImportance(ticker string, s model.DatasetSummary, now time.Time) (string, error) {
	if s.GlobalImportance == nil || s.FeatureImportance == nil {
		return "", fmt.Errorf("%w: %s has no feature importance section", model.ErrMissingReference, ticker)
	}
	gi := s.GlobalImportance
	fi := s.FeatureImportance

	generated := gi.ReportGenDate
	if generated == "" {
		generated = now.Format("2006-01-02")
	}

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("       FEATURE IMPORTANCE ANALYSIS REPORT (FINAL)\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n", generated))
	b.WriteString(fmt.Sprintf("Target Bank: %s\n", ticker))
	b.WriteString(thin + "\n")
	b.WriteString(fmt.Sprintf("Dominant Category: %s (%.2f%%)\n", gi.TopCategory.Name, gi.TopCategory.Percentage))
	b.WriteString(fmt.Sprintf("Consistent Features: %s\n\n", strings.Join(gi.MostConsistent, ", ")))
	b.WriteString(fmt.Sprintf("TOP FEATURES FOR %s:\n", ticker))
	for i, f := range fi.Top10 {
		if i == 5 {
			break
		}
		b.WriteString(fmt.Sprintf("%d. %s (%.2f%%)\n", i+1, f.Feature, f.Percentage))
	}
	if len(fi.Top10) == 0 {
		b.WriteString("(no ranked features)\n")
	}
	b.WriteString(fmt.Sprintf("\nPotential reduction to ~%s features.\n", gi.ReductionPotential.To))
	b.WriteString(rule + "\n")
	return b.String(), nil
}

// DatasetDetail renders the dataset metadata block of the data collection page.
func DatasetDetail(s model.DatasetSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("File: %s\n", s.File))
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.Rows))
	b.WriteString(fmt.Sprintf("Columns: %s\n", strings.Join(s.Columns, ", ")))
	b.WriteString(fmt.Sprintf("Date Range: %s\n", s.DateRange))
	b.WriteString(fmt.Sprintf("Price Range: %s\n", s.PriceRange))
	b.WriteString(fmt.Sprintf("Average Volume: %s\n", s.AvgVolume))
	b.WriteString(fmt.Sprintf("Missing Values: %s\n", s.MissingValues))
	b.WriteString(fmt.Sprintf("Status: %s\n", s.Status))
	return b.String()
}

// Analysis renders a live analysis as plain text for the CLI.
func Analysis(a *model.Analysis) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Live technical analysis: %s (%s)\n", a.Ticker, a.Series.Symbol))
	if last, ok := a.Series.Last(); ok {
		b.WriteString(fmt.Sprintf("Last bar: %s  close %.2f  volume %.0f\n",
			last.Time.Format("2006-01-02"), last.Close, last.Volume))
	}
	b.WriteString(fmt.Sprintf("Bars: %d\n\n", a.Series.Len()))

	b.WriteString(fmt.Sprintf("SMA20 %s | RSI14 %s | MACD %s / signal %s\n",
		num(a.Latest.SMA20), num(a.Latest.RSI), num(a.Latest.MACD), num(a.Latest.MACDSignal)))
	b.WriteString(fmt.Sprintf("Range %s - %s | position %s\n\n",
		num(a.Latest.RangeLow), num(a.Latest.RangeHigh), percent(a.Latest.RangePos)))

	for i, it := range a.Interpretations {
		b.WriteString(fmt.Sprintf("%d. %s: %s\n   %s\n", i+1, it.Heading, it.Status, it.Detail))
	}

	if len(a.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range a.Warnings {
			b.WriteString("  - " + w + "\n")
		}
	}

	if e := a.Estimate; e != nil {
		b.WriteString(fmt.Sprintf("\n%s (simulated, not a model prediction)\n", e.NextLabel))
		b.WriteString(fmt.Sprintf("  Today estimate: %s\n", forecast.FormatRupiah(e.Today)))
		b.WriteString(fmt.Sprintf("  %s: %s (%s)\n", e.NextLabel, forecast.FormatRupiah(e.Next), forecast.FormatDelta(e.Delta)))
	}
	return b.String()
}

func num(v float64) string {
	if !model.IsDefined(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func percent(v float64) string {
	if !model.IsDefined(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", v*100)
}
