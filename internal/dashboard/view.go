package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"BankLens/internal/forecast"
	"BankLens/internal/model"
	"BankLens/internal/report"
)

// Metric is a labelled figure, optionally with a small note below it.
type Metric struct {
	Label string
	Value string
	Note  string
}

// Table is a plain header plus rows grid.
type Table struct {
	Header []string
	Rows   [][]string
}

// Image is a resolved chart image.
type Image struct {
	URL string
	Alt string
}

// Chart is one rendered svg panel.
type Chart struct {
	Title string
	SVG   template.HTML
}

// EstimateView is the formatted simulated estimate.
type EstimateView struct {
	Label   string
	Today   string
	Next    string
	Delta   string
	LastBar string
}

// LiveView is the bound state of the live demo section.
type LiveView struct {
	Ticker          string
	Ran             bool
	RunURL          string
	Error           string
	Charts          []Chart
	Interpretations []model.Interpretation
	Range           *Metric
	Warnings        []string
	Estimate        *EstimateView
}

// SectionView is a Section with its data bound for one ticker.
type SectionView struct {
	Title    string
	Bullets  []string
	Metrics  []Metric
	Code     string
	Table    *Table
	Images   []Image
	Caption  string
	Success  string
	Info     string
	Warning  string
	Error    string
	Download string
	Live     *LiveView
}

// TabView groups bound sections.
type TabView struct {
	Name     string
	Sections []SectionView
}

// NavItem is one sidebar link.
type NavItem struct {
	Title  string
	URL    string
	Active bool
}

// PageView is everything the page template needs.
type PageView struct {
	Title   string
	Heading string
	Ticker  string
	Index   int
	Tickers []string
	Nav     []NavItem
	Tabs    []TabView
}

func withTicker(s, ticker string) string {
	return strings.ReplaceAll(s, "%s", ticker)
}

func pageURL(index int, ticker string) string {
	return fmt.Sprintf("/page/%d?ticker=%s", index, url.QueryEscape(ticker))
}

// buildPage binds every section of p for ticker. runLive triggers the
// fetch on the live page.
func (s *Server) buildPage(ctx context.Context, p Page, ticker string, runLive bool) PageView {
	v := PageView{
		Title:   p.Title,
		Heading: withTicker(p.Heading, ticker),
		Ticker:  ticker,
		Index:   p.Index,
		Tickers: s.tickers,
	}
	for _, other := range Pages {
		v.Nav = append(v.Nav, NavItem{
			Title:  other.Title,
			URL:    pageURL(other.Index, ticker),
			Active: other.Index == p.Index,
		})
	}
	for _, tab := range p.Tabs {
		tv := TabView{Name: tab.Name}
		for _, sec := range tab.Sections {
			tv.Sections = append(tv.Sections, s.bindSection(ctx, p, sec, ticker, runLive))
		}
		v.Tabs = append(v.Tabs, tv)
	}
	return v
}

func (s *Server) bindSection(ctx context.Context, p Page, sec Section, ticker string, runLive bool) SectionView {
	v := SectionView{
		Title:   withTicker(sec.Title, ticker),
		Bullets: sec.Bullets,
		Caption: withTicker(sec.Caption, ticker),
		Images:  s.images(sec.Images, ticker),
	}

	switch sec.Kind {
	case KindText:
	case KindHeadline:
		m, err := s.reference.Metrics(ticker)
		if err != nil {
			v.Warning = missingMessage(err, "Model metrics")
			break
		}
		v.Success = fmt.Sprintf("R² Score: %.4f", m.R2)
		v.Metrics = []Metric{
			{Label: "MAE", Value: fmt.Sprintf("%.4f", m.MAE)},
			{Label: "MAPE", Value: fmt.Sprintf("%.2f%%", m.MAPE)},
			{Label: "RMSE", Value: fmt.Sprintf("%.4f", m.RMSE)},
		}
	case KindLive:
		v.Live = s.bindLive(ctx, p, ticker, runLive)
	default:
		sum, err := s.reference.Summary(ticker)
		if err != nil {
			v.Warning = missingMessage(err, "Dataset summary")
			break
		}
		bindSummary(&v, sec.Kind, ticker, sum, s.now())
	}
	return v
}

func missingMessage(err error, what string) string {
	if errors.Is(err, model.ErrMissingReference) {
		return fmt.Sprintf("%s not available yet: %v", what, err)
	}
	return err.Error()
}

func bindSummary(v *SectionView, kind SectionKind, ticker string, sum model.DatasetSummary, now time.Time) {
	switch kind {
	case KindDatasetDetail:
		v.Code = report.DatasetDetail(sum)

	case KindCleaning:
		v.Metrics = []Metric{
			{Label: "Data shape", Value: orNA(sum.Shape.String())},
			{Label: "Duplicates", Value: orZero(sum.Duplicates.String())},
			{Label: "Missing values", Value: orZero(sum.MissingValues.String())},
		}
		if len(sum.DescStats) > 0 {
			v.Table = descStatsTable(sum.DescStats)
		}

	case KindScaling:
		if sum.NormVerification == nil {
			v.Warning = "Normalisation check not available for " + ticker + "."
			return
		}
		v.Info = fmt.Sprintf("%d rows, %d columns", sum.Rows, len(sum.Columns))
		v.Metrics = []Metric{
			{Label: "Normalized Close", Value: "0.0000 - 1.0000", Note: "Original: " + sum.PriceRange.String()},
			{Label: "Normalized Volume", Value: "0.0000 - 1.0000", Note: "Original: " + sum.AvgVolume.String() + " (avg)"},
		}
		if r, ok := sum.NormVerification["RSI"]; ok {
			v.Metrics = append(v.Metrics, Metric{
				Label: "Normalized RSI", Value: fmt.Sprintf("%.2f - %.2f", r.Min, r.Max), Note: "Momentum scaled",
			})
		}

	case KindSplit:
		if sum.SplitDetails == nil {
			v.Warning = "Split details not available for " + ticker + "."
			return
		}
		sd := sum.SplitDetails
		v.Metrics = []Metric{
			{Label: "Split date", Value: sd.SplitDate},
			{Label: "Train", Value: fmt.Sprintf("%d rows", sd.TrainRows), Note: sd.TrainPct.String()},
			{Label: "Test", Value: fmt.Sprintf("%d rows", sd.TestRows), Note: sd.TestPct.String()},
		}
		if c, ok := sum.SplitStats["Close"]; ok {
			v.Table = &Table{
				Header: []string{"Metric", "Train set", "Test set"},
				Rows: [][]string{
					{"Mean", fmt.Sprintf("%.6f", c["Train Mean"]), fmt.Sprintf("%.6f", c["Test Mean"])},
					{"Std dev", fmt.Sprintf("%.6f", c["Train Std"]), fmt.Sprintf("%.6f", c["Test Std"])},
				},
			}
		}

	case KindTuning:
		if sum.BaselinePerf == nil && sum.TuningResults == nil {
			v.Warning = "Training results not available for " + ticker + "."
			return
		}
		if bp := sum.BaselinePerf; bp != nil {
			v.Metrics = append(v.Metrics,
				Metric{Label: "Baseline train R²", Value: fmt.Sprintf("%.4f", bp.TrainR2)},
				Metric{Label: "Baseline test R²", Value: fmt.Sprintf("%.4f", bp.TestR2)},
				Metric{Label: "Baseline MAE", Value: fmt.Sprintf("%.4f", bp.MAE)},
				Metric{Label: "Training time", Value: fmt.Sprintf("%.2fs", bp.Time)},
			)
		}
		if tr := sum.TuningResults; tr != nil {
			v.Metrics = append(v.Metrics,
				Metric{Label: "Final tuned R²", Value: fmt.Sprintf("%.4f", tr.FinalR2), Note: fmt.Sprintf("%+.6f", tr.Improvement)},
				Metric{Label: "Best max depth", Value: orNA(tr.BestParams["max_depth"].String())},
				Metric{Label: "Best estimators", Value: orNA(tr.BestParams["n_estimators"].String())},
			)
		}

	case KindScores:
		cm := sum.ComprehensiveMetrics
		if cm == nil {
			v.Warning = "Evaluation scores not available for " + ticker + "."
			return
		}
		v.Metrics = []Metric{
			{Label: "MAE", Value: fmt.Sprintf("%.6f", cm.Test.MAE)},
			{Label: "RMSE", Value: fmt.Sprintf("%.6f", cm.Test.RMSE)},
			{Label: "R² Score", Value: fmt.Sprintf("%.6f", cm.Test.R2)},
			{Label: "MAPE", Value: fmt.Sprintf("%.2f%%", cm.Test.MAPE)},
		}
		v.Info = "Status: " + orNA(cm.GapAnalysis.Status)

	case KindFeatureImportance:
		fi := sum.FeatureImportance
		if fi == nil {
			v.Warning = "Feature importance not available for " + ticker + "."
			return
		}
		top := "N/A"
		if len(fi.Top10) > 0 {
			top = fi.Top10[0].Feature
		}
		v.Metrics = []Metric{
			{Label: "Top 5 contribution", Value: fmt.Sprintf("%.2f%%", fi.Top5Contribution)},
			{Label: "Features for 80% importance", Value: fmt.Sprintf("%d / 20", fi.Features80Count)},
			{Label: "Most important feature", Value: top},
		}

	case KindFIReport:
		text, err := report.FeatureImportance(ticker, sum, now)
		if err != nil {
			v.Warning = missingMessage(err, "Feature importance report")
			return
		}
		v.Code = text
		v.Download = "/report/" + url.PathEscape(ticker)
	}
}

func (s *Server) bindLive(ctx context.Context, p Page, ticker string, run bool) *LiveView {
	lv := &LiveView{
		Ticker: ticker,
		RunURL: pageURL(p.Index, ticker) + "&run=1",
	}
	if !run {
		return lv
	}
	lv.Ran = true

	a, err := s.analyzer.Analyze(ctx, ticker)
	if err != nil {
		log.Printf("[WARN] live analysis %s: %v", ticker, err)
		if errors.Is(err, model.ErrFetchFailure) {
			lv.Error = "Connection failed or no data found for " + ticker + "."
		} else {
			lv.Error = err.Error()
		}
		return lv
	}
	if err := s.recorder.RecordAnalysis(a); err != nil {
		log.Printf("[ERROR] record analysis %s: %v", ticker, err)
	}

	for _, panel := range LivePanels(a) {
		lv.Charts = append(lv.Charts, Chart{Title: panel.Title, SVG: panel.SVG()})
	}
	lv.Interpretations = a.Interpretations
	if l := a.Latest; model.IsDefined(l.RangePos) {
		lv.Range = &Metric{
			Label: fmt.Sprintf("Position in %d-bar range", a.Series.Len()),
			Value: fmt.Sprintf("%.0f%%", l.RangePos*100),
			Note:  fmt.Sprintf("%.0f - %.0f", l.RangeLow, l.RangeHigh),
		}
	}
	lv.Warnings = a.Warnings
	if e := a.Estimate; e != nil {
		lv.Estimate = &EstimateView{
			Label:   e.NextLabel,
			Today:   forecast.FormatRupiah(e.Today),
			Next:    forecast.FormatRupiah(e.Next),
			Delta:   forecast.FormatDelta(e.Delta),
			LastBar: e.LastBarDate.Format("2006-01-02"),
		}
	}
	return lv
}

func (s *Server) images(patterns []string, ticker string) []Image {
	if s.catalog == nil {
		return nil
	}
	var out []Image
	for _, pattern := range patterns {
		matches, err := s.catalog.Resolve(pattern, ticker)
		if err != nil {
			log.Printf("[WARN] resolve image %q: %v", pattern, err)
			continue
		}
		for _, m := range matches {
			out = append(out, Image{URL: "/visual/" + m, Alt: strings.TrimSuffix(path.Base(m), ".png")})
		}
	}
	return out
}

var statOrder = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

func descStatsTable(stats map[string]map[string]float64) *Table {
	cols := make([]string, 0, len(stats))
	rowSet := map[string]bool{}
	for col, inner := range stats {
		cols = append(cols, col)
		for k := range inner {
			rowSet[k] = true
		}
	}
	sort.Strings(cols)

	var rows []string
	for _, k := range statOrder {
		if rowSet[k] {
			rows = append(rows, k)
			delete(rowSet, k)
		}
	}
	var rest []string
	for k := range rowSet {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	rows = append(rows, rest...)

	t := &Table{Header: append([]string{""}, cols...)}
	for _, r := range rows {
		line := []string{r}
		for _, c := range cols {
			if v, ok := stats[c][r]; ok {
				line = append(line, fmt.Sprintf("%.4f", v))
			} else {
				line = append(line, "")
			}
		}
		t.Rows = append(t.Rows, line)
	}
	return t
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
