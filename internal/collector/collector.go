package collector

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"BankLens/internal/calculator"
	"BankLens/internal/forecast"
	"BankLens/internal/metrics"
	"BankLens/internal/model"
	"BankLens/internal/strategy"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.OHLCV
	Err       error
	Calls     int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Symbol(ticker string) string { return ticker + ".JK" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, days int) ([]model.OHLCV, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, days), nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher   Fetcher
	Tickers   []string
	Lookback  int
	Params    calculator.Params
	Simulator *forecast.Simulator
	Metrics   *metrics.Recorder
	Now       func() time.Time
}

// NewCollector creates a new Collector for the given tickers.
func NewCollector(fetcher Fetcher, tickers []string, lookback int) *Collector {
	if lookback <= 0 {
		lookback = 60
	}
	return &Collector{
		Fetcher:   fetcher,
		Tickers:   tickers,
		Lookback:  lookback,
		Params:    calculator.DefaultParams(),
		Simulator: forecast.NewSimulator(nil, nil),
		Now:       time.Now,
	}
}

// Known reports whether ticker is one of the configured tickers.
func (c *Collector) Known(ticker string) bool {
	for _, t := range c.Tickers {
		if t == ticker {
			return true
		}
	}
	return false
}

// Analyze fetches the ticker's recent bars and computes every indicator.
// A failed or empty fetch returns an error wrapping model.ErrFetchFailure
// and the indicator engine is not run.
func (c *Collector) Analyze(ctx context.Context, ticker string) (*model.Analysis, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if !c.Known(ticker) {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownTicker, ticker)
	}

	timer := metrics.NewTimer()
	bars, err := c.Fetcher.FetchDailyBars(ctx, ticker, c.Lookback)
	c.Metrics.RecordFetch(c.Fetcher.Name(), err, timer.Elapsed())
	if err != nil {
		return nil, fmt.Errorf("%w: %s via %s: %v", model.ErrFetchFailure, ticker, c.Fetcher.Name(), err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s via %s: no bars returned", model.ErrFetchFailure, ticker, c.Fetcher.Name())
	}

	own := make([]model.OHLCV, len(bars))
	copy(own, bars)
	sort.SliceStable(own, func(i, j int) bool { return own[i].Time.Before(own[j].Time) })
	series := &model.PriceSeries{
		Ticker:    ticker,
		Symbol:    c.Fetcher.Symbol(ticker),
		Bars:      dedupeByTime(own),
		FetchedAt: c.Now(),
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrFetchFailure, ticker, err)
	}

	return c.compute(series), nil
}

func (c *Collector) compute(series *model.PriceSeries) *model.Analysis {
	timer := metrics.NewTimer()
	set, warnings := calculator.Compute(series, c.Params)
	for _, w := range warnings {
		log.Printf("[WARN] %s: %s", series.Ticker, w)
	}

	latest := calculator.Latest(series, set)
	labels := strategy.Classify(latest)

	a := &model.Analysis{
		ID:              uuid.NewString(),
		Ticker:          series.Ticker,
		Series:          series,
		Indicators:      set,
		Latest:          latest,
		Labels:          labels,
		Interpretations: strategy.Interpret(latest, labels),
		Warnings:        warnings,
		ComputedAt:      c.Now(),
	}
	if last, ok := series.Last(); ok && c.Simulator != nil {
		a.Estimate = c.Simulator.Estimate(last.Close, last.Time)
	}
	c.Metrics.RecordCompute(series.Ticker, timer.Elapsed())
	return a
}
