package model

import (
	"fmt"
	"time"
)

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the daily bars fetched for one ticker.
type PriceSeries struct {
	Ticker    string
	Symbol    string // data source symbol, e.g. BBCA.JK
	Bars      []OHLCV
	FetchedAt time.Time
}

// Len returns the number of bars.
func (p *PriceSeries) Len() int { return len(p.Bars) }

// Closes returns a fresh slice of closing prices.
func (p *PriceSeries) Closes() []float64 {
	out := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.Close
	}
	return out
}

// Volumes returns a fresh slice of volumes.
func (p *PriceSeries) Volumes() []float64 {
	out := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.Volume
	}
	return out
}

// Last returns the most recent bar. ok is false for an empty series.
func (p *PriceSeries) Last() (bar OHLCV, ok bool) {
	if len(p.Bars) == 0 {
		return OHLCV{}, false
	}
	return p.Bars[len(p.Bars)-1], true
}

// Validate checks that bar dates are strictly increasing.
func (p *PriceSeries) Validate() error {
	for i := 1; i < len(p.Bars); i++ {
		if !p.Bars[i].Time.After(p.Bars[i-1].Time) {
			return fmt.Errorf("bar %d (%s) not after bar %d (%s)",
				i, p.Bars[i].Time.Format("2006-01-02"), i-1, p.Bars[i-1].Time.Format("2006-01-02"))
		}
	}
	return nil
}
