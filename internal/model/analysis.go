package model

import "time"

// Estimate is the simulated next-day figure shown on the live page.
// It is a random nudge of the last close, not a model inference.
type Estimate struct {
	Today       int64
	Next        int64
	Delta       int64
	NextLabel   string
	LastBarDate time.Time
	Simulated   bool
}

// Analysis is the full output of one fetch-and-compute pass.
type Analysis struct {
	ID              string
	Ticker          string
	Series          *PriceSeries
	Indicators      IndicatorSet
	Latest          LatestValues
	Labels          Labels
	Interpretations []Interpretation
	Warnings        []string
	Estimate        *Estimate
	ComputedAt      time.Time
}
