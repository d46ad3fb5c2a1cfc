package model

// Trend compares the latest close to its 20-day SMA.
type Trend string

const (
	TrendAboveMA Trend = "above MA"
	TrendBelowMA Trend = "below MA"
	TrendUnknown Trend = "unknown"
)

// Momentum buckets the latest RSI.
type Momentum string

const (
	MomentumOverbought Momentum = "overbought"
	MomentumOversold   Momentum = "oversold"
	MomentumNeutral    Momentum = "neutral"
	MomentumUnknown    Momentum = "unknown"
)

// Crossover compares the MACD line to its signal line.
type Crossover string

const (
	CrossoverBullish Crossover = "bullish"
	CrossoverBearish Crossover = "bearish"
	CrossoverUnknown Crossover = "unknown"
)

// Activity compares the latest volume to its 20-day average.
type Activity string

const (
	ActivityHigh    Activity = "high"
	ActivityLow     Activity = "low"
	ActivityUnknown Activity = "unknown"
)

// Labels is the categorical reading of the latest bar.
type Labels struct {
	Trend     Trend
	Momentum  Momentum
	Crossover Crossover
	Activity  Activity
}

// Interpretation is one human-readable line of the analysis.
type Interpretation struct {
	Heading string
	Status  string
	Detail  string
}
