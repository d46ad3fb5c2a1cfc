package strategy

import (
	"fmt"

	"BankLens/internal/model"
)

// RSI bands used for the momentum label.
const (
	OverboughtRSI = 70.0
	OversoldRSI   = 30.0
)

// Classify maps the latest values to categorical labels. A category whose
// inputs are undefined is labelled unknown.
func Classify(lv model.LatestValues) model.Labels {
	return model.Labels{
		Trend:     classifyTrend(lv),
		Momentum:  classifyMomentum(lv),
		Crossover: classifyCrossover(lv),
		Activity:  classifyActivity(lv),
	}
}

func classifyTrend(lv model.LatestValues) model.Trend {
	if !model.IsDefined(lv.Close) || !model.IsDefined(lv.SMA20) {
		return model.TrendUnknown
	}
	if lv.Close > lv.SMA20 {
		return model.TrendAboveMA
	}
	return model.TrendBelowMA
}

func classifyMomentum(lv model.LatestValues) model.Momentum {
	switch {
	case !model.IsDefined(lv.RSI):
		return model.MomentumUnknown
	case lv.RSI > OverboughtRSI:
		return model.MomentumOverbought
	case lv.RSI < OversoldRSI:
		return model.MomentumOversold
	default:
		return model.MomentumNeutral
	}
}

func classifyCrossover(lv model.LatestValues) model.Crossover {
	if !model.IsDefined(lv.MACD) || !model.IsDefined(lv.MACDSignal) {
		return model.CrossoverUnknown
	}
	if lv.MACD > lv.MACDSignal {
		return model.CrossoverBullish
	}
	return model.CrossoverBearish
}

func classifyActivity(lv model.LatestValues) model.Activity {
	if !model.IsDefined(lv.Volume) || !model.IsDefined(lv.VolumeAvg) {
		return model.ActivityUnknown
	}
	if lv.Volume > lv.VolumeAvg {
		return model.ActivityHigh
	}
	return model.ActivityLow
}

// Interpret turns labels into the four readings shown under the live chart.
func Interpret(lv model.LatestValues, labels model.Labels) []model.Interpretation {
	return []model.Interpretation{
		interpretTrend(labels.Trend),
		interpretMomentum(lv, labels.Momentum),
		interpretCrossover(labels.Crossover),
		interpretActivity(labels.Activity),
	}
}

func interpretTrend(t model.Trend) model.Interpretation {
	it := model.Interpretation{Heading: "Price Action"}
	switch t {
	case model.TrendAboveMA:
		it.Status = "Bullish (above SMA20)"
	case model.TrendBelowMA:
		it.Status = "Bearish (below SMA20)"
	default:
		it.Status = "Not enough history for SMA20"
	}
	it.Detail = "Short-term trend relative to the 20-day average."
	return it
}

func interpretMomentum(lv model.LatestValues, m model.Momentum) model.Interpretation {
	it := model.Interpretation{Heading: "Momentum (RSI)"}
	switch m {
	case model.MomentumOverbought:
		it.Status = fmt.Sprintf("%.2f (Overbought)", lv.RSI)
	case model.MomentumOversold:
		it.Status = fmt.Sprintf("%.2f (Oversold)", lv.RSI)
	case model.MomentumNeutral:
		it.Status = fmt.Sprintf("%.2f (Neutral)", lv.RSI)
	default:
		it.Status = "Not enough history for RSI"
	}
	it.Detail = "Strength of current buying or selling pressure."
	return it
}

func interpretCrossover(c model.Crossover) model.Interpretation {
	it := model.Interpretation{Heading: "Trend (MACD)"}
	switch c {
	case model.CrossoverBullish:
		it.Status = "Golden Cross (buy signal)"
	case model.CrossoverBearish:
		it.Status = "Death Cross (sell signal)"
	default:
		it.Status = "MACD unavailable"
	}
	it.Detail = "Gap between MACD and signal line reflects trend momentum."
	return it
}

func interpretActivity(a model.Activity) model.Interpretation {
	it := model.Interpretation{Heading: "Market Activity"}
	switch a {
	case model.ActivityHigh:
		it.Status = "High (above average)"
	case model.ActivityLow:
		it.Status = "Low (consolidation)"
	default:
		it.Status = "Not enough history for volume average"
	}
	it.Detail = "Volume versus its 20-day average."
	return it
}
