package calculator

import "BankLens/internal/model"

// MACDResult holds the three aligned MACD series.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// MACD returns EMA(fast) - EMA(slow), its EMA(signal) and their difference.
func MACD(closes []float64, fast, slow, signal int) MACDResult {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	line := undefinedSeries(len(closes))
	for i := range closes {
		if model.IsDefined(emaFast[i]) && model.IsDefined(emaSlow[i]) {
			line[i] = emaFast[i] - emaSlow[i]
		}
	}

	sig := EMA(line, signal)
	hist := undefinedSeries(len(closes))
	for i := range hist {
		if model.IsDefined(line[i]) && model.IsDefined(sig[i]) {
			hist[i] = line[i] - sig[i]
		}
	}
	return MACDResult{Line: line, Signal: sig, Histogram: hist}
}
