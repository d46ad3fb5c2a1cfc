package calculator

import "BankLens/internal/model"

// RSI computes the Relative Strength Index from trailing simple averages of
// day-over-day gains and losses. The first bar has no prior close and counts
// as a zero gain and zero loss, so the first defined entry is at index
// window-1.
//
// When the average loss over a window is zero the index is 100, including a
// flat window where the average gain is zero too.
func RSI(closes []float64, window int) []float64 {
	n := len(closes)
	out := undefinedSeries(n)
	if window <= 0 || n < window {
		return out
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	valid := make([]bool, n)
	if n > 0 {
		valid[0] = model.IsDefined(closes[0])
	}
	for i := 1; i < n; i++ {
		if !model.IsDefined(closes[i]) || !model.IsDefined(closes[i-1]) {
			continue
		}
		valid[i] = true
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	for i := window - 1; i < n; i++ {
		var sumGain, sumLoss float64
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if !valid[j] {
				ok = false
				break
			}
			sumGain += gains[j]
			sumLoss += losses[j]
		}
		if ok {
			out[i] = rsiFromAverages(sumGain/float64(window), sumLoss/float64(window))
		}
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
