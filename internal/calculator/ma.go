package calculator

import (
	"math"

	"BankLens/internal/model"
)

// SMA returns the simple moving average of values over a trailing window.
// Entries before index window-1 are undefined, as is any window that
// contains an undefined input. A window longer than the input leaves the
// whole output undefined.
func SMA(values []float64, window int) []float64 {
	out := undefinedSeries(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		valid := true
		for j := i - window + 1; j <= i; j++ {
			if !model.IsDefined(values[j]) {
				valid = false
				break
			}
			sum += values[j]
		}
		if valid {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMA returns the adjust-free exponential moving average with
// alpha = 2/(span+1). The recursion is seeded with the first defined input,
// so a fully defined input yields a fully defined output with
// ema[0] == values[0]. An undefined input after the seed carries the
// previous average forward.
func EMA(values []float64, span int) []float64 {
	out := undefinedSeries(len(values))
	if span <= 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	prev := math.NaN()
	for i, v := range values {
		switch {
		case !model.IsDefined(v):
			out[i] = prev
		case !model.IsDefined(prev):
			prev = v
			out[i] = v
		default:
			prev = alpha*v + (1-alpha)*prev
			out[i] = prev
		}
	}
	return out
}

func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = model.Undefined()
	}
	return out
}
