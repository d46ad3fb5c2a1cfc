package calculator

import (
	"errors"
	"math"

	"BankLens/internal/model"
)

// PeriodRange returns the highest high and lowest low of the most recent
// lookback bars. A lookback of zero or less scans every bar. Undefined highs
// and lows are skipped.
func PeriodRange(bars []model.OHLCV, lookback int) (high, low float64, err error) {
	n := len(bars)
	start := n - lookback
	if start < 0 || lookback <= 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars[start:] {
		if model.IsDefined(b.High) && b.High > high {
			high = b.High
		}
		if model.IsDefined(b.Low) && b.Low < low {
			low = b.Low
		}
	}
	if math.IsInf(high, -1) || math.IsInf(low, 1) {
		return 0, 0, errors.New("no defined high/low in range")
	}
	return high, low, nil
}

// RangePosition returns where current sits within [low, high], clamped to 0..1.
// A zero-width range puts current at the midpoint.
func RangePosition(current, high, low float64) (float64, error) {
	if !model.IsDefined(current) {
		return model.Undefined(), errors.New("current value is undefined")
	}
	if high < low {
		return model.Undefined(), errors.New("high must be >= low")
	}
	if high == low {
		return 0.5, nil
	}
	return math.Max(0, math.Min(1, (current-low)/(high-low))), nil
}

// BollingerBands returns the middle SMA and the bands k sample standard
// deviations above and below it.
func BollingerBands(closes []float64, window int, k float64) (upper, middle, lower []float64) {
	middle = SMA(closes, window)
	upper = undefinedSeries(len(closes))
	lower = undefinedSeries(len(closes))
	if window < 2 {
		return upper, middle, lower
	}
	for i := range closes {
		if !model.IsDefined(middle[i]) {
			continue
		}
		var ss float64
		for j := i - window + 1; j <= i; j++ {
			d := closes[j] - middle[i]
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(window-1))
		upper[i] = middle[i] + k*sd
		lower[i] = middle[i] - k*sd
	}
	return upper, middle, lower
}

// DailyReturn returns the fractional change from the previous close.
// Index 0, and any step from a zero or undefined close, is undefined.
func DailyReturn(closes []float64) []float64 {
	out := undefinedSeries(len(closes))
	for i := 1; i < len(closes); i++ {
		prev, cur := closes[i-1], closes[i]
		if !model.IsDefined(prev) || !model.IsDefined(cur) || prev == 0 {
			continue
		}
		out[i] = cur/prev - 1
	}
	return out
}

// HLRange returns the high-low spread of each bar.
func HLRange(bars []model.OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High - b.Low
	}
	return out
}
