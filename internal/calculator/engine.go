package calculator

import (
	"fmt"

	"BankLens/internal/model"
)

// Params sets every window used by Compute.
type Params struct {
	SMAWindow      int
	EMASpan        int
	RSIWindow      int
	MACDFast       int
	MACDSlow       int
	MACDSignal     int
	VolumeWindow   int
	BollingerWin   int
	BollingerWidth float64
}

// DefaultParams returns the windows shown on the live analysis page.
func DefaultParams() Params {
	return Params{
		SMAWindow:      20,
		EMASpan:        20,
		RSIWindow:      14,
		MACDFast:       12,
		MACDSlow:       26,
		MACDSignal:     9,
		VolumeWindow:   20,
		BollingerWin:   20,
		BollingerWidth: 2,
	}
}

// Compute derives every indicator series from the price series. It returns
// one warning per window that the series is too short to fill; the affected
// entries are undefined and nothing fails.
func Compute(series *model.PriceSeries, p Params) (model.IndicatorSet, []string) {
	closes := series.Closes()
	volumes := series.Volumes()

	macd := MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	upper, middle, lower := BollingerBands(closes, p.BollingerWin, p.BollingerWidth)

	set := model.IndicatorSet{
		SMA20:       SMA(closes, p.SMAWindow),
		EMA20:       EMA(closes, p.EMASpan),
		RSI14:       RSI(closes, p.RSIWindow),
		MACD:        macd.Line,
		MACDSignal:  macd.Signal,
		MACDHist:    macd.Histogram,
		VolumeMA20:  SMA(volumes, p.VolumeWindow),
		BBUpper:     upper,
		BBMiddle:    middle,
		BBLower:     lower,
		DailyReturn: DailyReturn(closes),
		HLRange:     HLRange(series.Bars),
	}

	n := len(closes)
	var warnings []string
	check := func(name string, need int) {
		if n < need {
			warnings = append(warnings, fmt.Errorf("%s needs %d bars, have %d: %w",
				name, need, n, model.ErrInsufficientHistory).Error())
		}
	}
	check(model.IndicatorSMA20, p.SMAWindow)
	check(model.IndicatorRSI14, p.RSIWindow)
	check(model.IndicatorMACD, p.MACDSlow)
	check(model.IndicatorVolumeMA20, p.VolumeWindow)
	check(model.IndicatorBBMiddle, p.BollingerWin)

	return set, warnings
}

// Latest collects the final value of each classifier input.
func Latest(series *model.PriceSeries, set model.IndicatorSet) model.LatestValues {
	lv := model.LatestValues{
		Close:      model.Undefined(),
		Volume:     model.Undefined(),
		SMA20:      lastOrUndefined(set.SMA20),
		RSI:        lastOrUndefined(set.RSI14),
		MACD:       lastOrUndefined(set.MACD),
		MACDSignal: lastOrUndefined(set.MACDSignal),
		VolumeAvg:  lastOrUndefined(set.VolumeMA20),
		RangeHigh:  model.Undefined(),
		RangeLow:   model.Undefined(),
		RangePos:   model.Undefined(),
	}
	if bar, ok := series.Last(); ok {
		lv.Close = bar.Close
		lv.Volume = bar.Volume
	}
	if high, low, err := PeriodRange(series.Bars, 0); err == nil {
		lv.RangeHigh, lv.RangeLow = high, low
		if pos, err := RangePosition(lv.Close, high, low); err == nil {
			lv.RangePos = pos
		}
	}
	return lv
}

func lastOrUndefined(s []float64) float64 {
	v, _ := model.LastDefined(s)
	return v
}
