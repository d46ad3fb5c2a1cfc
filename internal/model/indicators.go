package model

import "math"

// Undefined marks an indicator entry without enough history.
func Undefined() float64 { return math.NaN() }

// IsDefined reports whether v carries a computed value.
func IsDefined(v float64) bool { return !math.IsNaN(v) }

// LastDefined returns the final entry of s if it is defined.
func LastDefined(s []float64) (float64, bool) {
	if len(s) == 0 || !IsDefined(s[len(s)-1]) {
		return Undefined(), false
	}
	return s[len(s)-1], true
}

// Indicator names used as series keys in the API and charts.
const (
	IndicatorSMA20       = "SMA_20"
	IndicatorEMA20       = "EMA_20"
	IndicatorRSI14       = "RSI_14"
	IndicatorMACD        = "MACD"
	IndicatorMACDSignal  = "MACD_SIGNAL"
	IndicatorMACDHist    = "MACD_HIST"
	IndicatorVolumeMA20  = "VOLUME_MA_20"
	IndicatorBBUpper     = "BB_UPPER"
	IndicatorBBMiddle    = "BB_MIDDLE"
	IndicatorBBLower     = "BB_LOWER"
	IndicatorDailyReturn = "DAILY_RETURN"
	IndicatorHLRange     = "HL_RANGE"
)

// IndicatorSet holds every derived series, each aligned with the price series.
type IndicatorSet struct {
	SMA20       []float64
	EMA20       []float64
	RSI14       []float64
	MACD        []float64
	MACDSignal  []float64
	MACDHist    []float64
	VolumeMA20  []float64
	BBUpper     []float64
	BBMiddle    []float64
	BBLower     []float64
	DailyReturn []float64
	HLRange     []float64
}

// Named returns the set keyed by indicator name.
func (s *IndicatorSet) Named() map[string][]float64 {
	return map[string][]float64{
		IndicatorSMA20:       s.SMA20,
		IndicatorEMA20:       s.EMA20,
		IndicatorRSI14:       s.RSI14,
		IndicatorMACD:        s.MACD,
		IndicatorMACDSignal:  s.MACDSignal,
		IndicatorMACDHist:    s.MACDHist,
		IndicatorVolumeMA20:  s.VolumeMA20,
		IndicatorBBUpper:     s.BBUpper,
		IndicatorBBMiddle:    s.BBMiddle,
		IndicatorBBLower:     s.BBLower,
		IndicatorDailyReturn: s.DailyReturn,
		IndicatorHLRange:     s.HLRange,
	}
}

// LatestValues is the most recent value of each input to the classifier.
// Entries without enough history are Undefined().
type LatestValues struct {
	Close      float64
	SMA20      float64
	RSI        float64
	MACD       float64
	MACDSignal float64
	Volume     float64
	VolumeAvg  float64

	// RangeHigh and RangeLow span every fetched bar. RangePos places Close
	// within them, 0 at the low and 1 at the high.
	RangeHigh float64
	RangeLow  float64
	RangePos  float64
}
