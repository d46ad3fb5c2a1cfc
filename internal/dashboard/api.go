package dashboard

import (
	"math"
	"strconv"
	"time"

	"BankLens/internal/model"
	"BankLens/internal/recorder"
)

// Num encodes undefined indicator values as JSON null.
type Num float64

func (n Num) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

func nums(values []float64) []Num {
	out := make([]Num, len(values))
	for i, v := range values {
		out[i] = Num(v)
	}
	return out
}

type barJSON struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

type latestJSON struct {
	Close      Num `json:"close"`
	SMA20      Num `json:"sma_20"`
	RSI        Num `json:"rsi_14"`
	MACD       Num `json:"macd"`
	MACDSignal Num `json:"macd_signal"`
	Volume     Num `json:"volume"`
	VolumeAvg  Num `json:"volume_avg_20"`
	RangeHigh  Num `json:"range_high"`
	RangeLow   Num `json:"range_low"`
	RangePos   Num `json:"range_position"`
}

type labelsJSON struct {
	Trend     model.Trend     `json:"trend"`
	Momentum  model.Momentum  `json:"momentum"`
	Crossover model.Crossover `json:"crossover"`
	Activity  model.Activity  `json:"activity"`
}

type interpretationJSON struct {
	Heading string `json:"heading"`
	Status  string `json:"status"`
	Detail  string `json:"detail"`
}

type estimateJSON struct {
	Label       string `json:"label"`
	Today       int64  `json:"today"`
	Next        int64  `json:"next"`
	Delta       int64  `json:"delta"`
	LastBarDate string `json:"last_bar_date"`
	Simulated   bool   `json:"simulated"`
}

type analysisJSON struct {
	ID              string               `json:"id"`
	Ticker          string               `json:"ticker"`
	Symbol          string               `json:"symbol"`
	ComputedAt      time.Time            `json:"computed_at"`
	Bars            []barJSON            `json:"bars"`
	Indicators      map[string][]Num     `json:"indicators"`
	Latest          latestJSON           `json:"latest"`
	Labels          labelsJSON           `json:"labels"`
	Interpretations []interpretationJSON `json:"interpretations"`
	Warnings        []string             `json:"warnings"`
	Estimate        *estimateJSON        `json:"estimate,omitempty"`
}

func toAnalysisJSON(a *model.Analysis) analysisJSON {
	out := analysisJSON{
		ID:         a.ID,
		Ticker:     a.Ticker,
		ComputedAt: a.ComputedAt,
		Indicators: map[string][]Num{},
		Latest: latestJSON{
			Close:      Num(a.Latest.Close),
			SMA20:      Num(a.Latest.SMA20),
			RSI:        Num(a.Latest.RSI),
			MACD:       Num(a.Latest.MACD),
			MACDSignal: Num(a.Latest.MACDSignal),
			Volume:     Num(a.Latest.Volume),
			VolumeAvg:  Num(a.Latest.VolumeAvg),
			RangeHigh:  Num(a.Latest.RangeHigh),
			RangeLow:   Num(a.Latest.RangeLow),
			RangePos:   Num(a.Latest.RangePos),
		},
		Labels: labelsJSON{
			Trend:     a.Labels.Trend,
			Momentum:  a.Labels.Momentum,
			Crossover: a.Labels.Crossover,
			Activity:  a.Labels.Activity,
		},
		Warnings: a.Warnings,
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	if a.Series != nil {
		out.Symbol = a.Series.Symbol
		for _, b := range a.Series.Bars {
			out.Bars = append(out.Bars, barJSON{
				Date: b.Time.Format("2006-01-02"), Open: b.Open, High: b.High,
				Low: b.Low, Close: b.Close, Volume: b.Volume,
			})
		}
	}
	for name, series := range a.Indicators.Named() {
		out.Indicators[name] = nums(series)
	}
	for _, it := range a.Interpretations {
		out.Interpretations = append(out.Interpretations, interpretationJSON(it))
	}
	if e := a.Estimate; e != nil {
		out.Estimate = &estimateJSON{
			Label: e.NextLabel, Today: e.Today, Next: e.Next, Delta: e.Delta,
			LastBarDate: e.LastBarDate.Format("2006-01-02"), Simulated: e.Simulated,
		}
	}
	return out
}

type snapshotJSON struct {
	ID         string     `json:"id"`
	ComputedAt time.Time  `json:"computed_at"`
	BarDate    string     `json:"bar_date,omitempty"`
	Bars       int        `json:"bars"`
	Close      Num        `json:"close"`
	SMA20      Num        `json:"sma_20"`
	RSI        Num        `json:"rsi_14"`
	MACD       Num        `json:"macd"`
	MACDSignal Num        `json:"macd_signal"`
	Labels     labelsJSON `json:"labels"`
	EstToday   int64      `json:"est_today"`
	EstNext    int64      `json:"est_next"`
	Warnings   int        `json:"warnings"`
}

func toSnapshotJSON(s recorder.Snapshot) snapshotJSON {
	out := snapshotJSON{
		ID:         s.ID,
		ComputedAt: s.ComputedAt,
		Bars:       s.Bars,
		Close:      Num(s.Close),
		SMA20:      Num(s.SMA20),
		RSI:        Num(s.RSI),
		MACD:       Num(s.MACD),
		MACDSignal: Num(s.MACDSignal),
		Labels: labelsJSON{
			Trend: s.Trend, Momentum: s.Momentum, Crossover: s.Crossover, Activity: s.Activity,
		},
		EstToday: s.EstToday,
		EstNext:  s.EstNext,
		Warnings: s.Warnings,
	}
	if !s.BarDate.IsZero() {
		out.BarDate = s.BarDate.Format("2006-01-02")
	}
	return out
}

type referenceJSON struct {
	Ticker  string                `json:"ticker"`
	Metrics *model.ModelMetrics   `json:"metrics"`
	Summary *model.DatasetSummary `json:"summary"`
}
