package recorder

import (
	"time"

	"BankLens/internal/model"
)

// Snapshot is one persisted analysis row.
type Snapshot struct {
	ID         string
	Ticker     string
	ComputedAt time.Time
	BarDate    time.Time
	Bars       int
	Close      float64
	SMA20      float64
	RSI        float64
	MACD       float64
	MACDSignal float64
	Volume     float64
	VolumeAvg  float64
	Trend      model.Trend
	Momentum   model.Momentum
	Crossover  model.Crossover
	Activity   model.Activity
	EstToday   int64
	EstNext    int64
	Warnings   int
}

// FetchFailure records a data source error for one ticker.
type FetchFailure struct {
	Ticker string
	Source string
	Err    string
}

// SnapshotFromAnalysis flattens an analysis into a storable row.
func SnapshotFromAnalysis(a *model.Analysis) *Snapshot {
	s := &Snapshot{
		ID:         a.ID,
		Ticker:     a.Ticker,
		ComputedAt: a.ComputedAt,
		Close:      a.Latest.Close,
		SMA20:      a.Latest.SMA20,
		RSI:        a.Latest.RSI,
		MACD:       a.Latest.MACD,
		MACDSignal: a.Latest.MACDSignal,
		Volume:     a.Latest.Volume,
		VolumeAvg:  a.Latest.VolumeAvg,
		Trend:      a.Labels.Trend,
		Momentum:   a.Labels.Momentum,
		Crossover:  a.Labels.Crossover,
		Activity:   a.Labels.Activity,
		Warnings:   len(a.Warnings),
	}
	if a.Series != nil {
		s.Bars = a.Series.Len()
		if last, ok := a.Series.Last(); ok {
			s.BarDate = last.Time
		}
	}
	if a.Estimate != nil {
		s.EstToday = a.Estimate.Today
		s.EstNext = a.Estimate.Next
	}
	return s
}

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) error
	RecordFetchFailure(f *FetchFailure) error
	History(ticker string, limit int) ([]Snapshot, error)
	Close() error
}
