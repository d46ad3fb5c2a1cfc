package model

import "errors"

var (
	// ErrMissingReference means a ticker has no entry in a reference file.
	ErrMissingReference = errors.New("reference data missing")
	// ErrFetchFailure means the market data source returned nothing usable.
	ErrFetchFailure = errors.New("market data fetch failed")
	// ErrInsufficientHistory means a window is longer than the fetched series.
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrUnknownTicker means the ticker is not one of the configured banks.
	ErrUnknownTicker = errors.New("unknown ticker")
)
