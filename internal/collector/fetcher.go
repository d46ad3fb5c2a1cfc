package collector

import (
	"context"

	"BankLens/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, ticker string, days int) ([]model.OHLCV, error)
	Symbol(ticker string) string
	Name() string
}

// DefaultSymbols maps the dashboard tickers to Yahoo Finance symbols on the
// Indonesia Stock Exchange.
var DefaultSymbols = map[string]string{
	"BBCA": "BBCA.JK",
	"BBRI": "BBRI.JK",
	"BMRI": "BMRI.JK",
	"BBNI": "BBNI.JK",
	"BBTN": "BBTN.JK",
}
