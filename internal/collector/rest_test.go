package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRESTFetcher_FetchDailyBars(t *testing.T) {
	var auth, symbol, limit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		symbol = r.URL.Query().Get("symbol")
		limit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`[
			{"timestamp":1760832000,"open":4200,"high":4250,"low":4180,"close":4230,"volume":900},
			{"timestamp":1760659200,"open":4100,"high":4150,"low":4080,"close":4120,"volume":800},
			{"timestamp":1760745600,"open":4120,"high":4210,"low":4110,"close":4200,"volume":850}
		]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "", 0)
	bars, err := f.FetchDailyBars(context.Background(), "BBTN", 2)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "BBTN.JK", symbol)
	assert.Equal(t, "2", limit)
	require.Len(t, bars, 2)
	assert.Equal(t, 4200.0, bars[0].Close)
	assert.Equal(t, 4230.0, bars[1].Close)
}

func TestRESTFetcher_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "", "", 0)
	_, err := f.FetchDailyBars(context.Background(), "BBNI", 60)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
