package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BankLens/internal/model"
)

func testNotifier(url string) *TelegramNotifier {
	n := NewTelegramNotifier("TOKEN", "42", "")
	n.BaseURL = url
	n.Backoff = time.Millisecond
	return n
}

func TestSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, testNotifier(srv.URL).Send(context.Background(), "hello"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSendWithRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "busy", http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, testNotifier(srv.URL).SendWithRetry(context.Background(), "x", 3))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := testNotifier(srv.URL).SendWithRetry(context.Background(), "x", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 retries exhausted")
}

func TestSend_APIDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"ok":false,"description":"Bad Request: chat not found"}`)
	}))
	defer srv.Close()

	err := testNotifier(srv.URL).Send(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestPollOnce(t *testing.T) {
	var replies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			assert.Equal(t, "7", r.URL.Query().Get("offset"))
			fmt.Fprint(w, `{"ok":true,"result":[
				{"update_id":7,"message":{"text":" /analyze bbca ","chat":{"id":42}}},
				{"update_id":8,"message":{"text":"/tickers","chat":{"id":99}}},
				{"update_id":9}
			]}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var p map[string]string
			json.NewDecoder(r.Body).Decode(&p)
			replies = append(replies, p["text"])
		}
	}))
	defer srv.Close()

	n := testNotifier(srv.URL)
	var seen []string
	next, err := n.pollOnce(context.Background(), srv.Client(), 7, 0, func(_ context.Context, cmd string) string {
		seen = append(seen, cmd)
		return "ok " + cmd
	})
	require.NoError(t, err)
	assert.Equal(t, 10, next)
	assert.Equal(t, []string{"/analyze bbca"}, seen)
	assert.Equal(t, []string{"ok /analyze bbca"}, replies)
}

func TestPollOnce_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false,"description":"Unauthorized"}`)
	}))
	defer srv.Close()

	next, err := testNotifier(srv.URL).pollOnce(context.Background(), srv.Client(), 3, 0, func(context.Context, string) string { return "" })
	require.Error(t, err)
	assert.Equal(t, 3, next)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestFormatAnalysisReport(t *testing.T) {
	a := &model.Analysis{
		Ticker:     "BMRI",
		ComputedAt: time.Date(2026, 10, 19, 16, 30, 0, 0, time.UTC),
		Series: &model.PriceSeries{Bars: []model.OHLCV{
			{Time: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), Close: 6150},
		}},
		Latest: model.LatestValues{SMA20: 6000, RSI: model.Undefined(), MACD: 1, MACDSignal: 2},
		Interpretations: []model.Interpretation{
			{Heading: "Price Action", Status: "Bullish (above SMA20)"},
		},
		Estimate: &model.Estimate{Next: 6200, Delta: 50, NextLabel: "Monday forecast"},
	}
	msg := FormatAnalysisReport(a)
	assert.Contains(t, msg, "<b>BankLens BMRI</b>")
	assert.Contains(t, msg, "Close 2026-10-19: 6150")
	assert.Contains(t, msg, "RSI14: n/a")
	assert.Contains(t, msg, "<b>Price Action</b>: Bullish (above SMA20)")
	assert.Contains(t, msg, "Monday forecast (simulation): Rp 6,200 (+50)")
}

func TestFormatDigest(t *testing.T) {
	at := time.Date(2026, 10, 19, 17, 0, 0, 0, time.UTC)
	a := &model.Analysis{
		Ticker: "BBCA",
		Latest: model.LatestValues{Close: 9875, RSI: 55},
		Labels: model.Labels{Trend: model.TrendAboveMA, Crossover: model.CrossoverBearish},
	}
	msg := FormatDigest(at, []*model.Analysis{a}, map[string]error{"BBNI": errors.New("timeout <x>")})
	assert.Contains(t, msg, "<b>BBCA</b> 9875.00 | RSI 55.00 | above MA, bearish")
	assert.Contains(t, msg, "BBNI: timeout &lt;x&gt;")

	assert.Contains(t, FormatDigest(at, nil, nil), "No tickers configured.")
}

func TestFormatDigest_FailuresSorted(t *testing.T) {
	at := time.Date(2026, 10, 19, 17, 0, 0, 0, time.UTC)
	failures := map[string]error{
		"BBTN": errors.New("timeout"),
		"BBCA": errors.New("timeout"),
		"BMRI": errors.New("timeout"),
		"BBRI": errors.New("timeout"),
	}
	for i := 0; i < 5; i++ {
		msg := FormatDigest(at, nil, failures)
		a, b := strings.Index(msg, "BBCA:"), strings.Index(msg, "BBRI:")
		c, d := strings.Index(msg, "BMRI:"), strings.Index(msg, "BBTN:")
		require.True(t, a >= 0 && b >= 0 && c >= 0 && d >= 0)
		assert.True(t, a < b && b < d && d < c, "failures listed by ticker")
	}
}

func TestFormatHelp(t *testing.T) {
	assert.Contains(t, FormatHelp([]string{"BBCA", "BBRI"}), "Tickers: BBCA, BBRI")
}
