package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BankLens/internal/collector"
	"BankLens/internal/metrics"
	"BankLens/internal/model"
	"BankLens/internal/recorder"
)

type captureSender struct {
	msgs []string
	err  error
}

func (c *captureSender) SendWithRetry(_ context.Context, text string, _ int) error {
	c.msgs = append(c.msgs, text)
	return c.err
}

// tickerFetcher fails for the listed tickers and serves mock bars otherwise.
type tickerFetcher struct {
	collector.MockFetcher
	fail map[string]bool
}

func (f *tickerFetcher) FetchDailyBars(ctx context.Context, ticker string, days int) ([]model.OHLCV, error) {
	if f.fail[ticker] {
		return nil, errors.New("upstream 503")
	}
	return f.MockFetcher.FetchDailyBars(ctx, ticker, days)
}

func newTestScheduler(t *testing.T, fail map[string]bool, sender Sender) (*Scheduler, *recorder.SQLiteRecorder, *metrics.Recorder) {
	t.Helper()
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "snap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })

	m := metrics.NewRecorder(prometheus.NewRegistry())
	col := collector.NewCollector(&tickerFetcher{MockFetcher: collector.MockFetcher{Price: 5000}, fail: fail},
		[]string{"BBCA", "BBRI", "BMRI"}, 60)
	col.Metrics = m
	return NewScheduler(context.Background(), col, sender, rec, m), rec, m
}

func TestSnapshot(t *testing.T) {
	sender := &captureSender{}
	s, rec, m := newTestScheduler(t, map[string]bool{"BMRI": true}, sender)

	analyses, failures := s.Snapshot(context.Background())
	require.Len(t, analyses, 2)
	require.Len(t, failures, 1)
	assert.Contains(t, failures, "BMRI")

	hist, err := rec.History("BBCA", 5)
	require.NoError(t, err)
	assert.Len(t, hist, 1)

	require.Len(t, sender.msgs, 1)
	assert.Contains(t, sender.msgs[0], "BBCA")
	assert.Contains(t, sender.msgs[0], "BMRI")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SnapshotsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotsTotal.WithLabelValues("error")))
}

func TestSnapshot_NoNotifier(t *testing.T) {
	s, _, _ := newTestScheduler(t, nil, nil)
	analyses, failures := s.Snapshot(context.Background())
	assert.Len(t, analyses, 3)
	assert.Empty(t, failures)
}

func TestRegister(t *testing.T) {
	s, _, _ := newTestScheduler(t, nil, nil)
	require.NoError(t, s.Register(""))
	assert.Empty(t, s.Cron.Entries())

	require.NoError(t, s.Register("0 30 16 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)

	assert.Error(t, s.Register("not a cron"))
}

func TestHandleCommand(t *testing.T) {
	s, rec, _ := newTestScheduler(t, map[string]bool{"BBRI": true}, nil)
	ctx := context.Background()

	reply := s.HandleCommand(ctx, "/analyze bbca")
	assert.Contains(t, reply, "BankLens BBCA")
	hist, err := rec.History("BBCA", 5)
	require.NoError(t, err)
	assert.Len(t, hist, 1)

	assert.Contains(t, s.HandleCommand(ctx, "/analyze BBRI"), "Could not fetch data for BBRI")
	assert.Contains(t, s.HandleCommand(ctx, "/analyze GOTO"), "Unknown ticker")
	assert.Equal(t, "Usage: /analyze TICKER", s.HandleCommand(ctx, "/analyze"))
	assert.Equal(t, "BBCA, BBRI, BMRI", s.HandleCommand(ctx, "/tickers"))
	assert.Contains(t, s.HandleCommand(ctx, "hello"), "/analyze TICKER")
}
