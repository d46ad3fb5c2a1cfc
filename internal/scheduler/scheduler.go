package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"BankLens/internal/collector"
	"BankLens/internal/metrics"
	"BankLens/internal/model"
	"BankLens/internal/notifier"
	"BankLens/internal/recorder"
)

// Sender delivers formatted messages. *notifier.TelegramNotifier implements it.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs periodic snapshots of every configured ticker.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  Sender
	Recorder  recorder.Recorder
	Metrics   *metrics.Recorder
	Ctx       context.Context

	mu sync.Mutex
}

// NewScheduler creates a new Scheduler. A nil notifier disables the digest.
func NewScheduler(ctx context.Context, col *collector.Collector, tn Sender, rec recorder.Recorder, m *metrics.Recorder) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  tn,
		Recorder:  rec,
		Metrics:   m,
		Ctx:       ctx,
	}
}

// Register adds the snapshot task. An empty expression leaves the scheduler idle.
func (s *Scheduler) Register(snapshotCron string) error {
	if snapshotCron == "" {
		log.Println("[INFO] snapshot schedule disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(snapshotCron, func() { s.Snapshot(s.Ctx) }); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// Snapshot analyses every ticker, records the results and sends a digest.
// Runs are serialised; one ticker failing does not stop the others.
func (s *Scheduler) Snapshot(ctx context.Context) ([]*model.Analysis, map[string]error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("[INFO] running snapshot for %d tickers", len(s.Collector.Tickers))
	var analyses []*model.Analysis
	failures := map[string]error{}

	for _, ticker := range s.Collector.Tickers {
		a, err := s.Collector.Analyze(ctx, ticker)
		if err != nil {
			log.Printf("[ERROR] snapshot %s: %v", ticker, err)
			failures[ticker] = err
			s.Metrics.RecordSnapshot(err)
			if errors.Is(err, model.ErrFetchFailure) {
				if rerr := s.Recorder.RecordFetchFailure(&recorder.FetchFailure{
					Ticker: ticker, Source: s.Collector.Fetcher.Name(), Err: err.Error(),
				}); rerr != nil {
					log.Printf("[ERROR] record fetch failure: %v", rerr)
				}
			}
			continue
		}
		err = s.Recorder.RecordAnalysis(a)
		if err != nil {
			log.Printf("[ERROR] record analysis %s: %v", ticker, err)
		}
		s.Metrics.RecordSnapshot(err)
		analyses = append(analyses, a)
	}

	if s.Notifier != nil {
		s.trySend(ctx, notifier.FormatDigest(s.Collector.Now(), analyses, failures))
	}
	return analyses, failures
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp(s.Collector.Tickers)
	}
	switch strings.ToLower(fields[0]) {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze TICKER"
		}
		a, err := s.Collector.Analyze(ctx, fields[1])
		if err != nil {
			log.Printf("[WARN] command analyze %s: %v", fields[1], err)
			switch {
			case errors.Is(err, model.ErrUnknownTicker):
				return fmt.Sprintf("Unknown ticker %q. %s", fields[1], notifier.FormatHelp(s.Collector.Tickers))
			default:
				return fmt.Sprintf("❌ Could not fetch data for %s, try again later.", strings.ToUpper(fields[1]))
			}
		}
		if err := s.Recorder.RecordAnalysis(a); err != nil {
			log.Printf("[ERROR] record analysis %s: %v", a.Ticker, err)
		}
		return notifier.FormatAnalysisReport(a)
	case "/tickers":
		return strings.Join(s.Collector.Tickers, ", ")
	default:
		return notifier.FormatHelp(s.Collector.Tickers)
	}
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	if err := s.Notifier.SendWithRetry(ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
