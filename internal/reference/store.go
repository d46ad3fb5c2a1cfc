// Package reference serves the precomputed model metrics and dataset
// summaries. Files are read once at startup and never reloaded.
package reference

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"BankLens/internal/metrics"
	"BankLens/internal/model"
)

// Store is a read-only view of metrics.json and data_summary.json.
// It is safe for concurrent use because nothing mutates it after Load.
type Store struct {
	metricsFile string
	summaryFile string
	metrics     map[string]model.ModelMetrics
	summaries   map[string]model.DatasetSummary
	rec         *metrics.Recorder
}

// Load reads both reference files. A missing file is not an error: the
// store answers every lookup for it with model.ErrMissingReference. A file
// that exists but does not parse is an error.
func Load(metricsPath, summaryPath string, rec *metrics.Recorder) (*Store, error) {
	s := &Store{
		metricsFile: filepath.Base(metricsPath),
		summaryFile: filepath.Base(summaryPath),
		metrics:     map[string]model.ModelMetrics{},
		summaries:   map[string]model.DatasetSummary{},
		rec:         rec,
	}
	if err := readJSON(metricsPath, &s.metrics); err != nil {
		return nil, fmt.Errorf("load %s: %w", s.metricsFile, err)
	}
	if err := readJSON(summaryPath, &s.summaries); err != nil {
		return nil, fmt.Errorf("load %s: %w", s.summaryFile, err)
	}
	log.Printf("[INFO] reference data loaded: %d metrics, %d summaries", len(s.metrics), len(s.summaries))
	return s, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[WARN] reference file not found: %s", path)
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// Metrics returns the model metrics for ticker.
func (s *Store) Metrics(ticker string) (model.ModelMetrics, error) {
	m, ok := s.metrics[ticker]
	if !ok {
		s.rec.RecordReferenceMiss(s.metricsFile)
		return model.ModelMetrics{}, fmt.Errorf("%w: %s has no entry in %s", model.ErrMissingReference, ticker, s.metricsFile)
	}
	return m, nil
}

// Summary returns the dataset summary for ticker.
func (s *Store) Summary(ticker string) (model.DatasetSummary, error) {
	d, ok := s.summaries[ticker]
	if !ok {
		s.rec.RecordReferenceMiss(s.summaryFile)
		return model.DatasetSummary{}, fmt.Errorf("%w: %s has no entry in %s", model.ErrMissingReference, ticker, s.summaryFile)
	}
	return d, nil
}

// Tickers lists every ticker present in either file, sorted.
func (s *Store) Tickers() []string {
	seen := map[string]bool{}
	for t := range s.metrics {
		seen[t] = true
	}
	for t := range s.summaries {
		seen[t] = true
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
