package main

import (
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"BankLens/internal/collector"
	"BankLens/internal/config"
	"BankLens/internal/metrics"
	"BankLens/internal/recorder"
	"BankLens/internal/reference"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg       *config.Config
	registry  *prometheus.Registry
	metrics   *metrics.Recorder
	collector *collector.Collector
	reference *reference.Store
	recorder  recorder.Recorder
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	ds := cfg.DataSource
	switch ds.Provider {
	case "rest":
		return collector.NewRESTFetcher(ds.BaseURL, ds.APIKey, cfg.Proxy, ds.RatePerSecond)
	case "mock":
		return &collector.MockFetcher{Price: 5000}
	default:
		return collector.NewYahooFetcher(cfg.Proxy, ds.RatePerSecond)
	}
}

func newApp(withRecorder bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewRecorder(reg)

	fetcher := newFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.DataSource.Tickers, cfg.DataSource.LookbackDays)
	col.Metrics = m

	store, err := reference.Load(cfg.Reference.MetricsFile, cfg.Reference.SummaryFile, m)
	if err != nil {
		return nil, err
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if withRecorder && cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		} else {
			rec = sr
		}
	}

	return &app{
		cfg:       cfg,
		registry:  reg,
		metrics:   m,
		collector: col,
		reference: store,
		recorder:  rec,
	}, nil
}

func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
}
