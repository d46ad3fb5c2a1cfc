// Package dashboard serves the multi-page HTML dashboard, the JSON API and
// the Prometheus endpoint.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"BankLens/internal/assets"
	"BankLens/internal/metrics"
	"BankLens/internal/model"
	"BankLens/internal/recorder"
	"BankLens/internal/reference"
	"BankLens/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

// Analyzer runs one fetch-and-compute pass. *collector.Collector implements it.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) (*model.Analysis, error)
}

// Options wires the server's collaborators.
type Options struct {
	Addr      string
	Tickers   []string
	Analyzer  Analyzer
	Reference *reference.Store
	Catalog   *assets.Catalog
	Recorder  recorder.Recorder
	Metrics   *metrics.Recorder
	Gatherer  prometheus.Gatherer
	Now       func() time.Time
}

// Server handles the dashboard pages and API endpoints.
type Server struct {
	tickers    []string
	analyzer   Analyzer
	reference  *reference.Store
	catalog    *assets.Catalog
	recorder   recorder.Recorder
	metrics    *metrics.Recorder
	now        func() time.Time
	tmpl       *template.Template
	httpServer *http.Server
	startTime  time.Time
}

// NewServer parses the templates and builds the route table.
func NewServer(opts Options) (*Server, error) {
	if opts.Analyzer == nil {
		return nil, errors.New("dashboard: analyzer is required")
	}
	if opts.Reference == nil {
		return nil, errors.New("dashboard: reference store is required")
	}
	if len(opts.Tickers) == 0 {
		return nil, errors.New("dashboard: at least one ticker is required")
	}
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		tickers:   opts.Tickers,
		analyzer:  opts.Analyzer,
		reference: opts.Reference,
		catalog:   opts.Catalog,
		recorder:  opts.Recorder,
		metrics:   opts.Metrics,
		now:       opts.Now,
		tmpl:      tmpl,
		startTime: opts.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.indexHandler)
	mux.HandleFunc("GET /page/{index}", s.pageHandler)
	mux.HandleFunc("GET /report/{ticker}", s.reportHandler)
	mux.HandleFunc("GET /api/analysis/{ticker}", s.analysisHandler)
	mux.HandleFunc("GET /api/reference/{ticker}", s.referenceHandler)
	mux.HandleFunc("GET /api/history/{ticker}", s.historyHandler)
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	if s.catalog != nil {
		mux.Handle("GET /visual/", http.StripPrefix("/visual/", http.FileServerFS(s.catalog.FS())))
	}

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start serves in the background.
func (s *Server) Start() {
	log.Printf("[INFO] dashboard listening on %s", s.httpServer.Addr)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] dashboard server: %v", err)
		}
	}()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("[INFO] shutting down dashboard")
	return s.httpServer.Shutdown(ctx)
}

// ticker resolves the selected ticker; empty selects the first.
func (s *Server) ticker(raw string) (string, bool) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" {
		return s.tickers[0], true
	}
	for _, known := range s.tickers {
		if known == t {
			return t, true
		}
	}
	return t, false
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, pageURL(0, s.tickers[0]), http.StatusFound)
}

func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	page, ok := PageByIndex(idx)
	if !ok {
		http.NotFound(w, r)
		return
	}
	ticker, ok := s.ticker(r.URL.Query().Get("ticker"))
	if !ok {
		http.Error(w, fmt.Sprintf("unknown ticker %q", ticker), http.StatusNotFound)
		return
	}
	s.metrics.RecordPageView(strconv.Itoa(idx))

	view := s.buildPage(r.Context(), page, ticker, r.URL.Query().Get("run") == "1")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "page.html", view); err != nil {
		log.Printf("[ERROR] render page %d: %v", idx, err)
	}
}

func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	ticker, ok := s.ticker(r.PathValue("ticker"))
	if !ok {
		http.Error(w, fmt.Sprintf("unknown ticker %q", ticker), http.StatusNotFound)
		return
	}
	sum, err := s.reference.Summary(ticker)
	if err == nil {
		var text string
		if text, err = report.FeatureImportance(ticker, sum, s.now()); err == nil {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.FeatureImportanceFilename(ticker)))
			_, _ = w.Write([]byte(text))
			return
		}
	}
	http.Error(w, err.Error(), http.StatusNotFound)
}

func (s *Server) analysisHandler(w http.ResponseWriter, r *http.Request) {
	a, err := s.analyzer.Analyze(r.Context(), r.PathValue("ticker"))
	if err != nil {
		log.Printf("[WARN] api analysis %s: %v", r.PathValue("ticker"), err)
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, model.ErrUnknownTicker):
			status = http.StatusNotFound
		case errors.Is(err, model.ErrFetchFailure):
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	if err := s.recorder.RecordAnalysis(a); err != nil {
		log.Printf("[ERROR] record analysis %s: %v", a.Ticker, err)
	}
	writeJSON(w, http.StatusOK, toAnalysisJSON(a))
}

func (s *Server) referenceHandler(w http.ResponseWriter, r *http.Request) {
	ticker, ok := s.ticker(r.PathValue("ticker"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("unknown ticker %q", ticker)})
		return
	}
	out := referenceJSON{Ticker: ticker}
	if m, err := s.reference.Metrics(ticker); err == nil {
		out.Metrics = &m
	}
	if sum, err := s.reference.Summary(ticker); err == nil {
		out.Summary = &sum
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	ticker, ok := s.ticker(r.PathValue("ticker"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("unknown ticker %q", ticker)})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hist, err := s.recorder.History(ticker, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	out := make([]snapshotJSON, 0, len(hist))
	for _, snap := range hist {
		out = append(out, toSnapshotJSON(snap))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": s.now(),
		"uptime":    s.now().Sub(s.startTime).String(),
		"tickers":   s.tickers,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}
