package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"BankLens/internal/model"
)

// SQLiteRecorder persists analysis snapshots to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_snapshots (
			id          TEXT PRIMARY KEY,
			ticker      TEXT NOT NULL,
			timestamp   INTEGER NOT NULL,
			bar_date    INTEGER,
			bars        INTEGER,
			close       REAL,
			sma20       REAL,
			rsi14       REAL,
			macd        REAL,
			macd_signal REAL,
			volume      REAL,
			volume_avg  REAL,
			trend       TEXT,
			momentum    TEXT,
			crossover   TEXT,
			activity    TEXT,
			est_today   INTEGER,
			est_next    INTEGER,
			warnings    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ticker_ts ON analysis_snapshots(ticker, timestamp)`,

		`CREATE TABLE IF NOT EXISTS fetch_failures (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			ticker    TEXT,
			source    TEXT,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_ts ON fetch_failures(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := SnapshotFromAnalysis(a)
	var barDate any
	if !s.BarDate.IsZero() {
		barDate = s.BarDate.Unix()
	}
	_, err := r.db.Exec(`INSERT INTO analysis_snapshots
		(id, ticker, timestamp, bar_date, bars, close, sma20, rsi14, macd, macd_signal,
		 volume, volume_avg, trend, momentum, crossover, activity,
		 est_today, est_next, warnings)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		s.ID, s.Ticker, s.ComputedAt.Unix(), barDate, s.Bars,
		nullable(s.Close), nullable(s.SMA20), nullable(s.RSI),
		nullable(s.MACD), nullable(s.MACDSignal),
		nullable(s.Volume), nullable(s.VolumeAvg),
		string(s.Trend), string(s.Momentum), string(s.Crossover), string(s.Activity),
		s.EstToday, s.EstNext, s.Warnings,
	)
	return err
}

func (r *SQLiteRecorder) RecordFetchFailure(f *FetchFailure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_failures (timestamp, ticker, source, error)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), f.Ticker, f.Source, f.Err,
	)
	return err
}

// History returns the latest snapshots for ticker, newest first.
func (r *SQLiteRecorder) History(ticker string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`SELECT id, ticker, timestamp, bar_date, bars, close, sma20, rsi14,
		macd, macd_signal, volume, volume_avg, trend, momentum, crossover, activity,
		est_today, est_next, warnings
		FROM analysis_snapshots WHERE ticker = ? ORDER BY timestamp DESC, rowid DESC LIMIT ?`,
		ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			s                                        Snapshot
			ts                                       int64
			barDate                                  sql.NullInt64
			closeV, sma, rsi, macd, sig, vol, volAvg sql.NullFloat64
			trend, momentum, crossover, activity     string
		)
		if err := rows.Scan(&s.ID, &s.Ticker, &ts, &barDate, &s.Bars,
			&closeV, &sma, &rsi, &macd, &sig, &vol, &volAvg,
			&trend, &momentum, &crossover, &activity,
			&s.EstToday, &s.EstNext, &s.Warnings); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		s.ComputedAt = time.Unix(ts, 0).UTC()
		if barDate.Valid {
			s.BarDate = time.Unix(barDate.Int64, 0).UTC()
		}
		s.Close, s.SMA20, s.RSI = fromNull(closeV), fromNull(sma), fromNull(rsi)
		s.MACD, s.MACDSignal = fromNull(macd), fromNull(sig)
		s.Volume, s.VolumeAvg = fromNull(vol), fromNull(volAvg)
		s.Trend = model.Trend(trend)
		s.Momentum = model.Momentum(momentum)
		s.Crossover = model.Crossover(crossover)
		s.Activity = model.Activity(activity)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

// nullable stores undefined indicator values as NULL.
func nullable(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func fromNull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return model.Undefined()
	}
	return v.Float64
}
