package recorder

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/PugDoggie/tw-stock-tracker-sub000/internal/model"
)

// SQLiteRecorder persists indicator history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode lets dashboards read while the tracker writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS indicator_snapshots (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			interval        TEXT,
			bars            INTEGER,
			price           REAL,
			change          REAL,
			change_percent  REAL,
			rsi             REAL,
			macd            REAL,
			macd_signal     REAL,
			macd_histogram  REAL,
			macd_trend      TEXT,
			sma20           REAL,
			sma50           REAL,
			ema12           REAL,
			ma_trend        TEXT,
			bb_upper        REAL,
			bb_middle       REAL,
			bb_lower        REAL,
			bb_position     TEXT,
			stoch_k         REAL,
			stoch_d         REAL,
			stoch_status    TEXT,
			atr             REAL,
			high_52w        REAL,
			low_52w         REAL,
			position_52w    REAL,
			signal          TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol_ts ON indicator_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS signal_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			kind       TEXT,
			price      REAL,
			rsi        REAL,
			reason     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ts ON signal_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordQuote(q *model.Quote) error {
	if q == nil || q.Bundle == nil {
		return errors.New("record quote: empty quote")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := q.FetchedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	b := q.Bundle
	var signal string
	if q.Signal != nil {
		signal = string(q.Signal.Kind)
	}

	_, err := r.db.Exec(`INSERT INTO indicator_snapshots
		(timestamp, symbol, interval, bars, price, change, change_percent, rsi,
		 macd, macd_signal, macd_histogram, macd_trend,
		 sma20, sma50, ema12, ma_trend,
		 bb_upper, bb_middle, bb_lower, bb_position,
		 stoch_k, stoch_d, stoch_status, atr,
		 high_52w, low_52w, position_52w, signal)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		ts.Unix(), q.Symbol, q.Interval, q.Bars, b.Price, b.Change, b.ChangePercent, b.RSI,
		b.MACD.Value, b.MACD.Signal, b.MACD.Histogram, string(b.MACD.Trend),
		b.MovingAverages.SMA20, b.MovingAverages.SMA50, b.MovingAverages.EMA12, string(b.MovingAverages.Trend),
		b.BollingerBands.Upper, b.BollingerBands.Middle, b.BollingerBands.Lower, string(b.BollingerBands.Position),
		b.Stochastic.K, b.Stochastic.D, string(b.Stochastic.Status), b.ATR,
		q.High52w, q.Low52w, q.Position52w, signal,
	)
	return err
}

func (r *SQLiteRecorder) RecordSignal(evt *SignalEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signal_events
		(timestamp, symbol, kind, price, rsi, reason)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, string(evt.Kind), evt.Price, evt.RSI, evt.Reason,
	)
	return err
}

// LatestQuotes returns up to limit snapshots, newest first.
func (r *SQLiteRecorder) LatestQuotes(limit int) ([]QuoteRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, symbol, interval, price, change_percent, rsi,
		macd_histogram, macd_trend, ma_trend, bb_position, stoch_k, atr, signal
		FROM indicator_snapshots ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []QuoteRow
	for rows.Next() {
		var row QuoteRow
		var ts int64
		if err := rows.Scan(&ts, &row.Symbol, &row.Interval, &row.Price, &row.ChangePercent, &row.RSI,
			&row.MACDHistogram, &row.MACDTrend, &row.MATrend, &row.BandPosition,
			&row.StochK, &row.ATR, &row.Signal); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		row.Timestamp = time.Unix(ts, 0)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
