// Package storage persists audit-run history to SQLite so compliance can
// be tracked across theme changes.
package storage

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/evplan/contrast-audit/pkg/audit"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS audit_runs (
  id              INTEGER PRIMARY KEY,
  ran_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  source          TEXT NOT NULL,
  total           INTEGER NOT NULL,
  pass_aa         INTEGER NOT NULL,
  pass_aaa        INTEGER NOT NULL,
  large_text_only INTEGER NOT NULL,
  fail            INTEGER NOT NULL,
  verdict         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_time ON audit_runs(ran_at);
CREATE TABLE IF NOT EXISTS audit_results (
  id          INTEGER PRIMARY KEY,
  run_id      INTEGER NOT NULL REFERENCES audit_runs(id),
  position    INTEGER NOT NULL,
  name        TEXT NOT NULL,
  category    TEXT NOT NULL,
  fg_hex      TEXT NOT NULL,
  bg_hex      TEXT NOT NULL,
  ratio       REAL NOT NULL,
  meets_aa    INTEGER NOT NULL CHECK (meets_aa IN (0,1)),
  meets_aaa   INTEGER NOT NULL CHECK (meets_aaa IN (0,1)),
  meets_large INTEGER NOT NULL CHECK (meets_large IN (0,1))
);
CREATE INDEX IF NOT EXISTS idx_results_run ON audit_results(run_id, position);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// RunSummary is one row of the audit_runs table.
type RunSummary struct {
	ID            int64
	RanAt         time.Time
	Source        string
	Total         int
	PassAA        int
	PassAAA       int
	LargeTextOnly int
	Fail          int
	Verdict       string
}

// StoredResult is one row of the audit_results table.
type StoredResult struct {
	Position   int
	Name       string
	Category   string
	FgHex      string
	BgHex      string
	Ratio      float64
	MeetsAA    bool
	MeetsAAA   bool
	MeetsLarge bool
}

// SaveRun persists a report and its per-case results, returning the run id.
func (d *DB) SaveRun(ctx context.Context, source string, r *audit.Report) (runID int64, err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO audit_runs(ran_at, source, total, pass_aa, pass_aaa, large_text_only, fail, verdict) VALUES(?,?,?,?,?,?,?,?)`,
		r.GeneratedAt.UTC(), source, r.Totals.Count, r.Totals.PassAA, r.Totals.PassAAA, r.Totals.LargeTextOnly, r.Totals.Fail, r.Verdict())
	if err != nil {
		return 0, err
	}
	runID, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, result := range r.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO audit_results(run_id, position, name, category, fg_hex, bg_hex, ratio, meets_aa, meets_aaa, meets_large) VALUES(?,?,?,?,?,?,?,?,?,?)`,
			runID, i, result.Case.Name, result.Case.Category,
			result.Case.Foreground.Hex(), result.Case.Background.Hex(),
			result.Ratio, boolToInt(result.Level.MeetsAA), boolToInt(result.Level.MeetsAAA), boolToInt(result.Level.MeetsLargeTextAA))
		if err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `SELECT id, ran_at, source, total, pass_aa, pass_aaa, large_text_only, fail, verdict FROM audit_runs ORDER BY ran_at DESC, id DESC LIMIT ?`
	rows, err := d.sql.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var ranAtStr string
		if err := rows.Scan(&s.ID, &ranAtStr, &s.Source, &s.Total, &s.PassAA, &s.PassAAA, &s.LargeTextOnly, &s.Fail, &s.Verdict); err != nil {
			return nil, err
		}
		s.RanAt = parseSQLiteTime(ranAtStr)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RunResults returns the stored per-case results for a run, in audit order.
func (d *DB) RunResults(ctx context.Context, runID int64) ([]StoredResult, error) {
	q := `SELECT position, name, category, fg_hex, bg_hex, ratio, meets_aa, meets_aaa, meets_large FROM audit_results WHERE run_id = ? ORDER BY position`
	rows, err := d.sql.QueryContext(ctx, q, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredResult
	for rows.Next() {
		var r StoredResult
		var aa, aaa, large int
		if err := rows.Scan(&r.Position, &r.Name, &r.Category, &r.FgHex, &r.BgHex, &r.Ratio, &aa, &aaa, &large); err != nil {
			return nil, err
		}
		r.MeetsAA = aa == 1
		r.MeetsAAA = aaa == 1
		r.MeetsLarge = large == 1
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryStats aggregates pass rates per category across all stored runs.
type CategoryStats struct {
	Category    string
	ResultCount int
	PassAACount int
	WorstRatio  float64
}

func (d *DB) Stats(ctx context.Context) ([]CategoryStats, error) {
	query := `
		SELECT
			category,
			COUNT(*),
			SUM(meets_aa),
			MIN(ratio)
		FROM
			audit_results
		GROUP BY
			category
		ORDER BY
			category;
	`
	rows, err := d.sql.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []CategoryStats
	for rows.Next() {
		var s CategoryStats
		if err := rows.Scan(&s.Category, &s.ResultCount, &s.PassAACount, &s.WorstRatio); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

func parseSQLiteTime(s string) time.Time {
	// SQLite CURRENT_TIMESTAMP format first, then RFC3339.
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05.999999999-07:00", s); err == nil {
		return t
	}
	return time.Time{}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
