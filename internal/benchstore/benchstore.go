// Package benchstore persists gesture-recognizer benchmark runs to SQLite.
package benchstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Run is one invocation of the benchmark harness against a dictionary and layout.
type Run struct {
	ID          int64
	StartedAt   time.Time
	DictLang    string
	LayoutTag   string
	CaseCount   int
	Top1Count   int
	Top3Count   int
	AvgLatencyMs float64
}

// CaseResult is one word's outcome within a run.
type CaseResult struct {
	RunID      int64
	Word       string
	Top1       bool
	Top3       bool
	Rank       int
	Confidence float64
	LatencyMs  float64
}

// Store wraps SQLite access for benchmark runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			dict_lang TEXT NOT NULL,
			layout_tag TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS case_results (
			run_id INTEGER NOT NULL,
			word TEXT NOT NULL,
			top1 INTEGER NOT NULL,
			top3 INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			confidence REAL NOT NULL,
			latency_ms REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_case_results_run_id ON case_results(run_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a benchmark run and its per-case results in one transaction.
func (s *Store) InsertRun(ctx context.Context, dictLang, layoutTag string, startedAt time.Time, results []CaseResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, dict_lang, layout_tag) VALUES (?, ?, ?)`,
		startedAt.Format(time.RFC3339Nano), dictLang, layoutTag)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(results) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO case_results (run_id, word, top1, top3, rank, confidence, latency_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, r := range results {
			if _, err := stmt.ExecContext(ctx, runID, r.Word, boolToInt(r.Top1), boolToInt(r.Top3), r.Rank, r.Confidence, r.LatencyMs); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRuns returns the most recent runs, most recent first, limited to last
// entries (0 means unlimited).
func (s *Store) ListRuns(ctx context.Context, last int) ([]Run, error) {
	query := `SELECT r.id, r.started_at, r.dict_lang, r.layout_tag,
		COUNT(c.word), COALESCE(SUM(c.top1), 0), COALESCE(SUM(c.top3), 0), COALESCE(AVG(c.latency_ms), 0)
		FROM runs r
		LEFT JOIN case_results c ON c.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at DESC`
	if last > 0 {
		query += fmt.Sprintf(" LIMIT %d", last)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt string
		if err := rows.Scan(&run.ID, &startedAt, &run.DictLang, &run.LayoutTag,
			&run.CaseCount, &run.Top1Count, &run.Top3Count, &run.AvgLatencyMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		run.StartedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// ListCaseResults returns every per-case result recorded for runID.
func (s *Store) ListCaseResults(ctx context.Context, runID int64) ([]CaseResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, word, top1, top3, rank, confidence, latency_ms
		 FROM case_results WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []CaseResult
	for rows.Next() {
		var r CaseResult
		var top1, top3 int
		if err := rows.Scan(&r.RunID, &r.Word, &top1, &top3, &r.Rank, &r.Confidence, &r.LatencyMs); err != nil {
			return nil, err
		}
		r.Top1 = top1 != 0
		r.Top3 = top3 != 0
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
