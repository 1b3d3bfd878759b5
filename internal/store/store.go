// Package store keeps a SQLite history of training runs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/utils"
)

// Run is one recorded training run.
type Run struct {
	ID        string
	CreatedAt time.Time
	Dataset   string
	Model     string
	SMOTE     bool
	Sentiment string
	TestSize  float64
	Seed      int64
	Accuracy  float64
	Matrix    [2][2]int
	// Report is the classification report as JSON.
	Report json.RawMessage
}

// Store is a run history backed by a SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path with WAL mode enabled.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := utils.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("runs db: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// timeLayout is fixed width so text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	dataset TEXT NOT NULL,
	model TEXT NOT NULL,
	smote INTEGER NOT NULL DEFAULT 0,
	sentiment TEXT,
	test_size REAL,
	seed INTEGER,
	accuracy REAL,
	matrix_json TEXT,
	report_json TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Record stores r, assigning an ID and timestamp when they are unset, and
// returns the stored run.
func (s *Store) Record(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.Model == "" {
		return r, errors.New("record run: model is required")
	}
	matrix, err := json.Marshal(r.Matrix)
	if err != nil {
		return r, err
	}
	report := string(r.Report)
	if report == "" {
		report = "null"
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO runs (id, created_at, dataset, model, smote, sentiment, test_size, seed, accuracy, matrix_json, report_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(timeLayout), r.Dataset, r.Model, boolToInt(r.SMOTE),
		r.Sentiment, r.TestSize, r.Seed, r.Accuracy, string(matrix), report)
	if err != nil {
		return r, fmt.Errorf("record run: %w", err)
	}
	return r, nil
}

// List returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, created_at, dataset, model, smote, sentiment, test_size, seed, accuracy, matrix_json, report_json
FROM runs ORDER BY created_at DESC, id`
	var args []interface{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r                  Run
			created            string
			smote              int
			sentiment          sql.NullString
			matrix, reportJSON sql.NullString
		)
		if err := rows.Scan(&r.ID, &created, &r.Dataset, &r.Model, &smote, &sentiment,
			&r.TestSize, &r.Seed, &r.Accuracy, &matrix, &reportJSON); err != nil {
			return nil, err
		}
		r.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			r.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		}
		if err != nil {
			return nil, fmt.Errorf("run %s: bad timestamp %q", r.ID, created)
		}
		r.SMOTE = smote != 0
		r.Sentiment = sentiment.String
		if matrix.Valid && matrix.String != "" {
			if err := json.Unmarshal([]byte(matrix.String), &r.Matrix); err != nil {
				return nil, fmt.Errorf("run %s: matrix: %w", r.ID, err)
			}
		}
		if reportJSON.Valid && reportJSON.String != "null" {
			r.Report = json.RawMessage(reportJSON.String)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
