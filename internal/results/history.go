package results

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// schema holds the campaign history table. Samples are stored in the same
// space-separated form the output file uses.
const schema = `
CREATE TABLE IF NOT EXISTS campaigns (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	model      TEXT NOT NULL,
	trials     INTEGER NOT NULL,
	seed       INTEGER NOT NULL,
	mean       REAL NOT NULL,
	median     REAL NOT NULL,
	std_dev    REAL NOT NULL,
	min        REAL NOT NULL,
	max        REAL NOT NULL,
	samples    TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_campaigns_created_at ON campaigns(created_at);
`

// Record is one completed campaign as stored in history.
type Record struct {
	ID        int64     `json:"id"`
	Model     string    `json:"model"`
	Trials    int       `json:"trials"`
	Seed      uint64    `json:"seed"`
	Summary   Summary   `json:"summary"`
	Samples   []float64 `json:"samples,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryStore persists campaign records in a SQLite database.
type HistoryStore struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenHistory opens (creating if necessary) the history database at
// dir/history.db.
func OpenHistory(dir string) (*HistoryStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

// Save stores a completed campaign and returns its history id. A zero
// CreatedAt is filled with the current time.
func (s *HistoryStore) Save(ctx context.Context, rec Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.Model == "" {
		return 0, fmt.Errorf("record model name is required")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO campaigns (model, trials, seed, mean, median, std_dev, min, max, samples, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Model, rec.Trials, int64(rec.Seed),
		rec.Summary.Mean, rec.Summary.Median, rec.Summary.StdDev,
		rec.Summary.Min, rec.Summary.Max,
		FormatTimes(rec.Samples),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert campaign: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read campaign id: %w", err)
	}
	return id, nil
}

// List returns the most recent campaigns, newest first, without their raw
// samples. limit <= 0 means no limit.
func (s *HistoryStore) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT id, model, trials, seed, mean, median, std_dev, min, max, created_at
		FROM campaigns ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns one campaign by id, including its raw samples. It returns
// sql.ErrNoRows if the id is unknown.
func (s *HistoryStore) Get(ctx context.Context, id int64) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, model, trials, seed, mean, median, std_dev, min, max, created_at, samples
		FROM campaigns WHERE id = ?`, id)

	var rec Record
	var seed int64
	var createdAt, samples string
	err := row.Scan(&rec.ID, &rec.Model, &rec.Trials, &seed,
		&rec.Summary.Mean, &rec.Summary.Median, &rec.Summary.StdDev,
		&rec.Summary.Min, &rec.Summary.Max, &createdAt, &samples)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign %d: %w", id, err)
	}
	rec.Seed = uint64(seed)
	rec.Summary.Trials = rec.Trials
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at for campaign %d: %w", id, err)
	}
	if rec.Samples, err = ParseTimes(samples); err != nil {
		return nil, fmt.Errorf("failed to parse samples for campaign %d: %w", id, err)
	}
	return &rec, nil
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// scanRecord reads the common column set from a list query row.
func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var seed int64
	var createdAt string
	err := rows.Scan(&rec.ID, &rec.Model, &rec.Trials, &seed,
		&rec.Summary.Mean, &rec.Summary.Median, &rec.Summary.StdDev,
		&rec.Summary.Min, &rec.Summary.Max, &createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("failed to scan campaign: %w", err)
	}
	rec.Seed = uint64(seed)
	rec.Summary.Trials = rec.Trials
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Record{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return rec, nil
}
