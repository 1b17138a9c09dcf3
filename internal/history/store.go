package history

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/dbsmedya/gocipher/internal/search"
)

// Record is one row of search history.
type Record struct {
	RunID      string
	Family     string
	TextLength int
	KeysTried  uint64
	Status     string
	BestKey    string // empty when nothing was found
	BestScore  float64
	BestText   string
	StartedAt  time.Time
	Duration   time.Duration
}

// FromResult summarises a search result for storage.
func FromResult(res *search.Result, textLength int) Record {
	rec := Record{
		RunID:      res.RunID,
		Family:     res.Family.String(),
		TextLength: textLength,
		KeysTried:  res.KeysTried,
		Status:     res.Status.String(),
		StartedAt:  res.StartedAt,
		Duration:   res.Duration,
	}
	if best, ok := res.Best(); ok {
		rec.BestKey = best.Key.String()
		if res.Family.IsPolyalphabetic() {
			rec.BestKey = best.Key.Letters()
		}
		rec.BestScore = best.Score
		rec.BestText = best.Text
	}
	return rec
}

// Store reads and writes the history table.
type Store struct {
	db    *sql.DB
	table string // quoted
}

// NewStore wraps an open database. table must be a plain identifier.
func NewStore(db *sql.DB, table string) (*Store, error) {
	quoted, err := quoteIdentifierSafe(table)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, table: quoted}, nil
}

// EnsureSchema creates the history table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  run_id CHAR(36) NOT NULL UNIQUE,
  family VARCHAR(16) NOT NULL,
  text_length INT NOT NULL,
  keys_tried BIGINT UNSIGNED NOT NULL,
  status VARCHAR(16) NOT NULL,
  best_key VARCHAR(255) NULL,
  best_score DOUBLE NULL,
  best_text MEDIUMTEXT NULL,
  started_at DATETIME(6) NOT NULL,
  duration_ms BIGINT NOT NULL,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`, s.table)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create history table: %w", err)
	}
	return nil
}

// Record inserts rec.
func (s *Store) Record(ctx context.Context, rec Record) error {
	query := fmt.Sprintf(`INSERT INTO %s
  (run_id, family, text_length, keys_tried, status, best_key, best_score, best_text, started_at, duration_ms)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table)

	var (
		bestKey   sql.NullString
		bestScore sql.NullFloat64
		bestText  sql.NullString
	)
	if rec.BestKey != "" {
		bestKey = sql.NullString{String: rec.BestKey, Valid: true}
		bestScore = sql.NullFloat64{Float64: rec.BestScore, Valid: true}
		bestText = sql.NullString{String: rec.BestText, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		rec.RunID,
		rec.Family,
		rec.TextLength,
		int64(rec.KeysTried),
		rec.Status,
		bestKey,
		bestScore,
		bestText,
		rec.StartedAt,
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record search %s: %w", rec.RunID, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT run_id, family, text_length, keys_tried, status,
  best_key, best_score, best_text, started_at, duration_ms
  FROM %s ORDER BY started_at DESC, id DESC LIMIT ?`, s.table)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec        Record
			keysTried  int64
			bestKey    sql.NullString
			bestScore  sql.NullFloat64
			bestText   sql.NullString
			durationMS int64
		)
		if err := rows.Scan(&rec.RunID, &rec.Family, &rec.TextLength, &keysTried, &rec.Status,
			&bestKey, &bestScore, &bestText, &rec.StartedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		rec.KeysTried = uint64(keysTried)
		rec.BestKey = bestKey.String
		rec.BestScore = bestScore.Float64
		rec.BestText = bestText.String
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return records, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// InvalidIdentifierError is returned when a table name contains characters
// other than letters, digits and underscores.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}

// quoteIdentifierSafe validates name and wraps it in backticks.
func quoteIdentifierSafe(name string) (string, error) {
	if !validIdentifierRegex.MatchString(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return "`" + name + "`", nil
}
