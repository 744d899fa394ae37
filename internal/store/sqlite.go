package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"
)

var collectionNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// SQLiteStore backs record collections with an embedded SQLite
// database, one append-only table per collection. It is the
// alternative to the JSON-file layout for deployments that want a
// real database without an external server.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Collection returns the named record collection, creating its table
// if needed.
func (s *SQLiteStore) Collection(name string) (*SQLiteCollection, error) {
	if !collectionNameRe.MatchString(name) {
		return nil, fmt.Errorf("invalid collection name %q", name)
	}
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			record TEXT NOT NULL
		)`, name)
	if _, err := s.db.Exec(ddl); err != nil {
		return nil, fmt.Errorf("create collection %s: %w", name, err)
	}
	return &SQLiteCollection{db: s.db, table: name}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SQLiteCollection implements RecordCollection over one table.
// Appends are single INSERTs, so serialization comes from the
// database itself.
type SQLiteCollection struct {
	db    *sql.DB
	table string
}

func (c *SQLiteCollection) All(ctx context.Context) ([]json.RawMessage, error) {
	query := fmt.Sprintf(`SELECT record FROM %s ORDER BY seq`, c.table)
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", c.table, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, json.RawMessage(record))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read collection %s: %w", c.table, err)
	}
	return records, nil
}

func (c *SQLiteCollection) Append(ctx context.Context, record json.RawMessage) error {
	query := fmt.Sprintf(`INSERT INTO %s (record) VALUES (?)`, c.table)
	if _, err := c.db.ExecContext(ctx, query, string(record)); err != nil {
		return fmt.Errorf("append to %s: %w", c.table, err)
	}
	return nil
}
