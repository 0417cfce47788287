package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DBFileName is the event log file under the branchkit state directory.
const DBFileName = "events.sqlite3"

// Store defines the interface for persisting and retrieving events.
type Store interface {
	// Append adds a new event to the log.
	Append(ctx context.Context, txnID, eventType string, payload any, metadata map[string]string) error

	// GetByTransaction retrieves all events sharing a transaction ID.
	GetByTransaction(ctx context.Context, txnID string) ([]Event, error)

	// GetRange retrieves events within a time range, newest last.
	GetRange(ctx context.Context, start, end time.Time) ([]Event, error)

	// Stats summarizes the log contents.
	Stats(ctx context.Context) (Stats, error)

	// Prune deletes events older than the cutoff, returning the number removed.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)

	// Close closes the store and releases resources.
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (creating if necessary) the event log database.
// Use ":memory:" for an in-memory database in tests.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		txn_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		payload BLOB NOT NULL,
		metadata TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_txn_id ON events(txn_id);
	CREATE INDEX IF NOT EXISTS idx_timestamp ON events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_event_type ON events(event_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds a new event to the log. The payload is JSON-encoded.
func (s *SQLiteStore) Append(ctx context.Context, txnID, eventType string, payload any, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	var metadataJSON []byte
	if metadata != nil {
		metadataJSON, err = json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
	}

	timestamp := time.Now().Unix()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO events (txn_id, event_type, timestamp, payload, metadata) VALUES (?, ?, ?, ?, ?)",
		txnID, eventType, timestamp, payloadJSON, metadataJSON,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetByTransaction retrieves all events sharing a transaction ID.
func (s *SQLiteStore) GetByTransaction(ctx context.Context, txnID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, txn_id, event_type, timestamp, payload, metadata FROM events WHERE txn_id = ? ORDER BY id",
		txnID,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetRange retrieves events within a time range.
func (s *SQLiteStore) GetRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, txn_id, event_type, timestamp, payload, metadata FROM events WHERE timestamp >= ? AND timestamp <= ? ORDER BY id",
		start.Unix(), end.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Stats summarizes the log contents.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{ByType: map[string]int64{}}

	var first, last sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), MIN(timestamp), MAX(timestamp) FROM events",
	).Scan(&stats.Total, &first, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("query totals: %w", err)
	}
	if first.Valid {
		stats.First = time.Unix(first.Int64, 0)
	}
	if last.Valid {
		stats.Last = time.Unix(last.Int64, 0)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT event_type, COUNT(*) FROM events GROUP BY event_type",
	)
	if err != nil {
		return Stats{}, fmt.Errorf("query type counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventType string
		var count int64
		if err := rows.Scan(&eventType, &count); err != nil {
			return Stats{}, fmt.Errorf("scan type count: %w", err)
		}
		stats.ByType[eventType] = count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate rows: %w", err)
	}
	return stats, nil
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Close()
}

// Prune deletes events older than the cutoff.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE timestamp < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted events: %w", err)
	}
	return n, nil
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		var timestampUnix int64
		var metadataJSON []byte

		err := rows.Scan(&e.ID, &e.TxnID, &e.Type, &timestampUnix, &e.Payload, &metadataJSON)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		e.Timestamp = time.Unix(timestampUnix, 0)

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &e.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata: %w", err)
			}
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return events, nil
}
