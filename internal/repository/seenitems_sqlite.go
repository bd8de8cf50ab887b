package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteSeenItemsRepository implements SeenItemsRepository using SQLite.
type SQLiteSeenItemsRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteSeenItemsRepository creates a new SQLite seen-items repository.
func NewSQLiteSeenItemsRepository(dbPath string) (*SQLiteSeenItemsRepository, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	query := `
	CREATE TABLE IF NOT EXISTS seen_items (
		membership_id TEXT NOT NULL,
		item_hash INTEGER NOT NULL,
		PRIMARY KEY (membership_id, item_hash)
	);
	`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteSeenItemsRepository] Initialized with database: %s", dbPath)
	return &SQLiteSeenItemsRepository{db: db}, nil
}

// LoadSeen returns the set of seen item hashes for one membership.
func (r *SQLiteSeenItemsRepository) LoadSeen(ctx context.Context, membershipID string) (map[uint32]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx,
		`SELECT item_hash FROM seen_items WHERE membership_id = ?`, membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seen items: %w", err)
	}
	defer rows.Close()

	seen := make(map[uint32]struct{})
	for rows.Next() {
		var hash int64
		if err := rows.Scan(&hash); err != nil {
			return nil, fmt.Errorf("failed to scan seen item: %w", err)
		}
		seen[uint32(hash)] = struct{}{}
	}
	return seen, rows.Err()
}

// MarkSeen records hashes as seen for one membership.
func (r *SQLiteSeenItemsRepository) MarkSeen(ctx context.Context, membershipID string, hashes []uint32) error {
	if len(hashes) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO seen_items (membership_id, item_hash) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, hash := range hashes {
		if _, err := stmt.ExecContext(ctx, membershipID, int64(hash)); err != nil {
			return fmt.Errorf("failed to mark item %d seen: %w", hash, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteSeenItemsRepository) Close() error {
	return r.db.Close()
}

var _ SeenItemsRepository = (*SQLiteSeenItemsRepository)(nil)
