package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"guardian-vault-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteAnnotationRepository implements AnnotationRepository using SQLite.
// Thread-safe with WAL mode for high-concurrency reads.
type SQLiteAnnotationRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteAnnotationRepository creates a new SQLite annotation repository.
// dbPath is the path to the SQLite database file (e.g. "./data/annotations.db").
func NewSQLiteAnnotationRepository(dbPath string) (*SQLiteAnnotationRepository, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createAnnotationTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteAnnotationRepository] Initialized with database: %s", dbPath)
	return &SQLiteAnnotationRepository{db: db}, nil
}

func createAnnotationTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS item_annotations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		membership_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		tag TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		updated_at DATETIME NOT NULL,
		UNIQUE(membership_id, item_id)
	);
	CREATE INDEX IF NOT EXISTS idx_annotation_membership ON item_annotations(membership_id);
	CREATE INDEX IF NOT EXISTS idx_annotation_updated ON item_annotations(updated_at);
	`
	_, err := db.Exec(query)
	return err
}

// Upsert inserts or updates the annotation for one item instance.
func (r *SQLiteAnnotationRepository) Upsert(ctx context.Context, a model.Annotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO item_annotations (membership_id, item_id, tag, notes, updated_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT(membership_id, item_id) DO UPDATE SET
			tag = excluded.tag,
			notes = excluded.notes,
			updated_at = datetime('now')`

	_, err := r.db.ExecContext(ctx, query, a.MembershipID, a.ItemID, a.Tag, a.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert annotation: %w", err)
	}
	return nil
}

// ListByMembership returns all annotations for one membership.
func (r *SQLiteAnnotationRepository) ListByMembership(ctx context.Context, membershipID string) ([]model.Annotation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT id, membership_id, item_id, tag, notes, updated_at
		FROM item_annotations WHERE membership_id = ? ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	defer rows.Close()

	var annotations []model.Annotation
	for rows.Next() {
		var a model.Annotation
		if err := rows.Scan(&a.ID, &a.MembershipID, &a.ItemID, &a.Tag, &a.Notes, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		annotations = append(annotations, a)
	}
	return annotations, rows.Err()
}

// DeleteMissing removes annotations whose item IDs are not in keep.
func (r *SQLiteAnnotationRepository) DeleteMissing(ctx context.Context, membershipID string, keep []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(keep) == 0 {
		result, err := r.db.ExecContext(ctx,
			`DELETE FROM item_annotations WHERE membership_id = ?`, membershipID)
		if err != nil {
			return 0, fmt.Errorf("failed to delete annotations: %w", err)
		}
		return result.RowsAffected()
	}

	placeholders := strings.Repeat("?,", len(keep))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(
		`DELETE FROM item_annotations WHERE membership_id = ? AND item_id NOT IN (%s)`, placeholders)

	args := make([]interface{}, 0, len(keep)+1)
	args = append(args, membershipID)
	for _, id := range keep {
		args = append(args, id)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete missing annotations: %w", err)
	}
	return result.RowsAffected()
}

// DeleteStale removes annotations not updated within the threshold.
func (r *SQLiteAnnotationRepository) DeleteStale(ctx context.Context, threshold time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-threshold)

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM item_annotations WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale annotations: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Printf("[SQLiteAnnotationRepository] Cleaned up %d stale annotations (threshold: %v)", deleted, threshold)
	}
	return deleted, nil
}

// Close closes the database connection.
func (r *SQLiteAnnotationRepository) Close() error {
	return r.db.Close()
}

var _ AnnotationRepository = (*SQLiteAnnotationRepository)(nil)
