package repository

import (
	"context"
	"time"

	"guardian-vault-api/internal/model"
)

// AnnotationRepository defines persistence for per-item user annotations.
type AnnotationRepository interface {
	// Upsert inserts or updates the annotation for one item instance.
	Upsert(ctx context.Context, a model.Annotation) error

	// ListByMembership returns all annotations for one membership.
	ListByMembership(ctx context.Context, membershipID string) ([]model.Annotation, error)

	// DeleteMissing removes annotations for the membership whose item IDs
	// are not in keep. Returns the number of rows removed.
	DeleteMissing(ctx context.Context, membershipID string, keep []string) (int64, error)

	// DeleteStale removes annotations not updated within the threshold.
	DeleteStale(ctx context.Context, threshold time.Duration) (int64, error)

	// Close closes the repository connection.
	Close() error
}

// SeenItemsRepository tracks which item hashes a membership has already seen,
// backing the "is this item new" state.
type SeenItemsRepository interface {
	// LoadSeen returns the set of seen item hashes for one membership.
	LoadSeen(ctx context.Context, membershipID string) (map[uint32]struct{}, error)

	// MarkSeen records hashes as seen for one membership.
	MarkSeen(ctx context.Context, membershipID string, hashes []uint32) error

	// Close closes the repository connection.
	Close() error
}

// AccountLinkRepository resolves app user keys to linked game accounts
// (optional MySQL-backed directory).
type AccountLinkRepository interface {
	// GetLinkedAccount finds the game account linked to an app user key.
	// Returns nil, nil when no link exists.
	GetLinkedAccount(ctx context.Context, userKey string) (*model.Account, error)
}
