// Package stores implements the inventory loading core: the account stream,
// the reload trigger, the load pipeline that turns raw vendor records into
// processed stores, and the multicast stream consumers subscribe to.
package stores

import (
	"context"
	"time"

	"guardian-vault-api/internal/model"
)

// AccountResolver discovers the accounts reachable with the configured
// credentials when no account has been selected yet.
type AccountResolver interface {
	GetAvailableAccounts(ctx context.Context) ([]model.Account, error)
}

// StoreSource fetches the raw store records for one account. The result
// carries exactly one vault-tagged record; all others are characters.
type StoreSource interface {
	FetchRawStores(ctx context.Context, account model.Account) ([]*model.RawStoreRecord, error)
}

// DefinitionsProvider fetches (or refreshes) manifest definitions.
type DefinitionsProvider interface {
	FetchDefinitions(ctx context.Context) (*model.Definitions, error)
}

// ItemBuilder converts the raw items of one store record into processed
// items, assigning identifiers that are stable within a single load cycle.
type ItemBuilder interface {
	// ResetIdentity clears per-cycle identity state. Called once at the
	// start of every cycle.
	ResetIdentity()

	BuildItems(ctx context.Context, raw *model.RawStoreRecord, defs *model.Definitions, catalog *model.BucketCatalog) ([]model.Item, error)
}

// NewItemsApplier applies "new item" deltas for the account before stores are
// processed. Its effect is observed through item IsNew flags; the pipeline
// ignores any result value.
type NewItemsApplier interface {
	ApplyDeltas(ctx context.Context, account model.Account) error
}

// AnnotationReconciler removes user annotations whose items no longer exist
// in the freshly loaded set.
type AnnotationReconciler interface {
	Reconcile(ctx context.Context, set *model.StoreSet) error
}

// RatingFetcher requests community review data for a set. Fire-and-forget.
type RatingFetcher interface {
	FetchRatings(set *model.StoreSet)
}

// Notification describes a user-visible, non-fatal failure.
type Notification struct {
	Title string    `json:"title"`
	Body  string    `json:"body"`
	At    time.Time `json:"at"`
}

// Notifier receives user-visible failures and telemetry reports.
type Notifier interface {
	Notify(n Notification)
	ReportError(cycle string, err error)
}

// Result is one published outcome of a load cycle: a complete store set, or
// the explicit empty marker when a cycle resolved with no result.
type Result struct {
	Stores *model.StoreSet
}

// Empty reports whether the cycle produced no store set.
func (r Result) Empty() bool {
	return r.Stores == nil
}

// LastPlayedDate returns the most recent DateLastPlayed among the character
// records. The vault record never participates; with no characters the epoch
// is returned.
func LastPlayedDate(records []*model.RawStoreRecord) time.Time {
	last := time.Unix(0, 0).UTC()
	for _, r := range records {
		if r == nil || r.IsVault() {
			continue
		}
		if r.DateLastPlayed.After(last) {
			last = r.DateLastPlayed
		}
	}
	return last
}
