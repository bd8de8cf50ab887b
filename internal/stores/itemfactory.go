package stores

import (
	"context"
	"fmt"
	"sync"

	"guardian-vault-api/internal/model"
	"guardian-vault-api/pkg/uid"
)

// NewItemsTracker answers whether an item hash is currently marked new.
type NewItemsTracker interface {
	IsNew(hash uint32) bool
}

// ItemFactory is the default ItemBuilder. Items carrying a vendor instance ID
// keep it; the rest get a generated identifier that is stable within one load
// cycle and discarded at the next ResetIdentity.
type ItemFactory struct {
	newItems NewItemsTracker

	mu       sync.Mutex
	assigned map[string]string
}

// NewItemFactory creates an item factory. tracker may be nil, in which case
// no item is marked new.
func NewItemFactory(tracker NewItemsTracker) *ItemFactory {
	return &ItemFactory{
		newItems: tracker,
		assigned: make(map[string]string),
	}
}

// ResetIdentity drops all generated identifiers.
func (f *ItemFactory) ResetIdentity() {
	f.mu.Lock()
	f.assigned = make(map[string]string)
	f.mu.Unlock()
}

// BuildItems converts the raw items of one store record.
func (f *ItemFactory) BuildItems(ctx context.Context, raw *model.RawStoreRecord, defs *model.Definitions, catalog *model.BucketCatalog) ([]model.Item, error) {
	items := make([]model.Item, 0, len(raw.Items))
	for i, ri := range raw.Items {
		if ri.ItemHash == 0 {
			return nil, fmt.Errorf("malformed raw item at index %d in store %s", i, raw.ID)
		}

		def := defs.Item(ri.ItemHash)

		name := fmt.Sprintf("Unknown Item %d", ri.ItemHash)
		bucketHash := ri.BucketHash
		if def != nil {
			name = def.Name
			if bucketHash == 0 {
				bucketHash = def.BucketHash
			}
		}

		quantity := ri.Quantity
		if quantity == 0 {
			quantity = 1
		}

		id := ri.InstanceID
		if id == "" {
			id = f.identityFor(fmt.Sprintf("%s:%d:%d", raw.ID, ri.ItemHash, i))
		}

		items = append(items, model.Item{
			ID:         id,
			Hash:       ri.ItemHash,
			Name:       name,
			BucketHash: bucketHash,
			Quantity:   quantity,
			IsNew:      f.newItems != nil && f.newItems.IsNew(ri.ItemHash),
		})
	}
	return items, nil
}

func (f *ItemFactory) identityFor(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if id, ok := f.assigned[key]; ok {
		return id
	}
	id := uid.New()
	f.assigned[key] = id
	return id
}

var _ ItemBuilder = (*ItemFactory)(nil)
