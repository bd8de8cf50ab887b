package stores

import (
	"context"
	"fmt"
	"time"

	"guardian-vault-api/internal/model"
)

// Processor converts one raw store record into a processed store.
type Processor struct {
	items ItemBuilder
}

// NewProcessor creates a store processor.
func NewProcessor(items ItemBuilder) *Processor {
	return &Processor{items: items}
}

// Process converts raw into a ProcessedStore. A nil record yields nil, nil:
// the pipeline drops it silently. Currency items are accumulated into the
// cycle's shared currencies value as a side effect.
func (p *Processor) Process(ctx context.Context, raw *model.RawStoreRecord, defs *model.Definitions, catalog *model.BucketCatalog, currencies *model.Currencies, lastPlayed time.Time) (*model.ProcessedStore, error) {
	if raw == nil {
		return nil, nil
	}

	items, err := p.items.BuildItems(ctx, raw, defs, catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to build items for store %s: %w", raw.ID, err)
	}

	for _, it := range items {
		if def := defs.Item(it.Hash); def != nil && def.Currency {
			currencies.Add(it.Hash, int64(it.Quantity))
		}
	}

	store := &model.ProcessedStore{
		ID:      raw.ID,
		Items:   items,
		Buckets: groupByBucket(items, catalog),
	}

	if raw.IsVault() {
		store.Name = "Vault"
		store.IsVault = true
		store.VaultCounts = computeVaultCounts(store.Buckets, catalog)
		return store, nil
	}

	store.Name = raw.ClassName
	store.PowerLevel = raw.PowerLevel
	store.LastPlayed = raw.DateLastPlayed
	store.IsCurrent = !raw.DateLastPlayed.IsZero() && raw.DateLastPlayed.Equal(lastPlayed)
	return store, nil
}

// groupByBucket maps items by bucket hash. Every catalog bucket gets a key,
// empty buckets included.
func groupByBucket(items []model.Item, catalog *model.BucketCatalog) map[uint32][]model.Item {
	buckets := make(map[uint32][]model.Item, len(catalog.Buckets))
	for _, b := range catalog.Buckets {
		buckets[b.Hash] = []model.Item{}
	}
	for _, it := range items {
		buckets[it.BucketHash] = append(buckets[it.BucketHash], it)
	}
	return buckets
}

// computeVaultCounts aggregates item counts for buckets that declare a vault
// bucket association, in vault priority order. Counts accumulate into the
// representative bucket: the bucket itself when account-wide, otherwise the
// associated vault bucket.
func computeVaultCounts(buckets map[uint32][]model.Item, catalog *model.BucketCatalog) map[uint32]model.VaultCount {
	counts := make(map[uint32]model.VaultCount)
	for _, b := range catalog.VaultPriority() {
		if b.VaultBucket == 0 {
			continue
		}

		representative := b
		if !b.AccountWide {
			if vb := catalog.ByHash(b.VaultBucket); vb != nil {
				representative = *vb
			} else {
				representative = model.Bucket{Hash: b.VaultBucket}
			}
		}

		vc := counts[representative.Hash]
		if vc.Bucket == nil {
			rep := representative
			vc.Bucket = &rep
		}
		vc.Count += len(buckets[b.Hash])
		counts[representative.Hash] = vc
	}
	return counts
}
