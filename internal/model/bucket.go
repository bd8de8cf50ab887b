package model

// Bucket hashes processed first when aggregating vault counts. Remaining
// buckets follow in catalog order.
const (
	BucketWeapons uint32 = 4046403665
	BucketArmor   uint32 = 3003523923
	BucketGeneral uint32 = 138197802
)

// Bucket is a named storage slot category (e.g. "Weapons").
type Bucket struct {
	Hash uint32 `json:"hash"`
	Name string `json:"name"`
	// AccountWide buckets hold their own items in the vault instead of
	// delegating to a vault bucket.
	AccountWide bool `json:"account_wide"`
	// VaultBucket is the aggregation target used by the vault variant.
	// Zero means the bucket does not participate in vault accounting.
	VaultBucket uint32 `json:"vault_bucket,omitempty"`
}

// BucketCatalog is the application-wide, read-only set of bucket definitions.
type BucketCatalog struct {
	Buckets []Bucket
}

// ByHash returns the bucket with the given hash, or nil.
func (c *BucketCatalog) ByHash(hash uint32) *Bucket {
	for i := range c.Buckets {
		if c.Buckets[i].Hash == hash {
			return &c.Buckets[i]
		}
	}
	return nil
}

// VaultPriority returns the catalog's buckets in vault accounting order:
// Weapons, Armor, General, then the rest in catalog order.
func (c *BucketCatalog) VaultPriority() []Bucket {
	ordered := make([]Bucket, 0, len(c.Buckets))
	for _, hash := range []uint32{BucketWeapons, BucketArmor, BucketGeneral} {
		if b := c.ByHash(hash); b != nil {
			ordered = append(ordered, *b)
		}
	}
	for _, b := range c.Buckets {
		switch b.Hash {
		case BucketWeapons, BucketArmor, BucketGeneral:
			continue
		}
		ordered = append(ordered, b)
	}
	return ordered
}
