package model

import "time"

// VaultStoreID is the identifying tag the vendor API uses for the shared vault
// record. Every other record is a character.
const VaultStoreID = "vault"

// RawStoreRecord is the vendor-API shape for one character or the shared vault.
// Only the fields the loading pipeline reads are modeled; the rest of the wire
// format stays opaque in Items.
type RawStoreRecord struct {
	ID             string    `json:"id"`
	ClassName      string    `json:"class_name,omitempty"`
	PowerLevel     int       `json:"power_level,omitempty"`
	DateLastPlayed time.Time `json:"date_last_played,omitempty"`
	Items          []RawItem `json:"items"`
}

// IsVault reports whether this record is the shared vault.
func (r *RawStoreRecord) IsVault() bool {
	return r.ID == VaultStoreID
}

// RawItem is one unprocessed inventory entry inside a raw store record.
type RawItem struct {
	ItemHash   uint32 `json:"item_hash"`
	BucketHash uint32 `json:"bucket_hash"`
	InstanceID string `json:"instance_id,omitempty"`
	Quantity   int    `json:"quantity"`
}

// Item is a processed, display-ready inventory item.
type Item struct {
	// ID is stable within one load cycle: the vendor instance ID when the
	// item has one, otherwise an identifier assigned by the item factory.
	ID         string `json:"id"`
	Hash       uint32 `json:"hash"`
	Name       string `json:"name"`
	BucketHash uint32 `json:"bucket_hash"`
	Quantity   int    `json:"quantity"`
	IsNew      bool   `json:"is_new"`
}

// VaultCount holds the aggregated item count for one vault bucket.
type VaultCount struct {
	Count  int     `json:"count"`
	Bucket *Bucket `json:"bucket"`
}

// ProcessedStore is one fully converted store: a character or the vault.
type ProcessedStore struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	IsVault    bool      `json:"is_vault"`
	PowerLevel int       `json:"power_level,omitempty"`
	LastPlayed time.Time `json:"last_played,omitempty"`
	// IsCurrent marks the most recently played character.
	IsCurrent bool `json:"is_current"`

	Items   []Item            `json:"items"`
	Buckets map[uint32][]Item `json:"buckets"`

	// VaultCounts is populated only for the vault variant, keyed by the
	// representative bucket hash.
	VaultCounts map[uint32]VaultCount `json:"vault_counts,omitempty"`
}

// StoreSet is the result of one complete load cycle. A set is built fresh per
// cycle and replaces the previous one atomically; it is never mutated after
// publication.
type StoreSet struct {
	Account    Account           `json:"account"`
	Stores     []*ProcessedStore `json:"stores"`
	Currencies map[uint32]int64  `json:"currencies"`
	LoadedAt   time.Time         `json:"loaded_at"`
}

// Vault returns the vault store of the set, or nil if the set has none.
func (s *StoreSet) Vault() *ProcessedStore {
	for _, st := range s.Stores {
		if st.IsVault {
			return st
		}
	}
	return nil
}

// ItemIDs returns the IDs of every item across all stores in the set.
func (s *StoreSet) ItemIDs() []string {
	var ids []string
	for _, st := range s.Stores {
		for _, it := range st.Items {
			ids = append(ids, it.ID)
		}
	}
	return ids
}
