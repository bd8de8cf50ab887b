package model

// ItemDefinition decodes a raw item hash into display-ready metadata.
type ItemDefinition struct {
	Hash       uint32 `json:"hash"`
	Name       string `json:"name"`
	BucketHash uint32 `json:"bucket_hash"`
	TierType   int    `json:"tier_type"`
	// Currency items are accumulated into the per-cycle Currencies value
	// instead of counting toward vault buckets.
	Currency bool `json:"currency"`
}

// Definitions is the manifest snapshot used to decode raw records.
type Definitions struct {
	Version string                    `json:"version"`
	Items   map[uint32]ItemDefinition `json:"items"`
}

// Item returns the definition for hash, or nil when the manifest has none.
func (d *Definitions) Item(hash uint32) *ItemDefinition {
	if d == nil {
		return nil
	}
	if def, ok := d.Items[hash]; ok {
		return &def
	}
	return nil
}
