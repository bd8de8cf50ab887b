package bungie

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"guardian-vault-api/internal/cache"
	"guardian-vault-api/internal/model"
)

const definitionsCacheKey = "definitions"

// DefinitionsProvider fetches manifest definitions through a byte cache so
// repeated load cycles do not re-download the manifest.
type DefinitionsProvider struct {
	client *Client
	cache  cache.Cache
	ttl    time.Duration
}

// NewDefinitionsProvider creates a cached definitions provider.
func NewDefinitionsProvider(client *Client, c cache.Cache, ttl time.Duration) *DefinitionsProvider {
	return &DefinitionsProvider{client: client, cache: c, ttl: ttl}
}

// manifestResponse is the wire shape of the manifest endpoint.
type manifestResponse struct {
	Version string `json:"version"`
	Items   []struct {
		Hash       uint32 `json:"hash"`
		Name       string `json:"name"`
		BucketHash uint32 `json:"bucketHash"`
		TierType   int    `json:"tierType"`
		Currency   bool   `json:"currency"`
	} `json:"items"`
}

// FetchDefinitions returns the current manifest definitions, serving from
// cache when possible.
func (p *DefinitionsProvider) FetchDefinitions(ctx context.Context) (*model.Definitions, error) {
	data, err := p.cache.GetOrSet(ctx, definitionsCacheKey, p.ttl, func() ([]byte, error) {
		defs, err := p.fetch(ctx)
		if err != nil {
			return nil, err
		}
		log.Printf("[DefinitionsProvider] Fetched manifest version %s (%d items)", defs.Version, len(defs.Items))
		return json.Marshal(defs)
	})
	if err != nil {
		return nil, err
	}

	var defs model.Definitions
	if err := json.Unmarshal(data, &defs); err != nil {
		// A corrupt cache entry should not poison every later cycle.
		_ = p.cache.Delete(ctx, definitionsCacheKey)
		return nil, fmt.Errorf("failed to decode cached definitions: %w", err)
	}
	return &defs, nil
}

// Invalidate drops the cached manifest so the next cycle refetches it.
func (p *DefinitionsProvider) Invalidate(ctx context.Context) error {
	return p.cache.Delete(ctx, definitionsCacheKey)
}

func (p *DefinitionsProvider) fetch(ctx context.Context) (*model.Definitions, error) {
	var payload manifestResponse
	if err := p.client.get(ctx, "/Destiny2/Manifest/", &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}

	defs := &model.Definitions{
		Version: payload.Version,
		Items:   make(map[uint32]model.ItemDefinition, len(payload.Items)),
	}
	for _, it := range payload.Items {
		defs.Items[it.Hash] = model.ItemDefinition{
			Hash:       it.Hash,
			Name:       it.Name,
			BucketHash: it.BucketHash,
			TierType:   it.TierType,
			Currency:   it.Currency,
		}
	}
	return defs, nil
}
