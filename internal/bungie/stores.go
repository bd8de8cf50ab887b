package bungie

import (
	"context"
	"fmt"
	"time"

	"guardian-vault-api/internal/model"
)

// profileResponse is the subset of the profile endpoint the pipeline reads:
// per-character records plus the shared profile inventory.
type profileResponse struct {
	Characters []struct {
		CharacterID    string    `json:"characterId"`
		ClassName      string    `json:"className"`
		Light          int       `json:"light"`
		DateLastPlayed time.Time `json:"dateLastPlayed"`
		Items          []rawItem `json:"items"`
	} `json:"characters"`
	ProfileInventory struct {
		Items []rawItem `json:"items"`
	} `json:"profileInventory"`
}

type rawItem struct {
	ItemHash       uint32 `json:"itemHash"`
	BucketHash     uint32 `json:"bucketHash"`
	ItemInstanceID string `json:"itemInstanceId,omitempty"`
	Quantity       int    `json:"quantity"`
}

// FetchRawStores retrieves the raw store records for one account. The result
// carries exactly one vault-tagged record assembled from the shared profile
// inventory; all other records are characters.
func (c *Client) FetchRawStores(ctx context.Context, account model.Account) ([]*model.RawStoreRecord, error) {
	path := fmt.Sprintf("/Destiny2/%d/Profile/%s/?components=Characters,CharacterInventories,ProfileInventories",
		account.MembershipType, account.MembershipID)

	var payload profileResponse
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", account.MembershipID, err)
	}

	records := make([]*model.RawStoreRecord, 0, len(payload.Characters)+1)
	records = append(records, &model.RawStoreRecord{
		ID:    model.VaultStoreID,
		Items: convertRawItems(payload.ProfileInventory.Items),
	})
	for _, ch := range payload.Characters {
		records = append(records, &model.RawStoreRecord{
			ID:             ch.CharacterID,
			ClassName:      ch.ClassName,
			PowerLevel:     ch.Light,
			DateLastPlayed: ch.DateLastPlayed,
			Items:          convertRawItems(ch.Items),
		})
	}
	return records, nil
}

func convertRawItems(items []rawItem) []model.RawItem {
	out := make([]model.RawItem, 0, len(items))
	for _, it := range items {
		out = append(out, model.RawItem{
			ItemHash:   it.ItemHash,
			BucketHash: it.BucketHash,
			InstanceID: it.ItemInstanceID,
			Quantity:   it.Quantity,
		})
	}
	return out
}
