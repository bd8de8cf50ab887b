package bungie

import (
	"context"
	"log"
	"time"

	"guardian-vault-api/internal/model"
)

// RatingClient requests community review data for a loaded store set. The
// pipeline treats this as a fire-and-forget side channel: failures are logged
// and never affect the cycle result.
type RatingClient struct {
	client *Client
}

// NewRatingClient creates a rating client sharing the vendor HTTP client.
func NewRatingClient(client *Client) *RatingClient {
	return &RatingClient{client: client}
}

// FetchRatings requests review data for every distinct weapon and armor hash
// in the set.
func (r *RatingClient) FetchRatings(set *model.StoreSet) {
	hashes := make(map[uint32]struct{})
	for _, store := range set.Stores {
		for _, item := range store.Items {
			hashes[item.Hash] = struct{}{}
		}
	}
	if len(hashes) == 0 {
		return
	}

	request := make([]uint32, 0, len(hashes))
	for hash := range hashes {
		request = append(request, hash)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := r.client.post(ctx, "/Reviews/Bulk/", map[string]interface{}{"itemHashes": request}); err != nil {
		log.Printf("[RatingClient] Review fetch failed: %v", err)
	}
}
