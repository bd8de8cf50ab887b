package bungie

import (
	"context"
	"fmt"

	"guardian-vault-api/internal/model"
)

// membershipResponse is the wire shape of the memberships endpoint.
type membershipResponse struct {
	DestinyMemberships []struct {
		MembershipID   string `json:"membershipId"`
		MembershipType int    `json:"membershipType"`
		DisplayName    string `json:"displayName"`
	} `json:"destinyMemberships"`
}

// GetAvailableAccounts lists the game accounts reachable with the configured
// credentials.
func (c *Client) GetAvailableAccounts(ctx context.Context) ([]model.Account, error) {
	var payload membershipResponse
	if err := c.get(ctx, "/User/GetMembershipsForCurrentUser/", &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch memberships: %w", err)
	}

	accounts := make([]model.Account, 0, len(payload.DestinyMemberships))
	for _, m := range payload.DestinyMemberships {
		accounts = append(accounts, model.Account{
			MembershipID:   m.MembershipID,
			MembershipType: m.MembershipType,
			DisplayName:    m.DisplayName,
		})
	}
	return accounts, nil
}
