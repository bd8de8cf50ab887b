package model

// Membership platform types as defined by the vendor API.
const (
	MembershipTypeXbox  = 1
	MembershipTypePSN   = 2
	MembershipTypeSteam = 3
)

// Account identifies a player within the vendor's game service.
// Immutable once selected; replaced wholesale on account switch.
type Account struct {
	MembershipID   string `json:"membership_id"`
	MembershipType int    `json:"membership_type"`
	DisplayName    string `json:"display_name"`
}

// Key returns a stable identifier usable as a storage key.
func (a Account) Key() string {
	return a.MembershipID
}
