package model

import "time"

// Annotation is a user-supplied tag and note attached to one item instance.
type Annotation struct {
	ID           int64     `json:"id"`
	MembershipID string    `json:"membership_id"`
	ItemID       string    `json:"item_id"`
	Tag          string    `json:"tag,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}
