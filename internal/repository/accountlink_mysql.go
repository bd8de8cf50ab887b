package repository

import (
	"context"
	"database/sql"
	"fmt"

	"guardian-vault-api/internal/model"
)

// MySQLAccountLinkRepository implements AccountLinkRepository using MySQL.
type MySQLAccountLinkRepository struct {
	db *sql.DB
}

// NewMySQLAccountLinkRepository creates a new MySQL account-link repository.
func NewMySQLAccountLinkRepository(db *sql.DB) *MySQLAccountLinkRepository {
	return &MySQLAccountLinkRepository{db: db}
}

// GetLinkedAccount finds the game account linked to an app user key.
func (r *MySQLAccountLinkRepository) GetLinkedAccount(ctx context.Context, userKey string) (*model.Account, error) {
	query := `SELECT membership_id, membership_type, display_name
		FROM account_links WHERE user_key = ? AND is_active = 1 LIMIT 1`

	var acct model.Account
	err := r.db.QueryRowContext(ctx, query, userKey).Scan(
		&acct.MembershipID, &acct.MembershipType, &acct.DisplayName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get linked account: %w", err)
	}

	return &acct, nil
}

var _ AccountLinkRepository = (*MySQLAccountLinkRepository)(nil)
