package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"guardian-vault-api/internal/model"
	"guardian-vault-api/internal/repository"
)

// NewItemsService tracks which item hashes a membership has already seen.
// ApplyDeltas refreshes the in-memory view at the start of a load cycle; the
// item factory consults IsNew while building items.
type NewItemsService struct {
	repo repository.SeenItemsRepository

	mu           sync.RWMutex
	membershipID string
	seen         map[uint32]struct{}
	unseen       map[uint32]struct{}
}

// NewNewItemsService creates a new-items tracker.
// Returns nil if repo is nil (required dependency).
func NewNewItemsService(repo repository.SeenItemsRepository) *NewItemsService {
	if repo == nil {
		return nil
	}
	return &NewItemsService{
		repo:   repo,
		seen:   make(map[uint32]struct{}),
		unseen: make(map[uint32]struct{}),
	}
}

// ApplyDeltas loads the seen-hash state for the account. The pipeline calls
// this concurrently with the raw-store fetch; only the side effect matters.
func (s *NewItemsService) ApplyDeltas(ctx context.Context, account model.Account) error {
	seen, err := s.repo.LoadSeen(ctx, account.MembershipID)
	if err != nil {
		return fmt.Errorf("failed to apply new item deltas: %w", err)
	}

	s.mu.Lock()
	s.membershipID = account.MembershipID
	s.seen = seen
	s.unseen = make(map[uint32]struct{})
	s.mu.Unlock()
	return nil
}

// IsNew reports whether the hash has not been seen before. First sighting is
// remembered so ClearNew can persist it later.
func (s *NewItemsService) IsNew(hash uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[hash]; ok {
		return false
	}
	s.unseen[hash] = struct{}{}
	return true
}

// ClearNew marks every currently-new hash as seen and persists the change.
func (s *NewItemsService) ClearNew(ctx context.Context) error {
	s.mu.Lock()
	membershipID := s.membershipID
	hashes := make([]uint32, 0, len(s.unseen))
	for hash := range s.unseen {
		hashes = append(hashes, hash)
		s.seen[hash] = struct{}{}
	}
	s.unseen = make(map[uint32]struct{})
	s.mu.Unlock()

	if membershipID == "" || len(hashes) == 0 {
		return nil
	}

	if err := s.repo.MarkSeen(ctx, membershipID, hashes); err != nil {
		return fmt.Errorf("failed to clear new items: %w", err)
	}
	log.Printf("[NewItemsService] Marked %d items seen for %s", len(hashes), membershipID)
	return nil
}
