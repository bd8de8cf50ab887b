package service

import (
	"context"
	"fmt"
	"log"

	"guardian-vault-api/internal/model"
	"guardian-vault-api/internal/repository"
)

// AnnotationService handles per-item user annotations (tags and notes) and
// their reconciliation against freshly loaded store sets.
type AnnotationService struct {
	repo repository.AnnotationRepository
}

// NewAnnotationService creates a new annotation service.
// Returns nil if repo is nil (required dependency).
func NewAnnotationService(repo repository.AnnotationRepository) *AnnotationService {
	if repo == nil {
		return nil
	}
	return &AnnotationService{repo: repo}
}

// Set stores the tag and notes for one item instance. An annotation with an
// empty tag and empty notes is still stored; use reconciliation for removal.
func (s *AnnotationService) Set(ctx context.Context, membershipID, itemID, tag, notes string) error {
	if membershipID == "" || itemID == "" {
		return fmt.Errorf("membership_id and item_id are required")
	}
	return s.repo.Upsert(ctx, model.Annotation{
		MembershipID: membershipID,
		ItemID:       itemID,
		Tag:          tag,
		Notes:        notes,
	})
}

// List returns all annotations for one membership.
func (s *AnnotationService) List(ctx context.Context, membershipID string) ([]model.Annotation, error) {
	return s.repo.ListByMembership(ctx, membershipID)
}

// Reconcile removes annotations referencing items that no longer exist in the
// new store set. Called by the loading pipeline after every cycle.
func (s *AnnotationService) Reconcile(ctx context.Context, set *model.StoreSet) error {
	removed, err := s.repo.DeleteMissing(ctx, set.Account.MembershipID, set.ItemIDs())
	if err != nil {
		return fmt.Errorf("failed to reconcile annotations: %w", err)
	}
	if removed > 0 {
		log.Printf("[AnnotationService] Reconciled %d orphaned annotations for %s",
			removed, set.Account.MembershipID)
	}
	return nil
}
