package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian-vault-api/internal/model"
)

type fakeSeenItemsRepo struct {
	mu     sync.Mutex
	seen   map[string]map[uint32]struct{}
	marked map[string][]uint32
	err    error
}

func newFakeSeenItemsRepo() *fakeSeenItemsRepo {
	return &fakeSeenItemsRepo{
		seen:   make(map[string]map[uint32]struct{}),
		marked: make(map[string][]uint32),
	}
}

func (f *fakeSeenItemsRepo) LoadSeen(ctx context.Context, membershipID string) (map[uint32]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uint32]struct{}, len(f.seen[membershipID]))
	for hash := range f.seen[membershipID] {
		out[hash] = struct{}{}
	}
	return out, nil
}

func (f *fakeSeenItemsRepo) MarkSeen(ctx context.Context, membershipID string, hashes []uint32) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked[membershipID] = append(f.marked[membershipID], hashes...)
	return nil
}

func (f *fakeSeenItemsRepo) Close() error { return nil }

func TestNewItemsService_IsNew(t *testing.T) {
	t.Parallel()

	repo := newFakeSeenItemsRepo()
	repo.seen["member-1"] = map[uint32]struct{}{100: {}}

	svc := NewNewItemsService(repo)
	require.NoError(t, svc.ApplyDeltas(context.Background(), model.Account{MembershipID: "member-1"}))

	assert.False(t, svc.IsNew(100))
	assert.True(t, svc.IsNew(200))
	// Still new on repeat sightings until cleared.
	assert.True(t, svc.IsNew(200))
}

func TestNewItemsService_ClearNewPersistsSightings(t *testing.T) {
	t.Parallel()

	repo := newFakeSeenItemsRepo()
	svc := NewNewItemsService(repo)
	require.NoError(t, svc.ApplyDeltas(context.Background(), model.Account{MembershipID: "member-1"}))

	require.True(t, svc.IsNew(200))
	require.True(t, svc.IsNew(300))

	require.NoError(t, svc.ClearNew(context.Background()))
	assert.ElementsMatch(t, []uint32{200, 300}, repo.marked["member-1"])

	// Cleared hashes are no longer new, and nothing is re-persisted.
	assert.False(t, svc.IsNew(200))
	require.NoError(t, svc.ClearNew(context.Background()))
	assert.Len(t, repo.marked["member-1"], 2)
}

func TestNewItemsService_ClearNewBeforeAnyCycleIsNoop(t *testing.T) {
	t.Parallel()

	repo := newFakeSeenItemsRepo()
	svc := NewNewItemsService(repo)

	require.NoError(t, svc.ClearNew(context.Background()))
	assert.Empty(t, repo.marked)
}

func TestNewItemsService_ApplyDeltasResetsState(t *testing.T) {
	t.Parallel()

	repo := newFakeSeenItemsRepo()
	svc := NewNewItemsService(repo)
	require.NoError(t, svc.ApplyDeltas(context.Background(), model.Account{MembershipID: "member-1"}))
	require.True(t, svc.IsNew(200))

	// Switching accounts drops pending sightings.
	repo.seen["member-2"] = map[uint32]struct{}{200: {}}
	require.NoError(t, svc.ApplyDeltas(context.Background(), model.Account{MembershipID: "member-2"}))

	assert.False(t, svc.IsNew(200))
	require.NoError(t, svc.ClearNew(context.Background()))
	assert.Empty(t, repo.marked["member-1"])
}

func TestNewItemsService_ApplyDeltasWrapsRepoError(t *testing.T) {
	t.Parallel()

	repo := newFakeSeenItemsRepo()
	repo.err = errors.New("db locked")
	svc := NewNewItemsService(repo)

	err := svc.ApplyDeltas(context.Background(), model.Account{MembershipID: "member-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to apply new item deltas")
}
