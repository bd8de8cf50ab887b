package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian-vault-api/internal/model"
)

func newSQLiteAnnotationRepo(t *testing.T) *SQLiteAnnotationRepository {
	t.Helper()
	repo, err := NewSQLiteAnnotationRepository(filepath.Join(t.TempDir(), "annotations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteAnnotations_UpsertAndList(t *testing.T) {
	t.Parallel()

	repo := newSQLiteAnnotationRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, model.Annotation{MembershipID: "member-1", ItemID: "inst-1", Tag: "keep", Notes: "pvp roll"}))
	require.NoError(t, repo.Upsert(ctx, model.Annotation{MembershipID: "member-2", ItemID: "inst-9", Tag: "junk"}))

	got, err := repo.ListByMembership(ctx, "member-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "inst-1", got[0].ItemID)
	assert.Equal(t, "keep", got[0].Tag)
	assert.Equal(t, "pvp roll", got[0].Notes)
}

func TestSQLiteAnnotations_UpsertReplacesExisting(t *testing.T) {
	t.Parallel()

	repo := newSQLiteAnnotationRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, model.Annotation{MembershipID: "member-1", ItemID: "inst-1", Tag: "junk"}))
	require.NoError(t, repo.Upsert(ctx, model.Annotation{MembershipID: "member-1", ItemID: "inst-1", Tag: "keep", Notes: "changed my mind"}))

	got, err := repo.ListByMembership(ctx, "member-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].Tag)
	assert.Equal(t, "changed my mind", got[0].Notes)
}

func TestSQLiteAnnotations_DeleteMissing(t *testing.T) {
	t.Parallel()

	repo := newSQLiteAnnotationRepo(t)
	ctx := context.Background()

	for _, itemID := range []string{"inst-1", "inst-2", "inst-3"} {
		require.NoError(t, repo.Upsert(ctx, model.Annotation{MembershipID: "member-1", ItemID: itemID, Tag: "keep"}))
	}
	require.NoError(t, repo.Upsert(ctx, model.Annotation{MembershipID: "member-2", ItemID: "inst-1", Tag: "keep"}))

	removed, err := repo.DeleteMissing(ctx, "member-1", []string{"inst-1", "inst-3"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	got, err := repo.ListByMembership(ctx, "member-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Other memberships are untouched.
	other, err := repo.ListByMembership(ctx, "member-2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestSQLiteAnnotations_DeleteMissingEmptyKeepRemovesAll(t *testing.T) {
	t.Parallel()

	repo := newSQLiteAnnotationRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, model.Annotation{MembershipID: "member-1", ItemID: "inst-1"}))
	require.NoError(t, repo.Upsert(ctx, model.Annotation{MembershipID: "member-1", ItemID: "inst-2"}))

	removed, err := repo.DeleteMissing(ctx, "member-1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}

func TestSQLiteAnnotations_DeleteStale(t *testing.T) {
	t.Parallel()

	repo := newSQLiteAnnotationRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, model.Annotation{MembershipID: "member-1", ItemID: "inst-1"}))

	// Fresh rows survive a generous threshold.
	removed, err := repo.DeleteStale(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	// A negative threshold puts the cutoff in the future, so everything goes.
	removed, err = repo.DeleteStale(ctx, -time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
