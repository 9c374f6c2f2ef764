package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"member-auth/internal/model"
)

func TestMemoryStoreCreateAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	store := NewMemoryMemberStore()
	ctx := context.Background()

	first, err := store.Create(ctx, model.Member{Role: model.RoleGeneral, Name: "Kim", Email: "a@test.com"})
	require.NoError(t, err)
	second, err := store.Create(ctx, model.Member{Role: model.RoleGeneral, Name: "Lee", Email: "b@test.com"})
	require.NoError(t, err)

	require.Equal(t, int64(1), first.ID)
	require.Equal(t, int64(2), second.ID)
	require.False(t, first.CreatedAt.IsZero())

	found, err := store.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "a@test.com", found.Email)
}

func TestMemoryStoreEmailUniquenessIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	store := NewMemoryMemberStore()
	ctx := context.Background()

	_, err := store.Create(ctx, model.Member{Role: model.RoleGeneral, Name: "Kim", Email: "A@Test.com"})
	require.NoError(t, err)

	_, err = store.Create(ctx, model.Member{Role: model.RoleGeneral, Name: "Park", Email: "a@test.com"})
	require.ErrorIs(t, err, model.ErrEmailTaken)

	found, err := store.FindByEmail(ctx, "a@TEST.com")
	require.NoError(t, err)
	require.Equal(t, "Kim", found.Name)

	exists, err := store.ExistsByEmail(ctx, " a@test.com ")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestMemoryStoreRefreshTokenLifecycle(t *testing.T) {
	t.Parallel()

	store := NewMemoryMemberStore()
	ctx := context.Background()

	m, err := store.Create(ctx, model.Member{Role: model.RoleGeneral, Name: "Kim", Email: "a@test.com"})
	require.NoError(t, err)
	require.False(t, m.HasSession())

	require.NoError(t, store.UpdateRefreshToken(ctx, m.ID, "fingerprint"))
	updated, err := store.FindByID(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "fingerprint", updated.RefreshToken)
	require.True(t, updated.HasSession())

	require.NoError(t, store.ClearRefreshToken(ctx, m.ID))
	cleared, err := store.FindByID(ctx, m.ID)
	require.NoError(t, err)
	require.False(t, cleared.HasSession())

	require.ErrorIs(t, store.UpdateRefreshToken(ctx, 999, "x"), model.ErrMemberNotFound)
}
