package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"zenweb/internal/models"
	"zenweb/internal/storage"
)

func newTestUsers() *Users {
	s := NewUsers(storage.NewMemory())
	s.now = stepClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), time.Second)
	return s
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestUsers()

	_, err := s.Create(ctx, CreateUser{Email: "a@b.com", Name: "A", PasswordHash: "h"})
	require.NoError(t, err)

	// Same address, different case: still a duplicate.
	_, err = s.Create(ctx, CreateUser{Email: "A@B.com", Name: "A2", PasswordHash: "h"})
	require.ErrorIs(t, err, ErrEmailTaken)

	users, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestCreateUserDefaultsRole(t *testing.T) {
	ctx := context.Background()
	s := newTestUsers()

	u, err := s.Create(ctx, CreateUser{Email: "a@b.com", Name: "A", PasswordHash: "h"})
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, u.Role)
	require.NotEmpty(t, u.ID)
	require.Equal(t, u.CreatedAt, u.UpdatedAt)
}

func TestUpdateUserBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := newTestUsers()

	u, err := s.Create(ctx, CreateUser{Email: "a@b.com", Name: "A", PasswordHash: "h"})
	require.NoError(t, err)
	before := u.UpdatedAt

	name := "Alice"
	updated, err := s.Update(ctx, u.ID, UserPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Alice", updated.Name)
	require.True(t, updated.UpdatedAt.After(before))

	got, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Alice", got.Name)
}

func TestUpdateUnknownUser(t *testing.T) {
	ctx := context.Background()
	s := newTestUsers()

	name := "X"
	_, err := s.Update(ctx, "missing", UserPatch{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAllIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestUsers()

	_, err := s.Create(ctx, CreateUser{Email: "a@b.com", Name: "A", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = s.Create(ctx, CreateUser{Email: "b@b.com", Name: "B", PasswordHash: "h"})
	require.NoError(t, err)

	first, err := s.All(ctx)
	require.NoError(t, err)
	second, err := s.All(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	s := newTestUsers()

	u, err := s.Create(ctx, CreateUser{Email: "a@b.com", Name: "A", PasswordHash: "h"})
	require.NoError(t, err)

	require.ErrorIs(t, s.Delete(ctx, "missing"), ErrNotFound)
	require.NoError(t, s.Delete(ctx, u.ID))

	users, err := s.All(ctx)
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestCorruptCollectionLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, storage.KeyUsers, []byte("{not json")))

	s := NewUsers(kv)
	users, err := s.All(ctx)
	require.NoError(t, err)
	require.Empty(t, users)
}
