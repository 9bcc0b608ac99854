package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/opensalary/identity/internal/identity/domain"
	"github.com/opensalary/identity/internal/identity/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "identity.db")
	s, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testAccount(username, email string) domain.Account {
	return domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
		Active:       true,
	}
}

func TestAccounts_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Accounts().Create(ctx, testAccount("alice", "a@b.com"))
	require.NoError(t, err)
	require.Equal(t, int64(1), id, "first account gets id 1")

	got, err := s.Accounts().GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, "a@b.com", got.Email)
	require.True(t, got.Active)
	require.Nil(t, got.LastLogin)
	require.False(t, got.CreatedAt.IsZero())

	id2, err := s.Accounts().Create(ctx, testAccount("bob", "b@b.com"))
	require.NoError(t, err)
	require.Greater(t, id2, id, "ids are assigned in increasing order")
}

func TestAccounts_GetByIdentifier(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Accounts().Create(ctx, testAccount("alice", "a@b.com"))
	require.NoError(t, err)

	byUsername, err := s.Accounts().GetByIdentifier(ctx, "alice")
	require.NoError(t, err)

	byEmail, err := s.Accounts().GetByIdentifier(ctx, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, byUsername.ID, byEmail.ID)

	// Matching is case-sensitive
	_, err = s.Accounts().GetByIdentifier(ctx, "Alice")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Accounts().GetByIdentifier(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccounts_UniqueConstraints(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Accounts().Create(ctx, testAccount("alice", "a@b.com"))
	require.NoError(t, err)

	_, err = s.Accounts().Create(ctx, testAccount("alice2", "a@b.com"))
	require.ErrorIs(t, err, store.ErrEmailTaken)

	_, err = s.Accounts().Create(ctx, testAccount("alice", "a2@b.com"))
	require.ErrorIs(t, err, store.ErrUsernameTaken)
}

func TestAccounts_Exists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Accounts().Create(ctx, testAccount("alice", "a@b.com"))
	require.NoError(t, err)

	ok, err := s.Accounts().ExistsByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Accounts().ExistsByEmail(ctx, "other@b.com")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.Accounts().ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Accounts().ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAccounts_UpdateLastLogin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Accounts().Create(ctx, testAccount("alice", "a@b.com"))
	require.NoError(t, err)

	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	require.NoError(t, s.Accounts().UpdateLastLogin(ctx, id, at))

	got, err := s.Accounts().GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	require.Equal(t, at, got.LastLogin.UTC())

	err = s.Accounts().UpdateLastLogin(ctx, 9999, at)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccounts_SetActive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Accounts().Create(ctx, testAccount("alice", "a@b.com"))
	require.NoError(t, err)

	require.NoError(t, s.Accounts().SetActive(ctx, id, false))

	got, err := s.Accounts().GetByID(ctx, id)
	require.NoError(t, err)
	require.False(t, got.Active)

	err = s.Accounts().SetActive(ctx, 9999, false)
	require.ErrorIs(t, err, store.ErrNotFound)
}
