package repository

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstrand/accountd/internal/db"
	"github.com/dstrand/accountd/internal/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func newUser(username, email string) *model.User {
	return &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$04$fakefakefakefakefakefakefakefakefakefakefakefakefake",
		ImageFile:    "default.jpg",
	}
}

func TestUserRepositoryCreateAndGet(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user := newUser("alice", "alice@ex.com")
	require.NoError(t, repo.Create(user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	got, err := repo.ByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@ex.com", got.Email)
	assert.Equal(t, "default.jpg", got.ImageFile)

	got, err = repo.ByEmail("alice@ex.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = repo.ByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.ByID("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.ByEmail("ghost@ex.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.ByUsername("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete("missing"), ErrUserNotFound)
	assert.ErrorIs(t, repo.Update(newUser("ghost", "ghost@ex.com")), ErrUserNotFound)
}

func TestUserRepositoryCreateDuplicates(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	require.NoError(t, repo.Create(newUser("alice", "alice@ex.com")))

	err := repo.Create(newUser("alice", "other@ex.com"))
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	err = repo.Create(newUser("alice2", "alice@ex.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// The failed inserts must not have committed anything.
	_, err = repo.ByEmail("other@ex.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.ByUsername("alice2")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepositoryUpdate(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user := newUser("alice", "alice@ex.com")
	require.NoError(t, repo.Create(user))

	user.Username = "alice_new"
	user.Email = "alice_new@ex.com"
	user.ImageFile = "0123456789abcdef.jpg"
	require.NoError(t, repo.Update(user))

	got, err := repo.ByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice_new", got.Username)
	assert.Equal(t, "alice_new@ex.com", got.Email)
	assert.Equal(t, "0123456789abcdef.jpg", got.ImageFile)
}

func TestUserRepositoryUpdateUniqueness(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	alice := newUser("alice", "alice@ex.com")
	bob := newUser("bob", "bob@ex.com")
	require.NoError(t, repo.Create(alice))
	require.NoError(t, repo.Create(bob))

	// Taking another user's handle fails on the unique index.
	bob.Username = "alice"
	assert.ErrorIs(t, repo.Update(bob), ErrDuplicateUsername)

	bob.Username = "bob"
	bob.Email = "alice@ex.com"
	assert.ErrorIs(t, repo.Update(bob), ErrDuplicateEmail)

	// Re-writing your own values is not a collision.
	alice.PasswordHash = "$2a$04$someotherverifierxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"
	assert.NoError(t, repo.Update(alice))
}

func TestUserRepositoryDelete(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user := newUser("alice", "alice@ex.com")
	require.NoError(t, repo.Create(user))

	require.NoError(t, repo.Delete(user.ID))

	_, err := repo.ByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.ByEmail("alice@ex.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete(user.ID), ErrUserNotFound)
}

func TestUserRepositoryIDsNotReused(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		user := newUser("alice", "alice@ex.com")
		require.NoError(t, repo.Create(user))
		assert.False(t, seen[user.ID])
		seen[user.ID] = true
		require.NoError(t, repo.Delete(user.ID))
	}
}
