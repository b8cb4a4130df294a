package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dstrand/accountd/internal/credential"
	"github.com/dstrand/accountd/internal/db"
	"github.com/dstrand/accountd/internal/repository"
	"github.com/dstrand/accountd/internal/storage"
)

type testEnv struct {
	users    repository.UserRepository
	hasher   *credential.Hasher
	pictures *PictureService
	auth     *AuthService
	accounts *AccountService
	picsRoot string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	picsRoot := t.TempDir()
	st, err := storage.NewLocalStorage(picsRoot, "/static/profile_pics")
	require.NoError(t, err)

	users := repository.NewUserRepository(database)
	hasher := credential.NewHasher(bcrypt.MinCost)
	pictures := NewPictureService(st, 125, []string{".jpg", ".jpeg", ".png", ".gif"}, "default.jpg")
	require.NoError(t, pictures.EnsureDefault())

	auth, err := NewAuthService(users, hasher, "test-secret", false, time.Hour, 24*time.Hour)
	require.NoError(t, err)

	return &testEnv{
		users:    users,
		hasher:   hasher,
		pictures: pictures,
		auth:     auth,
		accounts: NewAccountService(users, hasher, pictures),
		picsRoot: picsRoot,
	}
}
