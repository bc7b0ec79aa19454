package admin

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminStore struct {
	admins  map[string]*Admin
	failErr error
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: make(map[string]*Admin)}
}

func (s *fakeAdminStore) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	a, ok := s.admins[username]
	if !ok {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (s *fakeAdminStore) Create(ctx context.Context, a *Admin) error {
	if s.failErr != nil {
		return s.failErr
	}
	a.ID = int64(len(s.admins) + 1)
	clone := *a
	s.admins[a.Username] = &clone
	return nil
}

func (s *fakeAdminStore) Any(ctx context.Context) (bool, error) {
	if s.failErr != nil {
		return false, s.failErr
	}
	return len(s.admins) > 0, nil
}

type fakeIssuer struct {
	subjects []string
	failErr  error
}

func (i *fakeIssuer) Issue(subject string) (string, error) {
	if i.failErr != nil {
		return "", i.failErr
	}
	i.subjects = append(i.subjects, subject)
	return "token-for-" + subject, nil
}

func seedAdmin(t *testing.T, store *fakeAdminStore, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), &Admin{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}))
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := newFakeAdminStore()
		seedAdmin(t, store, "admin", "hunter2")
		issuer := &fakeIssuer{}
		svc := NewService(store, issuer)

		token, err := svc.Login(context.Background(), "admin", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "token-for-admin", token)
		assert.Equal(t, []string{"admin"}, issuer.subjects)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		store := newFakeAdminStore()
		seedAdmin(t, store, "admin", "hunter2")
		svc := NewService(store, &fakeIssuer{})

		_, err := svc.Login(context.Background(), "admin", "letmein")
		var unauthorized *common.UnauthorizedError
		assert.ErrorAs(t, err, &unauthorized)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		svc := NewService(newFakeAdminStore(), &fakeIssuer{})

		_, err := svc.Login(context.Background(), "ghost", "hunter2")
		var unauthorized *common.UnauthorizedError
		assert.ErrorAs(t, err, &unauthorized)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		store := newFakeAdminStore()
		store.failErr = errors.New("postgrest down")
		svc := NewService(store, &fakeIssuer{})

		_, err := svc.Login(context.Background(), "admin", "hunter2")
		require.Error(t, err)
		var unauthorized *common.UnauthorizedError
		assert.False(t, errors.As(err, &unauthorized), "infrastructure failures are not auth failures")
	})
}

func TestBootstrap(t *testing.T) {
	t.Run("CreatesInitialAccount", func(t *testing.T) {
		store := newFakeAdminStore()
		svc := NewService(store, &fakeIssuer{})

		err := svc.Bootstrap(context.Background(), "admin", "admin@example.com", "hunter2")
		require.NoError(t, err)

		a, err := store.GetByUsername(context.Background(), "admin")
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, "admin@example.com", a.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("hunter2")))
	})

	t.Run("SkipsWhenAdminExists", func(t *testing.T) {
		store := newFakeAdminStore()
		seedAdmin(t, store, "existing", "pw")
		svc := NewService(store, &fakeIssuer{})

		err := svc.Bootstrap(context.Background(), "admin", "admin@example.com", "hunter2")
		require.NoError(t, err)

		a, err := store.GetByUsername(context.Background(), "admin")
		require.NoError(t, err)
		assert.Nil(t, a)
	})

	t.Run("SkipsWithoutPassword", func(t *testing.T) {
		store := newFakeAdminStore()
		svc := NewService(store, &fakeIssuer{})

		err := svc.Bootstrap(context.Background(), "admin", "admin@example.com", "")
		require.NoError(t, err)

		exists, err := store.Any(context.Background())
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
