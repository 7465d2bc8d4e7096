package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/domain"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/store"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	users map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*domain.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.Email]; ok {
		return store.ErrEmailExists
	}
	cp := *user
	f.users[user.Email] = &cp
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// fakeHasher marks hashes deterministically so tests can compare without
// real bcrypt work.
type fakeHasher struct {
	failHash bool
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.failHash {
		return "", errors.New("hash failure")
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func newTestUserService(t *testing.T, users *fakeUserStore) UserService {
	t.Helper()
	hasher := &fakeHasher{}
	svc, err := NewUserService(users, hasher, hasher, nil)
	require.NoError(t, err)
	return svc
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates regular user with hashed password", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		svc := newTestUserService(t, users)

		user, err := svc.Register(context.Background(), "Alice@Example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email, "email is normalized")
		assert.Equal(t, domain.RoleRegular, user.Role)
		assert.Equal(t, "hashed:supersecret", user.HashedPassword)
		assert.Empty(t, user.Password, "plaintext is discarded after hashing")
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		svc := newTestUserService(t, users)

		_, err := svc.Register(context.Background(), "alice@example.com", "supersecret")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "alice@example.com", "anotherpass")
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()
		svc := newTestUserService(t, newFakeUserStore())

		_, err := svc.Register(context.Background(), "bob@example.com", "short")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		t.Parallel()
		svc := newTestUserService(t, newFakeUserStore())

		_, err := svc.Register(context.Background(), "not-an-email", "supersecret")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (UserService, *domain.User) {
		users := newFakeUserStore()
		svc := newTestUserService(t, users)
		user, err := svc.Register(context.Background(), "alice@example.com", "supersecret")
		require.NoError(t, err)
		return svc, user
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		svc, registered := setup(t)

		user, err := svc.Authenticate(context.Background(), "alice@example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		svc, _ := setup(t)

		_, err := svc.Authenticate(context.Background(), "alice@example.com", "wrongpass")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown email gets the same error as wrong password", func(t *testing.T) {
		t.Parallel()
		svc, _ := setup(t)

		_, err := svc.Authenticate(context.Background(), "nobody@example.com", "supersecret")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := newTestUserService(t, users)

	registered, err := svc.Register(context.Background(), "alice@example.com", "supersecret")
	require.NoError(t, err)

	user, err := svc.GetUser(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, user.Email)

	_, err = svc.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
