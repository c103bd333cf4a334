package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/pixelboard/internal/domain"
)

func newTestStore() *MemoryStore {
	return NewMemoryStore(10*time.Minute, 24*time.Hour)
}

func TestSignupTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	token, err := store.GenerateSignupToken(ctx, "discord:12345")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	valid, err := store.IsValidSignupToken(ctx, token)
	require.NoError(t, err)
	assert.True(t, valid)

	user, err := store.SignUp(ctx, "alice", token, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "discord:12345", user.Login)
	assert.Equal(t, domain.RoleUser, user.Role)

	// token is consumed by the successful signup
	valid, err = store.IsValidSignupToken(ctx, token)
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = store.SignUp(ctx, "bob", token, "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestSignupTokenExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(-time.Minute, 24*time.Hour)

	token, err := store.GenerateSignupToken(ctx, "discord:12345")
	require.NoError(t, err)

	valid, err := store.IsValidSignupToken(ctx, token)
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = store.SignUp(ctx, "alice", token, "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestSignUpNameConflictKeepsToken(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	store.Seed(domain.User{Username: "alice", Login: "google:1", Role: domain.RoleUser})

	token, err := store.GenerateSignupToken(ctx, "discord:12345")
	require.NoError(t, err)

	_, err = store.SignUp(ctx, "alice", token, "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// the failed attempt must not consume the token
	valid, err := store.IsValidSignupToken(ctx, token)
	require.NoError(t, err)
	assert.True(t, valid)

	user, err := store.SignUp(ctx, "alice2", token, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "alice2", user.Username)
}

func TestConcurrentSignUpSingleUse(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	token, err := store.GenerateSignupToken(ctx, "discord:12345")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	names := []string{"alice", "bob"}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.SignUp(ctx, names[i], token, "127.0.0.1")
		}(i)
	}
	wg.Wait()

	var created, invalid int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrInvalidToken):
			invalid++
		}
	}
	assert.Equal(t, 1, created, "exactly one signup must succeed")
	assert.Equal(t, 1, invalid, "the loser must see an invalid token")
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	user := store.Seed(domain.User{Username: "alice", Login: "google:1", Role: domain.RoleUser})

	token, err := store.LogIn(ctx, user, "10.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := store.GetByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.NoError(t, store.LogOut(ctx, token))

	_, err = store.GetByToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// logging out again is a no-op
	require.NoError(t, store.LogOut(ctx, token))
	require.NoError(t, store.LogOut(ctx, "never-existed"))
}

func TestGetByLogin(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	store.Seed(domain.User{Username: "alice", Login: "reddit:spez", Role: domain.RoleModerator})

	user, err := store.GetByLogin(ctx, "reddit:spez")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = store.GetByLogin(ctx, "reddit:nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
