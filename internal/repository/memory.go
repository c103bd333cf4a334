package repository

import (
	"context"
	"sync"
	"time"

	"github.com/sumire/pixelboard/internal/domain"
)

type signupToken struct {
	login     string
	expiresAt time.Time
	used      bool
}

type session struct {
	userID    int64
	expiresAt time.Time
}

// MemoryStore is an in-process account store used in tests and when no
// DATABASE_URL is configured. A single mutex guards every operation, which
// gives SignUp the same consume-token-and-create atomicity the SQL store
// gets from its transaction.
type MemoryStore struct {
	mu sync.Mutex

	signupTTL  time.Duration
	sessionTTL time.Duration

	nextID       int64
	usersByID    map[int64]domain.User
	usersByLogin map[string]int64
	usersByName  map[string]int64
	sessions     map[string]session
	signupTokens map[string]signupToken
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(signupTTL, sessionTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		signupTTL:    signupTTL,
		sessionTTL:   sessionTTL,
		nextID:       1,
		usersByID:    make(map[int64]domain.User),
		usersByLogin: make(map[string]int64),
		usersByName:  make(map[string]int64),
		sessions:     make(map[string]session),
		signupTokens: make(map[string]signupToken),
	}
}

// Seed inserts a pre-built user directly, assigning it an id. Intended for
// tests and local development.
func (s *MemoryStore) Seed(user domain.User) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextID
	s.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.usersByID[user.ID] = user
	s.usersByLogin[user.Login] = user.ID
	s.usersByName[user.Username] = user.ID
	return &user
}

// GetByLogin retrieves a user by login key.
func (s *MemoryStore) GetByLogin(_ context.Context, login string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usersByLogin[login]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user := s.usersByID[id]
	return &user, nil
}

// GetByToken retrieves the user owning an unexpired session token.
func (s *MemoryStore) GetByToken(_ context.Context, token string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok || time.Now().After(sess.expiresAt) {
		return nil, domain.ErrNotFound
	}
	user := s.usersByID[sess.userID]
	return &user, nil
}

// GenerateSignupToken mints a single-use token bound to the given login key.
func (s *MemoryStore) GenerateSignupToken(_ context.Context, login string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.signupTokens[token] = signupToken{login: login, expiresAt: time.Now().Add(s.signupTTL)}
	return token, nil
}

// IsValidSignupToken reports whether token is unconsumed and unexpired.
func (s *MemoryStore) IsValidSignupToken(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.signupTokens[token]
	return ok && !st.used && time.Now().Before(st.expiresAt), nil
}

// SignUp consumes the signup token and creates the user it was minted for.
// A name conflict leaves the token redeemable; a consumed or expired token
// returns domain.ErrInvalidToken.
func (s *MemoryStore) SignUp(_ context.Context, name, token, ip string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.signupTokens[token]
	if !ok || st.used || time.Now().After(st.expiresAt) {
		return nil, domain.ErrInvalidToken
	}
	if _, taken := s.usersByName[name]; taken {
		return nil, domain.ErrConflict
	}
	if _, taken := s.usersByLogin[st.login]; taken {
		return nil, domain.ErrConflict
	}

	st.used = true
	s.signupTokens[token] = st

	user := domain.User{
		ID:        s.nextID,
		Username:  name,
		Role:      domain.RoleUser,
		Login:     st.login,
		SignupIP:  ip,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.usersByID[user.ID] = user
	s.usersByLogin[user.Login] = user.ID
	s.usersByName[user.Username] = user.ID
	return &user, nil
}

// LogIn mints a session token for the user.
func (s *MemoryStore) LogIn(_ context.Context, user *domain.User, _ string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session{userID: user.ID, expiresAt: time.Now().Add(s.sessionTTL)}
	return token, nil
}

// LogOut deletes the session. Deleting an unknown token is a no-op.
func (s *MemoryStore) LogOut(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
