package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sumire/pixelboard/internal/domain"
	"github.com/sumire/pixelboard/internal/provider"
)

// Store defines the account data access interface consumed by AuthService.
// Signup tokens are single-use: SignUp consumes the token atomically, so two
// racing completions can never both create a user.
type Store interface {
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	GenerateSignupToken(ctx context.Context, login string) (string, error)
	IsValidSignupToken(ctx context.Context, token string) (bool, error)
	SignUp(ctx context.Context, name, token, ip string) (*domain.User, error)
	LogIn(ctx context.Context, user *domain.User, ip string) (string, error)
	LogOut(ctx context.Context, token string) error
}

var (
	// ErrUnknownProvider reports a provider name with no registered adapter.
	ErrUnknownProvider = errors.New("unknown auth provider")
	// ErrAuthRejected reports that the provider refused the authentication.
	// Deliberately carries no detail: nothing about the provider-side
	// rejection may reach an unauthenticated client.
	ErrAuthRejected = errors.New("authentication rejected")
)

// CallbackResult is the outcome of a completed OAuth callback. Exactly one
// of SessionToken or SignupToken is set: SessionToken when the login key
// matched an existing user, SignupToken when account creation is pending.
type CallbackResult struct {
	User         *domain.User
	SessionToken string
	SignupToken  string
}

// AuthService sequences the OAuth handshake and account linking.
type AuthService struct {
	providers *provider.Registry
	store     Store
}

// NewAuthService creates a new AuthService.
func NewAuthService(providers *provider.Registry, store Store) *AuthService {
	return &AuthService{providers: providers, store: store}
}

// HasProvider reports whether an adapter is registered under providerName.
func (s *AuthService) HasProvider(providerName string) bool {
	_, ok := s.providers.Lookup(providerName)
	return ok
}

// AuthURL returns the authorization URL for the named provider.
func (s *AuthService) AuthURL(providerName string) (string, bool) {
	p, ok := s.providers.Lookup(providerName)
	if !ok {
		return "", false
	}
	return p.RedirectURL(), true
}

// Callback runs the code exchange and identifier resolution for the named
// provider, then either logs the matching user in or mints a signup token
// for the new login key. ip is recorded for audit on the session.
func (s *AuthService) Callback(ctx context.Context, providerName, code, ip string) (*CallbackResult, error) {
	p, ok := s.providers.Lookup(providerName)
	if !ok {
		return nil, ErrUnknownProvider
	}

	accessToken, err := p.ExchangeCode(ctx, code)
	if err != nil {
		slog.Warn("code exchange rejected", "provider", providerName, "error", err)
		return nil, ErrAuthRejected
	}

	identifier, err := p.ResolveIdentifier(ctx, accessToken)
	if err != nil {
		if errors.Is(err, provider.ErrInvalidAccount) {
			slog.Warn("provider rejected account", "provider", providerName, "error", err)
			return nil, ErrAuthRejected
		}
		return nil, fmt.Errorf("resolve identifier: %w", err)
	}

	login := providerName + ":" + identifier

	user, err := s.store.GetByLogin(ctx, login)
	if errors.Is(err, domain.ErrNotFound) {
		token, err := s.store.GenerateSignupToken(ctx, login)
		if err != nil {
			return nil, fmt.Errorf("generate signup token: %w", err)
		}
		return &CallbackResult{SignupToken: token}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup login: %w", err)
	}

	session, err := s.store.LogIn(ctx, user, ip)
	if err != nil {
		return nil, fmt.Errorf("log in user %d: %w", user.ID, err)
	}
	return &CallbackResult{User: user, SessionToken: session}, nil
}

// CompleteSignup redeems a signup token, creates the user, and returns a
// fresh session token. The name must already be validated and truncated by
// the caller. Returns domain.ErrInvalidToken for a missing or consumed
// token and domain.ErrConflict when the name is taken.
func (s *AuthService) CompleteSignup(ctx context.Context, token, name, ip string) (string, error) {
	valid, err := s.store.IsValidSignupToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("check signup token: %w", err)
	}
	if !valid {
		return "", domain.ErrInvalidToken
	}

	user, err := s.store.SignUp(ctx, name, token, ip)
	if err != nil {
		return "", err
	}

	session, err := s.store.LogIn(ctx, user, ip)
	if err != nil {
		return "", fmt.Errorf("log in user %d: %w", user.ID, err)
	}
	return session, nil
}

// UserByToken resolves a session token to its user.
func (s *AuthService) UserByToken(ctx context.Context, token string) (*domain.User, error) {
	return s.store.GetByToken(ctx, token)
}

// Logout invalidates a session token. Invalidating an unknown token is not
// an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.store.LogOut(ctx, token)
}
