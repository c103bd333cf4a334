// Package provider defines the three-call contract every external identity
// provider adapter implements, plus the registry the auth flow resolves
// adapters from.
package provider

import (
	"context"
	"errors"
)

// ErrInvalidAccount reports that the provider answered but refused to hand
// back a stable account identity (unverified, suspended, or deleted account).
// Kept distinct from transport failures so callers can tell a dead provider
// from a rejected account.
var ErrInvalidAccount = errors.New("provider account is not usable")

// Provider is the contract each identity provider adapter implements.
// Implementations return identity facts only and must not perform account
// linking or session management.
type Provider interface {
	// Name returns the short identifier used in routes and login keys.
	Name() string

	// RedirectURL returns the provider's authorization URL. Deterministic
	// and side-effect free.
	RedirectURL() string

	// ExchangeCode trades an authorization code for an access token. Any
	// error means authentication failed; callers must not distinguish
	// sub-reasons.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// ResolveIdentifier resolves an access token to the account identifier
	// unique within the provider's namespace. The returned error wraps
	// ErrInvalidAccount when the provider reports no usable account.
	ResolveIdentifier(ctx context.Context, accessToken string) (string, error)
}
