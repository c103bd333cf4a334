// Package discord implements the Discord OAuth2 provider adapter.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/sumire/pixelboard/internal/provider"
)

const Name = "discord"

var endpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

// Provider implements the Discord OAuth2 flow. Identity comes from the
// /users/@me endpoint; the email scope is requested only so the verified
// flag is present in the response.
type Provider struct {
	conf    *oauth2.Config
	userURL string
	client  *http.Client
}

// New creates a Discord adapter. baseURL is the public origin this service
// is reachable at; the provider redirects back to baseURL/auth/discord.
func New(clientID, clientSecret, baseURL string) *Provider {
	return &Provider{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     endpoint,
			Scopes:       []string{"identify", "email"},
			RedirectURL:  baseURL + "/auth/discord",
		},
		userURL: "https://discord.com/api/users/@me",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Provider) Name() string { return Name }

// RedirectURL returns the Discord authorization URL.
func (p *Provider) RedirectURL() string {
	return p.conf.AuthCodeURL("")
}

// ExchangeCode trades an authorization code for an access token.
func (p *Provider) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("discord token exchange: %w", err)
	}
	return token.AccessToken, nil
}

// ResolveIdentifier fetches the authenticated account and returns its id.
// Unverified accounts are rejected as invalid.
func (p *Provider) ResolveIdentifier(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch discord user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("discord user endpoint returned status %d", resp.StatusCode)
	}

	var u struct {
		ID       string `json:"id"`
		Verified bool   `json:"verified"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return "", fmt.Errorf("decode discord user: %w", err)
	}

	if u.ID == "" {
		return "", fmt.Errorf("%w: discord returned no account id", provider.ErrInvalidAccount)
	}
	if !u.Verified {
		return "", fmt.Errorf("%w: discord account is unverified", provider.ErrInvalidAccount)
	}
	return u.ID, nil
}
