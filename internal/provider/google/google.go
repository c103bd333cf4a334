// Package google implements the Google OAuth2 provider adapter.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"

	"github.com/sumire/pixelboard/internal/provider"
)

const Name = "google"

type Provider struct {
	conf    *oauth2.Config
	userURL string
	client  *http.Client
}

// New creates a Google adapter redirecting back to baseURL/auth/google.
func New(clientID, clientSecret, baseURL string) *Provider {
	return &Provider{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     googleOAuth.Endpoint,
			Scopes:       []string{"openid"},
			RedirectURL:  baseURL + "/auth/google",
		},
		userURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Provider) Name() string { return Name }

// RedirectURL returns the Google authorization URL.
func (p *Provider) RedirectURL() string {
	return p.conf.AuthCodeURL("")
}

// ExchangeCode trades an authorization code for an access token.
func (p *Provider) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("google token exchange: %w", err)
	}
	return token.AccessToken, nil
}

// ResolveIdentifier fetches the userinfo document and returns the stable
// account id.
func (p *Provider) ResolveIdentifier(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var u struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return "", fmt.Errorf("decode google userinfo: %w", err)
	}

	if u.ID == "" {
		return "", fmt.Errorf("%w: google returned no account id", provider.ErrInvalidAccount)
	}
	return u.ID, nil
}
