// Package reddit implements the reddit OAuth2 provider adapter.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/sumire/pixelboard/internal/provider"
)

const Name = "reddit"

// reddit's token endpoint authenticates the client with HTTP basic auth;
// x/oauth2 probes for that on the first exchange.
var endpoint = oauth2.Endpoint{
	AuthURL:  "https://www.reddit.com/api/v1/authorize",
	TokenURL: "https://www.reddit.com/api/v1/access_token",
}

const userAgent = "pixelboard/1.0"

type Provider struct {
	conf    *oauth2.Config
	userURL string
	client  *http.Client
}

// New creates a reddit adapter redirecting back to baseURL/auth/reddit.
func New(clientID, clientSecret, baseURL string) *Provider {
	return &Provider{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     endpoint,
			Scopes:       []string{"identity"},
			RedirectURL:  baseURL + "/auth/reddit",
		},
		userURL: "https://oauth.reddit.com/api/v1/me",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Provider) Name() string { return Name }

// RedirectURL returns the reddit authorization URL. The token is requested
// with duration=temporary since it is used once and discarded.
func (p *Provider) RedirectURL() string {
	return p.conf.AuthCodeURL("", oauth2.SetAuthURLParam("duration", "temporary"))
}

// ExchangeCode trades an authorization code for an access token.
func (p *Provider) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("reddit token exchange: %w", err)
	}
	return token.AccessToken, nil
}

// ResolveIdentifier fetches the authenticated account and returns its
// username, which reddit keeps stable and unique. Suspended accounts are
// rejected as invalid.
func (p *Provider) ResolveIdentifier(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch reddit identity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reddit identity endpoint returned status %d", resp.StatusCode)
	}

	var u struct {
		Name        string `json:"name"`
		IsSuspended bool   `json:"is_suspended"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return "", fmt.Errorf("decode reddit identity: %w", err)
	}

	if u.Name == "" {
		return "", fmt.Errorf("%w: reddit returned no account name", provider.ErrInvalidAccount)
	}
	if u.IsSuspended {
		return "", fmt.Errorf("%w: reddit account is suspended", provider.ErrInvalidAccount)
	}
	return u.Name, nil
}
