package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"finsim.backend/internal/config"
	"finsim.backend/internal/domain/gateways"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProvider exchanges Google authorization codes for a verified
// identity using the userinfo endpoint.
type GoogleProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

var _ gateways.IdentityProvider = (*GoogleProvider)(nil)

func NewGoogleProvider(cfg config.GoogleConfig) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

// Configured reports whether client credentials are present
func (p *GoogleProvider) Configured() bool {
	return p.config.ClientID != "" && p.config.ClientSecret != ""
}

func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*gateways.ExternalIdentity, error) {
	if !p.Configured() {
		return nil, fmt.Errorf("google oauth not configured")
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange failed: %w", err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("google userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo: unexpected status %s", resp.Status)
	}

	var info struct {
		Email         string `json:"email"`
		Name          string `json:"name"`
		VerifiedEmail bool   `json:"verified_email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("google userinfo decode failed: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google userinfo returned no email")
	}

	return &gateways.ExternalIdentity{
		Email:         info.Email,
		Name:          info.Name,
		EmailVerified: info.VerifiedEmail,
	}, nil
}
