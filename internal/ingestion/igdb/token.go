package igdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const DefaultTokenURL = "https://id.twitch.tv/oauth2/token"

// ErrCredentials means the client-credentials exchange failed. Unlike other
// catalog failures it is surfaced to the caller.
var ErrCredentials = errors.New("igdb credential exchange failed")

// TokenProvider owns the process-wide IGDB access token. It exchanges the
// Twitch client credentials on first use and whenever Refresh is called.
type TokenProvider struct {
	cfg        clientcredentials.Config
	httpClient *http.Client

	mu    sync.Mutex
	token *oauth2.Token
}

func NewTokenProvider(clientID, clientSecret, tokenURL string, httpClient *http.Client) *TokenProvider {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TokenProvider{
		cfg: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: httpClient,
	}
}

// Token returns the cached access token, exchanging credentials if there is
// none or it has expired.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token.Valid() {
		return p.token.AccessToken, nil
	}
	return p.exchangeLocked(ctx)
}

// Refresh discards the cached token and exchanges credentials again.
func (p *TokenProvider) Refresh(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.token = nil
	return p.exchangeLocked(ctx)
}

func (p *TokenProvider) exchangeLocked(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := p.cfg.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCredentials, err)
	}
	p.token = tok
	return tok.AccessToken, nil
}
