package auth

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const youtubeReadonlyScope = "https://www.googleapis.com/auth/youtube.readonly"

// TokenStore persists per-user OAuth tokens.
type TokenStore interface {
	GetToken(ctx context.Context, userID string) (*oauth2.Token, error)
	SaveToken(ctx context.Context, userID string, token *oauth2.Token) error
}

// Manager handles the OAuth flow for connecting a YouTube account and hands
// out self-refreshing token sources. Refresh is a plain expiry check plus a
// refresh-token exchange; there is no retry or backoff.
type Manager struct {
	config *oauth2.Config
	store  TokenStore
}

func NewManager(clientID, clientSecret, redirectURL string, store TokenStore) *Manager {
	return &Manager{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{youtubeReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		store: store,
	}
}

// AuthURL returns the consent-page URL to send the user to. Offline access
// is required so a refresh token comes back.
func (m *Manager) AuthURL(state string) string {
	return m.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the callback code for a token and persists it.
func (m *Manager) Exchange(ctx context.Context, userID, code string) error {
	token, err := m.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchanging auth code: %w", err)
	}

	if err := m.store.SaveToken(ctx, userID, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	return nil
}

// TokenSource returns a source backed by the stored token that refreshes on
// expiry and writes refreshed tokens back to the store.
func (m *Manager) TokenSource(ctx context.Context, userID string) (oauth2.TokenSource, error) {
	token, err := m.store.GetToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading token: %w", err)
	}

	return &savingTokenSource{
		ctx:    ctx,
		userID: userID,
		store:  m.store,
		source: m.config.TokenSource(ctx, token),
		last:   token,
	}, nil
}

// savingTokenSource persists the token whenever the inner source rotates the
// access token, so the next request picks up where this one left off.
type savingTokenSource struct {
	ctx    context.Context
	userID string
	store  TokenStore

	mu     sync.Mutex
	source oauth2.TokenSource
	last   *oauth2.Token
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	if s.last == nil || token.AccessToken != s.last.AccessToken {
		if err := s.store.SaveToken(s.ctx, s.userID, token); err != nil {
			// The refreshed token is still usable for this request.
			log.Printf("[AUTH] saving refreshed token for user %s: %v", s.userID, err)
		}
		s.last = token
	}

	return token, nil
}
