package youtube

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// TokenProvider hands out a per-user OAuth token source.
type TokenProvider interface {
	TokenSource(ctx context.Context, userID string) (oauth2.TokenSource, error)
}

// SubscriptionService resolves a user's subscribed channel set using their
// stored OAuth credentials.
type SubscriptionService struct {
	tokens TokenProvider
}

func NewSubscriptionService(tokens TokenProvider) *SubscriptionService {
	return &SubscriptionService{tokens: tokens}
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, userID string) (map[string]bool, error) {
	source, err := s.tokens.TokenSource(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving user token: %w", err)
	}

	client, err := NewUserClient(ctx, source)
	if err != nil {
		return nil, err
	}

	return client.SubscribedChannels(ctx)
}
