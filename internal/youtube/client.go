package youtube

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/bennhinn/youtube-learning-app/internal/pathgen"
)

// Client wraps the YouTube Data API v3 service. It satisfies the generator's
// Searcher and Detailer interfaces.
type Client struct {
	service *youtube.Service
}

// NewClient builds an API-key client for unauthenticated calls (search,
// video details).
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key not configured")
	}

	svc, err := youtube.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}

	return &Client{service: svc}, nil
}

// NewUserClient builds a client authenticated as a specific user, for calls
// that need their account (subscriptions).
func NewUserClient(ctx context.Context, source oauth2.TokenSource) (*Client, error) {
	svc, err := youtube.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}

	return &Client{service: svc}, nil
}

// Search issues one search.list call restricted to embeddable videos with an
// English relevance bias.
func (c *Client) Search(ctx context.Context, query string, maxResults int64) ([]pathgen.SearchCandidate, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		VideoEmbeddable("true").
		RelevanceLanguage("en").
		Order("relevance").
		MaxResults(maxResults).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("executing search: %w", err)
	}

	candidates := make([]pathgen.SearchCandidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		candidates = append(candidates, pathgen.SearchCandidate{VideoID: item.Id.VideoId})
	}

	return candidates, nil
}

// FetchDetails issues one videos.list call for a single batch of IDs. The
// caller chunks to the API limit of 50 before calling.
func (c *Client) FetchDetails(ctx context.Context, videoIDs []string) ([]pathgen.VideoDetail, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	if len(videoIDs) > 50 {
		return nil, fmt.Errorf("videos.list accepts at most 50 IDs, got %d", len(videoIDs))
	}

	call := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoIDs...).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("fetching video details: %w", err)
	}

	details := make([]pathgen.VideoDetail, 0, len(resp.Items))
	for _, item := range resp.Items {
		details = append(details, videoDetailFromItem(item))
	}

	return details, nil
}

// SubscribedChannels pages through the authenticated user's subscriptions
// and returns the set of channel IDs.
func (c *Client) SubscribedChannels(ctx context.Context) (map[string]bool, error) {
	channels := make(map[string]bool)

	pageToken := ""
	for {
		call := c.service.Subscriptions.List([]string{"snippet"}).
			Mine(true).
			MaxResults(50).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("listing subscriptions: %w", err)
		}

		for _, item := range resp.Items {
			if item.Snippet != nil && item.Snippet.ResourceId != nil && item.Snippet.ResourceId.ChannelId != "" {
				channels[item.Snippet.ResourceId.ChannelId] = true
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return channels, nil
}

// videoDetailFromItem coerces the loosely populated API item into the typed
// detail record: high thumbnail falls back to default, missing statistics
// default to 0, malformed durations parse to 0.
func videoDetailFromItem(item *youtube.Video) pathgen.VideoDetail {
	detail := pathgen.VideoDetail{VideoID: item.Id}

	if item.Snippet != nil {
		detail.Title = item.Snippet.Title
		detail.Description = item.Snippet.Description
		detail.ChannelID = item.Snippet.ChannelId
		detail.ChannelTitle = item.Snippet.ChannelTitle

		if published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			detail.PublishedAt = published
		}

		if thumbs := item.Snippet.Thumbnails; thumbs != nil {
			switch {
			case thumbs.High != nil:
				detail.ThumbnailURL = thumbs.High.Url
			case thumbs.Default != nil:
				detail.ThumbnailURL = thumbs.Default.Url
			}
		}
	}

	if item.ContentDetails != nil {
		detail.DurationSeconds = ParseISO8601Duration(item.ContentDetails.Duration)
	}

	if item.Statistics != nil {
		detail.ViewCount = int64(item.Statistics.ViewCount)
		detail.LikeCount = int64(item.Statistics.LikeCount)
	}

	return detail
}
