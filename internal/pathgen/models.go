package pathgen

import (
	"time"
)

// SearchCandidate is a video reference returned by a keyword search, before
// any metadata has been fetched for it.
type SearchCandidate struct {
	VideoID string
}

// VideoDetail is a candidate enriched with full metadata from the videos
// endpoint. Missing statistics are zero, never negative.
type VideoDetail struct {
	VideoID         string    `json:"video_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	ChannelID       string    `json:"channel_id"`
	ChannelTitle    string    `json:"channel_title"`
	PublishedAt     time.Time `json:"published_at"`
	DurationSeconds int       `json:"duration_seconds"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
}

// ScoringContext carries the per-request trust and familiarity signals.
// ChannelFrequency counts how often each channel appears in the current
// candidate batch and is computed by the generator, not the caller.
type ScoringContext struct {
	TrustedChannelIDs    map[string]bool
	SubscribedChannelIDs map[string]bool
	ChannelFrequency     map[string]int
}

type rankedVideo struct {
	detail VideoDetail
	score  float64
}
