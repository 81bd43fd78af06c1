package models

import "time"

// TrustedChannel is a channel the user explicitly marked as trustworthy.
// Trusted channels get the maximum trust sub-score during ranking.
type TrustedChannel struct {
	UserID       string    `json:"user_id"`
	ChannelID    string    `json:"channel_id"`
	ChannelTitle string    `json:"channel_title"`
	AddedAt      time.Time `json:"added_at"`
}
