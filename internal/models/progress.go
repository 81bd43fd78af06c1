package models

import "time"

// Progress records how far a user has watched one goal video.
type Progress struct {
	UserID         string    `json:"user_id"`
	GoalVideoID    string    `json:"goal_video_id"`
	WatchedSeconds int       `json:"watched_seconds"`
	Completed      bool      `json:"completed"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GoalProgressSummary aggregates completion across one goal's videos.
type GoalProgressSummary struct {
	GoalID         string `json:"goal_id"`
	TotalVideos    int    `json:"total_videos"`
	Completed      int    `json:"completed"`
	WatchedSeconds int    `json:"watched_seconds"`
}
