package models

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a user's learning goal: a named, ordered playlist of videos
// generated from a keyword set.
type Goal struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Title     string      `json:"title"`
	Keywords  string      `json:"keywords"`
	CreatedAt time.Time   `json:"created_at"`
	Videos    []GoalVideo `json:"videos"`
}

// GoalVideo is one entry in a goal's playlist, ranked by Position.
type GoalVideo struct {
	ID              string    `json:"id"`
	GoalID          string    `json:"goal_id"`
	VideoID         string    `json:"video_id"`
	Position        int       `json:"position"`
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

func NewGoal(userID, title, keywords string) *Goal {
	return &Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Keywords:  keywords,
		CreatedAt: time.Now(),
	}
}

func NewGoalVideo(goalID string, position int) GoalVideo {
	return GoalVideo{
		ID:       uuid.New().String(),
		GoalID:   goalID,
		Position: position,
	}
}
