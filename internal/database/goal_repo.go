package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bennhinn/youtube-learning-app/internal/models"
)

var ErrGoalNotFound = errors.New("goal not found")

type GoalRepo struct {
	db *DB
}

func NewGoalRepo(db *DB) *GoalRepo {
	return &GoalRepo{db: db}
}

// Insert stores a goal together with its ordered videos in one transaction.
func (r *GoalRepo) Insert(ctx context.Context, goal *models.Goal) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	goalQuery := `INSERT INTO goals (id, user_id, title, keywords, created_at) VALUES (?, ?, ?, ?, ?)`
	if r.db.dbType == "postgres" {
		goalQuery = `INSERT INTO goals (id, user_id, title, keywords, created_at) VALUES ($1, $2, $3, $4, $5)`
	}

	if _, err := tx.ExecContext(ctx, goalQuery,
		goal.ID, goal.UserID, goal.Title, goal.Keywords, goal.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	videoQuery := `
		INSERT INTO goal_videos (
			id, goal_id, video_id, position, title, description, thumbnail_url,
			channel_id, channel_title, published_at, duration_seconds, view_count, like_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if r.db.dbType == "postgres" {
		videoQuery = `
		INSERT INTO goal_videos (
			id, goal_id, video_id, position, title, description, thumbnail_url,
			channel_id, channel_title, published_at, duration_seconds, view_count, like_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	}

	for _, video := range goal.Videos {
		if _, err := tx.ExecContext(ctx, videoQuery,
			video.ID, video.GoalID, video.VideoID, video.Position, video.Title,
			video.Description, video.ThumbnailURL, video.ChannelID, video.ChannelTitle,
			video.PublishedAt, video.DurationSeconds, video.ViewCount, video.LikeCount); err != nil {
			return fmt.Errorf("failed to insert goal video: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit goal: %w", err)
	}
	return nil
}

// ListByUser returns the user's goals newest-first, without their videos.
func (r *GoalRepo) ListByUser(ctx context.Context, userID string) ([]models.Goal, error) {
	query := `SELECT id, user_id, title, keywords, created_at FROM goals WHERE user_id = ? ORDER BY created_at DESC`
	if r.db.dbType == "postgres" {
		query = `SELECT id, user_id, title, keywords, created_at FROM goals WHERE user_id = $1 ORDER BY created_at DESC`
	}

	rows, err := r.db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Title, &goal.Keywords, &goal.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}

// GetByID returns one goal with its videos in playlist order.
func (r *GoalRepo) GetByID(ctx context.Context, id string) (*models.Goal, error) {
	query := `SELECT id, user_id, title, keywords, created_at FROM goals WHERE id = ?`
	if r.db.dbType == "postgres" {
		query = `SELECT id, user_id, title, keywords, created_at FROM goals WHERE id = $1`
	}

	var goal models.Goal
	err := r.db.conn.QueryRowContext(ctx, query, id).
		Scan(&goal.ID, &goal.UserID, &goal.Title, &goal.Keywords, &goal.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	videoQuery := `
		SELECT id, goal_id, video_id, position, title, description, thumbnail_url,
		       channel_id, channel_title, published_at, duration_seconds, view_count, like_count
		FROM goal_videos WHERE goal_id = ? ORDER BY position`
	if r.db.dbType == "postgres" {
		videoQuery = `
		SELECT id, goal_id, video_id, position, title, description, thumbnail_url,
		       channel_id, channel_title, published_at, duration_seconds, view_count, like_count
		FROM goal_videos WHERE goal_id = $1 ORDER BY position`
	}

	rows, err := r.db.conn.QueryContext(ctx, videoQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get goal videos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var video models.GoalVideo
		if err := rows.Scan(&video.ID, &video.GoalID, &video.VideoID, &video.Position,
			&video.Title, &video.Description, &video.ThumbnailURL, &video.ChannelID,
			&video.ChannelTitle, &video.PublishedAt, &video.DurationSeconds,
			&video.ViewCount, &video.LikeCount); err != nil {
			return nil, fmt.Errorf("failed to scan goal video: %w", err)
		}
		goal.Videos = append(goal.Videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal videos: %w", err)
	}
	return &goal, nil
}

// Delete removes a goal owned by the given user. Cascades to its videos.
func (r *GoalRepo) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM goals WHERE id = ? AND user_id = ?`
	if r.db.dbType == "postgres" {
		query = `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	}

	result, err := r.db.conn.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrGoalNotFound
	}
	return nil
}
