package database

import (
	"context"
	"fmt"
	"time"

	"github.com/bennhinn/youtube-learning-app/internal/models"
)

type ProgressRepo struct {
	db *DB
}

func NewProgressRepo(db *DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// Upsert records the latest watch position for one goal video.
func (r *ProgressRepo) Upsert(ctx context.Context, progress *models.Progress) error {
	progress.UpdatedAt = time.Now()

	query := `
		INSERT INTO watch_progress (user_id, goal_video_id, watched_seconds, completed, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, goal_video_id)
		DO UPDATE SET
			watched_seconds = excluded.watched_seconds,
			completed = excluded.completed,
			updated_at = excluded.updated_at`
	if r.db.dbType == "postgres" {
		query = `
		INSERT INTO watch_progress (user_id, goal_video_id, watched_seconds, completed, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, goal_video_id)
		DO UPDATE SET
			watched_seconds = EXCLUDED.watched_seconds,
			completed = EXCLUDED.completed,
			updated_at = EXCLUDED.updated_at`
	}

	_, err := r.db.conn.ExecContext(ctx, query,
		progress.UserID, progress.GoalVideoID, progress.WatchedSeconds, progress.Completed, progress.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

// SummaryForGoal aggregates a user's progress across one goal's playlist.
func (r *ProgressRepo) SummaryForGoal(ctx context.Context, userID, goalID string) (*models.GoalProgressSummary, error) {
	query := `
		SELECT COUNT(gv.id),
		       COALESCE(SUM(CASE WHEN wp.completed THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(wp.watched_seconds), 0)
		FROM goal_videos gv
		LEFT JOIN watch_progress wp ON wp.goal_video_id = gv.id AND wp.user_id = ?
		WHERE gv.goal_id = ?`
	if r.db.dbType == "postgres" {
		query = `
		SELECT COUNT(gv.id),
		       COALESCE(SUM(CASE WHEN wp.completed THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(wp.watched_seconds), 0)
		FROM goal_videos gv
		LEFT JOIN watch_progress wp ON wp.goal_video_id = gv.id AND wp.user_id = $1
		WHERE gv.goal_id = $2`
	}

	summary := models.GoalProgressSummary{GoalID: goalID}
	err := r.db.conn.QueryRowContext(ctx, query, userID, goalID).
		Scan(&summary.TotalVideos, &summary.Completed, &summary.WatchedSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize progress: %w", err)
	}
	return &summary, nil
}
