package database

import (
	"context"
	"testing"

	"github.com/bennhinn/youtube-learning-app/internal/models"
)

func TestProgressRepo_UpsertAndSummary(t *testing.T) {
	db := setupTestDB(t)
	goalRepo := NewGoalRepo(db)
	repo := NewProgressRepo(db)
	ctx := context.Background()

	goal := sampleGoal("user-1")
	if err := goalRepo.Insert(ctx, goal); err != nil {
		t.Fatalf("Failed to insert goal: %v", err)
	}

	first := &models.Progress{
		UserID:         "user-1",
		GoalVideoID:    goal.Videos[0].ID,
		WatchedSeconds: 120,
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Failed to upsert progress: %v", err)
	}

	// Updating the same video replaces, not duplicates.
	first.WatchedSeconds = 600
	first.Completed = true
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Failed to update progress: %v", err)
	}

	second := &models.Progress{
		UserID:         "user-1",
		GoalVideoID:    goal.Videos[1].ID,
		WatchedSeconds: 45,
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("Failed to upsert second progress: %v", err)
	}

	summary, err := repo.SummaryForGoal(ctx, "user-1", goal.ID)
	if err != nil {
		t.Fatalf("Failed to summarize progress: %v", err)
	}

	if summary.TotalVideos != 3 {
		t.Errorf("Expected 3 total videos, got %d", summary.TotalVideos)
	}
	if summary.Completed != 1 {
		t.Errorf("Expected 1 completed, got %d", summary.Completed)
	}
	if summary.WatchedSeconds != 645 {
		t.Errorf("Expected 645 watched seconds, got %d", summary.WatchedSeconds)
	}
}

func TestProgressRepo_SummaryIsolatedPerUser(t *testing.T) {
	db := setupTestDB(t)
	goalRepo := NewGoalRepo(db)
	repo := NewProgressRepo(db)
	ctx := context.Background()

	goal := sampleGoal("user-1")
	if err := goalRepo.Insert(ctx, goal); err != nil {
		t.Fatalf("Failed to insert goal: %v", err)
	}

	progress := &models.Progress{
		UserID:         "user-2",
		GoalVideoID:    goal.Videos[0].ID,
		WatchedSeconds: 300,
		Completed:      true,
	}
	if err := repo.Upsert(ctx, progress); err != nil {
		t.Fatalf("Failed to upsert progress: %v", err)
	}

	summary, err := repo.SummaryForGoal(ctx, "user-1", goal.ID)
	if err != nil {
		t.Fatalf("Failed to summarize progress: %v", err)
	}

	if summary.Completed != 0 || summary.WatchedSeconds != 0 {
		t.Errorf("Expected no progress for user-1, got %+v", summary)
	}
}
