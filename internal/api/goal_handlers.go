package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bennhinn/youtube-learning-app/internal/database"
	"github.com/bennhinn/youtube-learning-app/internal/models"
	"github.com/bennhinn/youtube-learning-app/internal/pathgen"
)

// GenerateGoalHandler builds a learning path from the submitted keywords and
// saves it as a new goal. Upstream degradation still yields a goal with
// whatever videos survived; only unusable keywords are rejected.
func (app *App) GenerateGoalHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		Keywords string `json:"keywords"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	uid := userID(r)

	trusted, err := app.Channels.IDSet(r.Context(), uid)
	if err != nil {
		log.Printf("[API] loading trusted channels: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load trusted channels")
		return
	}

	// No linked YouTube account (or an upstream hiccup) just means no
	// subscription signal for this request.
	subscribed, err := app.Subscriptions.SubscribedChannels(r.Context(), uid)
	if err != nil {
		log.Printf("[API] subscriptions unavailable for user %s: %v", uid, err)
		subscribed = map[string]bool{}
	}

	videos, err := app.Generator.Generate(r.Context(), req.Keywords, trusted, subscribed)
	if err != nil {
		if errors.Is(err, pathgen.ErrInvalidKeywords) {
			respondError(w, http.StatusBadRequest, "keywords must contain at least one non-empty term")
			return
		}
		log.Printf("[API] generating path: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to generate learning path")
		return
	}

	title := req.Title
	if title == "" {
		title = req.Keywords
	}

	goal := models.NewGoal(uid, title, req.Keywords)
	for i, video := range videos {
		gv := models.NewGoalVideo(goal.ID, i)
		gv.VideoID = video.VideoID
		gv.Title = video.Title
		gv.Description = video.Description
		gv.ThumbnailURL = video.ThumbnailURL
		gv.ChannelID = video.ChannelID
		gv.ChannelTitle = video.ChannelTitle
		gv.PublishedAt = video.PublishedAt
		gv.DurationSeconds = video.DurationSeconds
		gv.ViewCount = video.ViewCount
		gv.LikeCount = video.LikeCount
		goal.Videos = append(goal.Videos, gv)
	}

	if err := app.Goals.Insert(r.Context(), goal); err != nil {
		log.Printf("[API] saving goal: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to save goal")
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

func (app *App) ListGoalsHandler(w http.ResponseWriter, r *http.Request) {
	goals, err := app.Goals.ListByUser(r.Context(), userID(r))
	if err != nil {
		log.Printf("[API] listing goals: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list goals")
		return
	}

	if goals == nil {
		goals = []models.Goal{}
	}
	respondJSON(w, http.StatusOK, goals)
}

func (app *App) GetGoalHandler(w http.ResponseWriter, r *http.Request) {
	goal, err := app.Goals.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, database.ErrGoalNotFound) {
			respondError(w, http.StatusNotFound, "goal not found")
			return
		}
		log.Printf("[API] getting goal: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get goal")
		return
	}

	if goal.UserID != userID(r) {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (app *App) DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	err := app.Goals.Delete(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		if errors.Is(err, database.ErrGoalNotFound) {
			respondError(w, http.StatusNotFound, "goal not found")
			return
		}
		log.Printf("[API] deleting goal: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *App) UpdateProgressHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WatchedSeconds int  `json:"watched_seconds"`
		Completed      bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.WatchedSeconds < 0 {
		respondError(w, http.StatusBadRequest, "watched_seconds must not be negative")
		return
	}

	progress := &models.Progress{
		UserID:         userID(r),
		GoalVideoID:    chi.URLParam(r, "videoID"),
		WatchedSeconds: req.WatchedSeconds,
		Completed:      req.Completed,
	}
	if err := app.Progress.Upsert(r.Context(), progress); err != nil {
		log.Printf("[API] updating progress: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to update progress")
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

func (app *App) GoalProgressHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := app.Progress.SummaryForGoal(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		log.Printf("[API] summarizing progress: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to summarize progress")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
