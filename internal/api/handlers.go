package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bennhinn/youtube-learning-app/internal/models"
	"github.com/bennhinn/youtube-learning-app/internal/pathgen"
)

// PathGenerator produces a ranked video list for a keyword set.
type PathGenerator interface {
	Generate(ctx context.Context, keywords string, trusted, subscribed map[string]bool) ([]pathgen.VideoDetail, error)
}

type GoalStore interface {
	Insert(ctx context.Context, goal *models.Goal) error
	ListByUser(ctx context.Context, userID string) ([]models.Goal, error)
	GetByID(ctx context.Context, id string) (*models.Goal, error)
	Delete(ctx context.Context, id, userID string) error
}

type ProgressStore interface {
	Upsert(ctx context.Context, progress *models.Progress) error
	SummaryForGoal(ctx context.Context, userID, goalID string) (*models.GoalProgressSummary, error)
}

type ChannelStore interface {
	Add(ctx context.Context, channel *models.TrustedChannel) error
	Remove(ctx context.Context, userID, channelID string) error
	List(ctx context.Context, userID string) ([]models.TrustedChannel, error)
	IDSet(ctx context.Context, userID string) (map[string]bool, error)
}

// SubscriptionSource resolves the channels a user follows on YouTube.
type SubscriptionSource interface {
	SubscribedChannels(ctx context.Context, userID string) (map[string]bool, error)
}

// Connector drives the YouTube account OAuth flow.
type Connector interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, userID, code string) error
}

type App struct {
	Generator     PathGenerator
	Goals         GoalStore
	Progress      ProgressStore
	Channels      ChannelStore
	Subscriptions SubscriptionSource
	Auth          Connector
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// ConnectHandler returns the consent URL for linking a YouTube account. The
// user ID rides along as the OAuth state so the callback can attribute the
// token.
func (app *App) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"auth_url": app.Auth.AuthURL(userID(r)),
	})
}

// CallbackHandler finishes the OAuth flow. Google calls this without our
// identity header, so the user comes from the state parameter.
func (app *App) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		respondError(w, http.StatusBadRequest, "missing state or code")
		return
	}

	if err := app.Auth.Exchange(r.Context(), state, code); err != nil {
		log.Printf("[API] oauth exchange failed: %v", err)
		respondError(w, http.StatusBadGateway, "failed to link YouTube account")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "connected"})
}

func (app *App) ListTrustedChannelsHandler(w http.ResponseWriter, r *http.Request) {
	channels, err := app.Channels.List(r.Context(), userID(r))
	if err != nil {
		log.Printf("[API] listing trusted channels: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list trusted channels")
		return
	}

	if channels == nil {
		channels = []models.TrustedChannel{}
	}
	respondJSON(w, http.StatusOK, channels)
}

func (app *App) AddTrustedChannelHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChannelID    string `json:"channel_id"`
		ChannelTitle string `json:"channel_title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChannelID == "" {
		respondError(w, http.StatusBadRequest, "channel_id is required")
		return
	}

	channel := &models.TrustedChannel{
		UserID:       userID(r),
		ChannelID:    req.ChannelID,
		ChannelTitle: req.ChannelTitle,
	}
	if err := app.Channels.Add(r.Context(), channel); err != nil {
		log.Printf("[API] adding trusted channel: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to add trusted channel")
		return
	}

	respondJSON(w, http.StatusCreated, channel)
}

func (app *App) RemoveTrustedChannelHandler(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "channelID")
	if err := app.Channels.Remove(r.Context(), userID(r), channelID); err != nil {
		log.Printf("[API] removing trusted channel: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to remove trusted channel")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
