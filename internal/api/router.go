package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)
	r.Get("/api/auth/callback", app.CallbackHandler)

	r.Group(func(r chi.Router) {
		r.Use(RequireUser)

		r.Get("/api/auth/connect", app.ConnectHandler)

		r.Post("/api/goals/generate", app.GenerateGoalHandler)
		r.Get("/api/goals", app.ListGoalsHandler)
		r.Get("/api/goals/{id}", app.GetGoalHandler)
		r.Delete("/api/goals/{id}", app.DeleteGoalHandler)
		r.Get("/api/goals/{id}/progress", app.GoalProgressHandler)
		r.Post("/api/goals/{id}/videos/{videoID}/progress", app.UpdateProgressHandler)

		r.Get("/api/channels/trusted", app.ListTrustedChannelsHandler)
		r.Post("/api/channels/trusted", app.AddTrustedChannelHandler)
		r.Delete("/api/channels/trusted/{channelID}", app.RemoveTrustedChannelHandler)
	})

	return r
}
