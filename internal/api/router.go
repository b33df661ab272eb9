package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a chi router with all the application's
// routes.
func NewRouter(chatHandler *ChatHandler, sessionHandler *SessionHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Liveness probe for the process itself; the Answer Endpoint's health is
	// exposed separately under /api/v1/health.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON routes get a request timeout so client connections
		// cannot hang indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/conversations", chatHandler.HandleGetConversations)
			r.Get("/conversations/{conversationID}", chatHandler.HandleGetConversation)
			r.Delete("/conversations/{conversationID}", chatHandler.HandleDeleteConversation)
			r.Delete("/conversations", chatHandler.HandleDeleteAll)

			r.Get("/session", sessionHandler.HandleGetSession)
			r.Put("/session/selected", sessionHandler.HandleSelect)
			r.Post("/session/list", sessionHandler.HandleToggleList)
			r.Post("/session/theme", sessionHandler.HandleToggleTheme)
			r.Get("/health", sessionHandler.HandleHealth)
		})

		// The send and quick-reply routes block on the Answer Endpoint, which
		// enforces no deadline of its own, so they carry no timeout here.
		r.Group(func(r chi.Router) {
			r.Post("/messages", chatHandler.HandleSend)
			r.Get("/chat-reply", chatHandler.HandleQuickReply)
		})
	})

	return r
}
