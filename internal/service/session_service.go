package service

import (
	"context"
	"errors"

	"sapchat/internal/answer"
	app_errors "sapchat/internal/errors"
	"sapchat/internal/model"
	"sapchat/internal/store"
)

// SessionService manages the ephemeral view-state and the health passthrough
// to the Answer Endpoint.
type SessionService struct {
	store  *store.Store
	client answer.Client
}

func NewSessionService(st *store.Store, client answer.Client) *SessionService {
	return &SessionService{store: st, client: client}
}

// Get returns a snapshot of the current session view-state.
func (s *SessionService) Get(ctx context.Context) model.Session {
	return s.store.Session()
}

// Select opens a conversation. An empty id clears the selection instead,
// returning the session to the "composing a new thread" state.
func (s *SessionService) Select(ctx context.Context, conversationID string) error {
	if conversationID == "" {
		s.store.ClearSelection()
		return nil
	}
	if err := s.store.Select(conversationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return app_errors.ErrNotFound
		}
		return err
	}
	return nil
}

// ToggleList flips the list-panel visibility and returns the new value.
func (s *SessionService) ToggleList(ctx context.Context) bool {
	return s.store.ToggleList()
}

// ToggleTheme flips the color theme and returns the new value.
func (s *SessionService) ToggleTheme(ctx context.Context) bool {
	return s.store.ToggleTheme()
}

// Health reports whether the Answer Endpoint is reachable and healthy.
func (s *SessionService) Health(ctx context.Context) (*answer.HealthStatus, error) {
	return s.client.Health(ctx)
}
