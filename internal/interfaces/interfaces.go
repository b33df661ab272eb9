package interfaces

import (
	"context"

	"sapchat/internal/answer"
	"sapchat/internal/model"
	"sapchat/internal/service"
)

// This file defines the interfaces for our core services. The API layer
// depends on these instead of concrete implementations, which decouples the
// layers and makes handler tests trivial to mock.

// ChatService defines the contract for conversation-related business logic.
type ChatService interface {
	Send(ctx context.Context, req *service.SendRequest) (*service.SendResult, error)
	QuickReply(ctx context.Context, prompt string) (string, error)
	ListConversations(ctx context.Context) []model.Conversation
	GetConversation(ctx context.Context, conversationID string) (model.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID string)
	DeleteAll(ctx context.Context)
}

// SessionService defines the contract for the session view-state.
type SessionService interface {
	Get(ctx context.Context) model.Session
	Select(ctx context.Context, conversationID string) error
	ToggleList(ctx context.Context) bool
	ToggleTheme(ctx context.Context) bool
	Health(ctx context.Context) (*answer.HealthStatus, error)
}
