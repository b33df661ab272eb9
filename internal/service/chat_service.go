package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"sapchat/internal/answer"
	app_errors "sapchat/internal/errors"
	"sapchat/internal/model"
	"sapchat/internal/store"
)

// ErrEmptyMessage signals that a send carried only whitespace. It is a silent
// skip, not a failure: no state changes and no request is issued.
var ErrEmptyMessage = errors.New("service: empty message")

// genericSendError is shown when a failure carries no message of its own.
const genericSendError = "Something went wrong. Please try again."

// SendRequest is a new message from the composer.
type SendRequest struct {
	// ConversationID is empty when the user is composing a new thread.
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content" validate:"max=4000"`
	// Attachment is accepted from the composer but is not transmitted to the
	// Answer Endpoint under the current contract.
	Attachment string `json:"attachment,omitempty" validate:"omitempty,max=255"`
}

// SendResult is the settled outcome of a successful send.
type SendResult struct {
	ConversationID string              `json:"conversation_id"`
	Reply          model.Message       `json:"reply"`
	Query          *answer.QueryResult `json:"query,omitempty"`
}

// ChatService drives the send-message flow end to end and fronts the
// conversation store for the API layer.
type ChatService struct {
	store  *store.Store
	client answer.Client

	// serialize, when enabled, holds a per-conversation lock across the
	// outbound call so overlapping sends to one thread settle in order. The
	// default preserves the original unserialized behavior.
	serialize bool
	mu        sync.Mutex
	locks     map[string]*sync.Mutex
}

func NewChatService(st *store.Store, client answer.Client, serializeSends bool) *ChatService {
	return &ChatService{
		store:     st,
		client:    client,
		serialize: serializeSends,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Send processes one message: it appends the user's text to the target
// conversation synchronously, issues exactly one call to the Answer Endpoint,
// and on settlement either appends the bot reply or records the failure as
// the session's last error. The in-flight flag is cleared last in all cases.
//
// Overlapping Send calls are not serialized unless the service was built with
// serializeSends; each call appends its reply to the conversation id it
// resolved at entry, so replies never cross threads even when the network
// settles out of order.
func (s *ChatService) Send(ctx context.Context, req *SendRequest) (*SendResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyMessage
	}

	// The optimistic local append always completes before the outbound call
	// is issued: the user sees their own message regardless of the outcome.
	targetID := req.ConversationID
	if targetID == "" {
		targetID = s.store.CreateConversation(req.Content)
	} else {
		s.store.AppendMessage(targetID, model.RoleUser, req.Content)
	}

	if s.serialize {
		lock := s.conversationLock(targetID)
		lock.Lock()
		defer lock.Unlock()
	}

	s.store.BeginRequest()
	defer s.store.EndRequest()

	result, err := s.client.AskQuestion(ctx, req.Content)
	if err != nil {
		s.store.SetLastError(failureMessage(err))
		slog.Warn("Send failed", "conversation_id", targetID, "error", err)
		return nil, fmt.Errorf("could not get an answer: %w", err)
	}

	reply := model.Message{Role: model.RoleBot, Content: result.Answer}
	s.store.AppendMessage(targetID, reply.Role, reply.Content)

	return &SendResult{ConversationID: targetID, Reply: reply, Query: result}, nil
}

// QuickReply runs the narrower prompt/reply exchange. It does not touch the
// conversation store.
func (s *ChatService) QuickReply(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt must not be empty", app_errors.ErrValidation)
	}
	return s.client.ChatReply(ctx, prompt)
}

// ListConversations returns all conversations in creation order.
func (s *ChatService) ListConversations(ctx context.Context) []model.Conversation {
	return s.store.List()
}

// GetConversation returns a single conversation by id.
func (s *ChatService) GetConversation(ctx context.Context, conversationID string) (model.Conversation, error) {
	conv, err := s.store.GetConversation(conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Conversation{}, app_errors.ErrNotFound
		}
		return model.Conversation{}, err
	}
	return conv, nil
}

// DeleteConversation removes a conversation. The operation is idempotent.
func (s *ChatService) DeleteConversation(ctx context.Context, conversationID string) {
	s.store.DeleteConversation(conversationID)
}

// DeleteAll empties the store.
func (s *ChatService) DeleteAll(ctx context.Context) {
	s.store.DeleteAll()
}

// conversationLock returns the lock for one conversation, creating it on
// first use.
func (s *ChatService) conversationLock(conversationID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[conversationID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[conversationID] = lock
	}
	return lock
}

// failureMessage converts a settle failure into the user-visible error
// string: the endpoint's own detail when it carries one, otherwise a fixed
// generic phrase.
func failureMessage(err error) string {
	var reqErr *answer.RequestError
	if errors.As(err, &reqErr) && reqErr.Detail != "" {
		return reqErr.Detail
	}
	return genericSendError
}
