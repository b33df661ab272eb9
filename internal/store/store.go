package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"sapchat/internal/model"
)

// ErrNotFound is returned when a lookup for a single conversation finds
// nothing. The service layer translates it into a domain-level error so the
// API never depends on store internals.
var ErrNotFound = errors.New("store: conversation not found")

// titleMaxRunes is the fixed prefix length used to derive a conversation's
// title from its first user message.
const titleMaxRunes = 20

// createdAtLayout renders the creation timestamp as a human-readable label.
const createdAtLayout = "Jan 2, 2006, 3:04 PM"

// Store holds every conversation plus the session view-state. It is an
// explicit, injectable container: all mutation goes through its methods, every
// mutation replaces whole structures, and readers only ever receive copies.
// A single mutex makes that safe under the server's one-goroutine-per-request
// model.
type Store struct {
	mu            sync.RWMutex
	conversations []model.Conversation
	session       model.Session
}

func New() *Store {
	return &Store{}
}

// CreateConversation starts a new thread seeded with one user message holding
// the full text. The title is the first 20 runes of that text, fixed forever.
// IDs come from a collision-proof generator, so deleting and re-creating
// conversations can never produce a duplicate.
func (s *Store) CreateConversation(firstMessageText string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := model.Conversation{
		ID:        uuid.NewString(),
		Title:     truncate(firstMessageText, titleMaxRunes),
		CreatedAt: time.Now().Format(createdAtLayout),
		Messages:  []model.Message{{Role: model.RoleUser, Content: firstMessageText}},
	}

	next := make([]model.Conversation, len(s.conversations), len(s.conversations)+1)
	copy(next, s.conversations)
	s.conversations = append(next, conv)

	return conv.ID
}

// AppendMessage adds a message to the end of one conversation's log. Unknown
// ids are a silent no-op. Only the target conversation is rebuilt; every other
// conversation is left structurally untouched.
func (s *Store) AppendMessage(conversationID string, role model.Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(conversationID)
	if i < 0 {
		return
	}

	next := make([]model.Conversation, len(s.conversations))
	copy(next, s.conversations)

	conv := next[i].Clone()
	conv.Messages = append(conv.Messages, model.Message{Role: role, Content: content})
	next[i] = conv

	s.conversations = next
}

// DeleteConversation removes a conversation. Deleting the currently selected
// one also clears the selection. Unknown ids are a no-op, which makes the
// operation idempotent.
func (s *Store) DeleteConversation(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(conversationID)
	if i < 0 {
		return
	}

	next := make([]model.Conversation, 0, len(s.conversations)-1)
	next = append(next, s.conversations[:i]...)
	next = append(next, s.conversations[i+1:]...)
	s.conversations = next

	if s.session.SelectedID == conversationID {
		s.session.SelectedID = ""
	}
}

// DeleteAll empties the store and clears the selection.
func (s *Store) DeleteAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = nil
	s.session.SelectedID = ""
}

// GetConversation returns a copy of one conversation, or ErrNotFound.
func (s *Store) GetConversation(conversationID string) (model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(conversationID)
	if i < 0 {
		return model.Conversation{}, ErrNotFound
	}
	return s.conversations[i].Clone(), nil
}

// List returns copies of all conversations in creation order.
func (s *Store) List() []model.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Conversation, len(s.conversations))
	for i, conv := range s.conversations {
		out[i] = conv.Clone()
	}
	return out
}

// Select marks a conversation as the currently open one.
func (s *Store) Select(conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(conversationID) < 0 {
		return ErrNotFound
	}
	s.session.SelectedID = conversationID
	return nil
}

// ClearSelection returns the session to the "composing a new thread" state.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.SelectedID = ""
}

// BeginRequest marks an outbound request as in flight and clears the error
// from the previous attempt.
func (s *Store) BeginRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.InFlight = true
	s.session.LastError = ""
}

// EndRequest clears the in-flight flag. Callers must invoke it after the
// request settles, regardless of outcome.
func (s *Store) EndRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.InFlight = false
}

// SetLastError records the user-visible message for a failed request. It
// stays visible until the next attempt clears it.
func (s *Store) SetLastError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.LastError = message
}

// ToggleList flips the list-panel visibility and returns the new value.
func (s *Store) ToggleList() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.ListVisible = !s.session.ListVisible
	return s.session.ListVisible
}

// ToggleTheme flips the color theme and returns the new value.
func (s *Store) ToggleTheme() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.DarkTheme = !s.session.DarkTheme
	return s.session.DarkTheme
}

// Session returns a snapshot of the current view-state.
func (s *Store) Session() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// indexOf must be called with the mutex held.
func (s *Store) indexOf(conversationID string) int {
	for i, conv := range s.conversations {
		if conv.ID == conversationID {
			return i
		}
	}
	return -1
}

// truncate shortens a string to a specified number of runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
