package model

// Role identifies the author of a message. The set is closed: every message
// is written either by the user or by the bot.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is a single entry in a conversation's log. Messages are append-only;
// their position in the log is the chronological order.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is one independently addressable thread of messages.
type Conversation struct {
	ID string `json:"id"`
	// Title is derived from the first user message at creation time and is
	// never recomputed afterwards.
	Title string `json:"title"`
	// CreatedAt is a human-readable label, fixed at creation.
	CreatedAt string    `json:"created_at"`
	Messages  []Message `json:"messages"`
}

// Clone returns a copy whose message log does not alias the original.
func (c Conversation) Clone() Conversation {
	msgs := make([]Message, len(c.Messages))
	copy(msgs, c.Messages)
	c.Messages = msgs
	return c
}

// Session is the ephemeral view-state handed to the presentation layer.
// None of it survives a restart.
type Session struct {
	// SelectedID is the currently open conversation; empty means the user is
	// composing a new thread.
	SelectedID  string `json:"selected_id,omitempty"`
	InFlight    bool   `json:"in_flight"`
	LastError   string `json:"last_error,omitempty"`
	ListVisible bool   `json:"list_visible"`
	DarkTheme   bool   `json:"dark_theme"`
}
