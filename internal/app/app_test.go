package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sapchat/internal/config"
	"sapchat/internal/model"
)

func TestNewApp(t *testing.T) {
	cfg := &config.Config{
		AppPort:      8000,
		AnswerAPIURL: "http://127.0.0.1:8001",
		LogLevel:     "DEBUG",
	}

	a, err := NewApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, a)

	assert.NotNil(t, a.Store)
	assert.NotNil(t, a.Client)
	assert.NotNil(t, a.Server)
	assert.Equal(t, ":8000", a.Server.Addr)
}

func TestNewApp_MissingEndpointURL(t *testing.T) {
	_, err := NewApp(&config.Config{AppPort: 8000})
	assert.Error(t, err)
}

// TestApp_SendFlow drives a full send through the wired router against a
// stubbed Answer Endpoint: create a thread, follow up in it, list it back,
// and check the session state along the way.
func TestApp_SendFlow(t *testing.T) {
	answerServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/nl-query":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"sql":"SELECT 42","columns":[],"rows":[],"answer":"42"}`))
		case "/":
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer answerServer.Close()

	a, err := NewApp(&config.Config{AppPort: 8000, AnswerAPIURL: answerServer.URL})
	require.NoError(t, err)

	ui := httptest.NewServer(a.Server.Handler)
	defer ui.Close()

	// First message opens a new conversation.
	resp, err := http.Post(ui.URL+"/api/v1/messages", "application/json",
		bytes.NewBufferString(`{"content":"what is the answer"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sent struct {
		ConversationID string        `json:"conversation_id"`
		Reply          model.Message `json:"reply"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sent))
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "42", sent.Reply.Content)
	require.NotEmpty(t, sent.ConversationID)

	// Second message lands in the same thread.
	resp, err = http.Post(ui.URL+"/api/v1/messages", "application/json",
		bytes.NewBufferString(`{"conversation_id":"`+sent.ConversationID+`","content":"again please"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp, err = http.Get(ui.URL + "/api/v1/conversations/" + sent.ConversationID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var conv model.Conversation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&conv))
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "what is the answer", conv.Title)
	assert.Len(t, conv.Messages, 4)

	// Whitespace-only input is silently skipped.
	resp, err = http.Post(ui.URL+"/api/v1/messages", "application/json",
		bytes.NewBufferString(`{"content":"   "}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp, err = http.Get(ui.URL + "/api/v1/session")
	require.NoError(t, err)
	var session model.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	require.NoError(t, resp.Body.Close())
	assert.False(t, session.InFlight)
	assert.Empty(t, session.LastError)
}

// TestApp_SendFailure checks that an endpoint failure surfaces through the
// session's last error while the user's message stays in the log.
func TestApp_SendFailure(t *testing.T) {
	answerServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"db down"}`))
	}))
	defer answerServer.Close()

	a, err := NewApp(&config.Config{AppPort: 8000, AnswerAPIURL: answerServer.URL})
	require.NoError(t, err)

	ui := httptest.NewServer(a.Server.Handler)
	defer ui.Close()

	resp, err := http.Post(ui.URL+"/api/v1/messages", "application/json",
		bytes.NewBufferString(`{"content":"broken"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, "db down", a.Store.Session().LastError)

	list := a.Store.List()
	require.Len(t, list, 1)
	require.Len(t, list[0].Messages, 1)
	assert.Equal(t, model.RoleUser, list[0].Messages[0].Role)
}

func TestHealthz(t *testing.T) {
	a, err := NewApp(&config.Config{AppPort: 8000, AnswerAPIURL: "http://127.0.0.1:8001"})
	require.NoError(t, err)

	ui := httptest.NewServer(a.Server.Handler)
	defer ui.Close()

	resp, err := http.Get(ui.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
