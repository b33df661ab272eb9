package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sapchat/internal/interfaces"
	"sapchat/internal/service"
)

// ChatHandler handles HTTP requests for conversations and the send flow.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// HandleSend godoc
// @Summary      Send a message
// @Description  Appends the user's message, queries the answer service, and appends the reply.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        message  body  service.SendRequest  true  "Message to send"
// @Success      200  {object}  service.SendResult
// @Success      204  "Empty input, silently skipped"
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /v1/messages [post]
func (h *ChatHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req service.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	result, err := h.service.Send(r.Context(), &req)
	if err != nil {
		// Whitespace-only input is ignored, not surfaced as an error.
		if errors.Is(err, service.ErrEmptyMessage) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// HandleGetConversations godoc
// @Summary      List conversations
// @Tags         Conversations
// @Produce      json
// @Success      200  {array}  model.Conversation
// @Router       /v1/conversations [get]
func (h *ChatHandler) HandleGetConversations(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.ListConversations(r.Context()))
}

// HandleGetConversation godoc
// @Summary      Get one conversation
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path  string  true  "Conversation ID"
// @Success      200  {object}  model.Conversation
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [get]
func (h *ChatHandler) HandleGetConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	conv, err := h.service.GetConversation(r.Context(), conversationID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// HandleDeleteConversation godoc
// @Summary      Delete one conversation
// @Description  Removes a conversation; deleting the selected one clears the selection.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path  string  true  "Conversation ID"
// @Success      200  {object}  StatusResponse
// @Router       /v1/conversations/{conversationID} [delete]
func (h *ChatHandler) HandleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	h.service.DeleteConversation(r.Context(), chi.URLParam(r, "conversationID"))
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleDeleteAll godoc
// @Summary      Delete all conversations
// @Tags         Conversations
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /v1/conversations [delete]
func (h *ChatHandler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	h.service.DeleteAll(r.Context())
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleQuickReply godoc
// @Summary      Quick prompt/reply exchange
// @Description  Forwards the prompt as a query parameter and returns the endpoint's statement.
// @Tags         Conversations
// @Produce      json
// @Param        prompt  query  string  true  "Prompt text"
// @Success      200  {object}  ReplyResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /v1/chat-reply [get]
func (h *ChatHandler) HandleQuickReply(w http.ResponseWriter, r *http.Request) {
	statement, err := h.service.QuickReply(r.Context(), r.URL.Query().Get("prompt"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ReplyResponse{Statement: statement})
}
