package api

import (
	"encoding/json"
	"net/http"

	"sapchat/internal/interfaces"
)

// SessionHandler handles HTTP requests for the session view-state.
type SessionHandler struct {
	service interfaces.SessionService
}

func NewSessionHandler(svc interfaces.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// SelectRequest is the DTO for changing the current selection. An empty id
// clears the selection.
type SelectRequest struct {
	ConversationID string `json:"conversation_id" validate:"omitempty,uuid4"`
}

// HandleGetSession godoc
// @Summary      Get session view-state
// @Tags         Session
// @Produce      json
// @Success      200  {object}  model.Session
// @Router       /v1/session [get]
func (h *SessionHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Get(r.Context()))
}

// HandleSelect godoc
// @Summary      Select a conversation
// @Description  Opens a conversation, or clears the selection when the id is empty.
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        selection  body  SelectRequest  true  "Conversation to open"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/session/selected [put]
func (h *SessionHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.service.Select(r.Context(), req.ConversationID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleToggleList godoc
// @Summary      Toggle the conversation list panel
// @Tags         Session
// @Produce      json
// @Success      200  {object}  ToggleResponse
// @Router       /v1/session/list [post]
func (h *SessionHandler) HandleToggleList(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ToggleResponse{Enabled: h.service.ToggleList(r.Context())})
}

// HandleToggleTheme godoc
// @Summary      Toggle the color theme
// @Tags         Session
// @Produce      json
// @Success      200  {object}  ToggleResponse
// @Router       /v1/session/theme [post]
func (h *SessionHandler) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ToggleResponse{Enabled: h.service.ToggleTheme(r.Context())})
}

// HandleHealth godoc
// @Summary      Answer service health
// @Description  Probes the Answer Endpoint's root route and relays the result.
// @Tags         Session
// @Produce      json
// @Success      200  {object}  answer.HealthStatus
// @Failure      502  {object}  ErrorResponse
// @Router       /v1/health [get]
func (h *SessionHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Health(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, status)
}
