package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sapchat/internal/answer"
	"sapchat/internal/api"
	app_errors "sapchat/internal/errors"
	"sapchat/internal/interfaces/mocks"
	"sapchat/internal/model"
)

func setupSessionHandler(t *testing.T) (*api.SessionHandler, *mocks.MockSessionService) {
	mockSessionSvc := mocks.NewMockSessionService(t)
	return api.NewSessionHandler(mockSessionSvc), mockSessionSvc
}

func TestSessionHandler_HandleGetSession(t *testing.T) {
	handler, mockSessionSvc := setupSessionHandler(t)
	mockSessionSvc.On("Get", mock.Anything).
		Return(model.Session{SelectedID: "conv-1", DarkTheme: true}).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	rr := httptest.NewRecorder()
	handler.HandleGetSession(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "conv-1")
	mockSessionSvc.AssertExpectations(t)
}

func TestSessionHandler_HandleSelect(t *testing.T) {
	conversationID := uuid.NewString()

	t.Run("Success", func(t *testing.T) {
		handler, mockSessionSvc := setupSessionHandler(t)
		mockSessionSvc.On("Select", mock.Anything, conversationID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/v1/session/selected",
			strings.NewReader(`{"conversation_id":"`+conversationID+`"}`))
		rr := httptest.NewRecorder()
		handler.HandleSelect(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockSessionSvc.AssertExpectations(t)
	})

	t.Run("Success - empty id clears the selection", func(t *testing.T) {
		handler, mockSessionSvc := setupSessionHandler(t)
		mockSessionSvc.On("Select", mock.Anything, "").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/v1/session/selected",
			strings.NewReader(`{"conversation_id":""}`))
		rr := httptest.NewRecorder()
		handler.HandleSelect(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockSessionSvc.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockSessionSvc := setupSessionHandler(t)
		mockSessionSvc.On("Select", mock.Anything, conversationID).
			Return(app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/v1/session/selected",
			strings.NewReader(`{"conversation_id":"`+conversationID+`"}`))
		rr := httptest.NewRecorder()
		handler.HandleSelect(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockSessionSvc.AssertExpectations(t)
	})

	t.Run("Failure - malformed id", func(t *testing.T) {
		handler, _ := setupSessionHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/session/selected",
			strings.NewReader(`{"conversation_id":"not-a-uuid"}`))
		rr := httptest.NewRecorder()
		handler.HandleSelect(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'ConversationID' failed on the 'uuid4' tag")
	})

	t.Run("Failure - Bad JSON", func(t *testing.T) {
		handler, _ := setupSessionHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/session/selected", strings.NewReader(`{`))
		rr := httptest.NewRecorder()
		handler.HandleSelect(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSessionHandler_Toggles(t *testing.T) {
	t.Run("List panel", func(t *testing.T) {
		handler, mockSessionSvc := setupSessionHandler(t)
		mockSessionSvc.On("ToggleList", mock.Anything).Return(true).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/session/list", nil)
		rr := httptest.NewRecorder()
		handler.HandleToggleList(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"enabled":true}`, rr.Body.String())
	})

	t.Run("Theme", func(t *testing.T) {
		handler, mockSessionSvc := setupSessionHandler(t)
		mockSessionSvc.On("ToggleTheme", mock.Anything).Return(false).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/session/theme", nil)
		rr := httptest.NewRecorder()
		handler.HandleToggleTheme(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"enabled":false}`, rr.Body.String())
	})
}

func TestSessionHandler_HandleHealth(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSessionSvc := setupSessionHandler(t)
		mockSessionSvc.On("Health", mock.Anything).
			Return(&answer.HealthStatus{Status: "healthy"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		rr := httptest.NewRecorder()
		handler.HandleHealth(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "healthy")
	})

	t.Run("Failure - endpoint unreachable", func(t *testing.T) {
		handler, mockSessionSvc := setupSessionHandler(t)
		mockSessionSvc.On("Health", mock.Anything).
			Return(nil, &answer.RequestError{StatusCode: 503, Detail: "unexpected status 503 from answer endpoint"}).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		rr := httptest.NewRecorder()
		handler.HandleHealth(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}
