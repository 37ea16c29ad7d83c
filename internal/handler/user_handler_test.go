package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tirthomj/Ticket-Management-system/internal/handler"
	"github.com/tirthomj/Ticket-Management-system/internal/model"
	"github.com/tirthomj/Ticket-Management-system/internal/service/mocks"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
)

func setupUserTestRouter(mockService *mocks.UserServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.NewUserHandler(mockService).RegisterRoutes(router)
	return router
}

func TestRegister(t *testing.T) {
	credentials := handler.CredentialsRequest{Username: "alice", Password: "secret"}

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewUserServiceMock()
		router := setupUserTestRouter(mockService)

		mockService.On("Register", mock.Anything, "alice", "secret").
			Return(&model.User{ID: 0, Username: "alice", Password: "secret"}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/users/register", credentials)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		// 響應不得帶出密碼
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp["username"])
		assert.NotContains(t, resp, "password")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - UsernameTaken", func(t *testing.T) {
		mockService := mocks.NewUserServiceMock()
		router := setupUserTestRouter(mockService)

		mockService.On("Register", mock.Anything, "alice", "secret").
			Return(nil, apperrors.ErrUsernameTaken).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/users/register", credentials)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		mockService := mocks.NewUserServiceMock()
		router := setupUserTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/users/register", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Register")
	})
}

func TestLogin(t *testing.T) {
	credentials := handler.CredentialsRequest{Username: "alice", Password: "secret"}

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewUserServiceMock()
		router := setupUserTestRouter(mockService)

		mockService.On("Login", mock.Anything, "alice", "secret").
			Return(&model.User{ID: 0, Username: "alice", Password: "secret"}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/users/login", credentials)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - InvalidCredentials", func(t *testing.T) {
		mockService := mocks.NewUserServiceMock()
		router := setupUserTestRouter(mockService)

		mockService.On("Login", mock.Anything, "alice", "secret").
			Return(nil, apperrors.ErrInvalidCredentials).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/users/login", credentials)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertExpectations(t)
	})
}
