package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tirthomj/Ticket-Management-system/internal/model"
	"github.com/tirthomj/Ticket-Management-system/internal/service"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
	"github.com/tirthomj/Ticket-Management-system/pkg/logger"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1/users")
	{
		router.POST("register", h.Register)
		router.POST("login", h.Login)
	}
}

type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	user, err := h.service.Register(c, req.Username, req.Password)
	if err != nil {
		h.handleError(c, err, "Register")
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	user, err := h.service.Login(c, req.Username, req.Password)
	if err != nil {
		h.handleError(c, err, "Login")
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(u *model.User) model.UserResponse {
	return model.UserResponse{
		ID:       u.ID,
		Username: u.Username,
	}
}

func (h *UserHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrUsernameTaken):
		log.Warn("Username taken")
		c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		log.Warn("Invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		log.Error("Storage unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage unavailable, please retry"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
