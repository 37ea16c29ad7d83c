package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tirthomj/Ticket-Management-system/internal/model"
	"github.com/tirthomj/Ticket-Management-system/internal/service"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
	"github.com/tirthomj/Ticket-Management-system/pkg/logger"
)

type ShowHandler struct {
	service service.BookingService
}

func NewShowHandler(service service.BookingService) *ShowHandler {
	return &ShowHandler{service: service}
}

func (h *ShowHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("shows", h.ListUpcoming)
		router.GET("shows/:id", h.GetShow)
		router.POST("shows", h.Create)
	}
}

// CreateShowRequest 建立演出請求，date 用資料檔的 day,month,year 格式
type CreateShowRequest struct {
	Singer string `json:"singer" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Venue  string `json:"venue" binding:"required"`
	Type   string `json:"type" binding:"required"`
	Price  int    `json:"price" binding:"min=0"` // 免費場次的票價是 0
	Seats  int    `json:"seats" binding:"required,min=1"`
}

func (h *ShowHandler) ListUpcoming(c *gin.Context) {
	shows, err := h.service.ListUpcomingShows(c, time.Now())
	if err != nil {
		h.handleError(c, err, "ListUpcoming")
		return
	}
	resp := make([]model.ShowResponse, 0, len(shows))
	for _, show := range shows {
		resp = append(resp, toShowResponse(show))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShowHandler) GetShow(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid show id"})
		return
	}
	show, err := h.service.GetShow(c, id)
	if err != nil {
		h.handleError(c, err, "GetShow")
		return
	}
	c.JSON(http.StatusOK, toShowResponse(show))
}

func (h *ShowHandler) Create(c *gin.Context) {
	var req CreateShowRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	date, err := model.ParseShowDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected day,month,year"})
		return
	}
	show := &model.Show{
		Singer: req.Singer,
		Date:   date,
		Venue:  req.Venue,
		Type:   req.Type,
		Price:  req.Price,
		Seats:  req.Seats,
	}
	created, err := h.service.AddShow(c, show)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, toShowResponse(created))
}

func (h *ShowHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrShowNotFound):
		log.Warn("Show not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Show not found"})
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
