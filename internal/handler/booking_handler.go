package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tirthomj/Ticket-Management-system/internal/model"
	"github.com/tirthomj/Ticket-Management-system/internal/service"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
	"github.com/tirthomj/Ticket-Management-system/pkg/logger"
)

type BookingHandler struct {
	service service.BookingService
}

func NewBookingHandler(service service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("bookings", h.Purchase)
		router.GET("tickets", h.ListUserTickets)
		router.GET("tickets/:id", h.GetTicket)
		router.PUT("tickets/:id/cancel", h.CancelTicket)
	}
}

// PurchaseResponse 購票響應
type PurchaseResponse struct {
	Tickets           []model.TicketResponse `json:"tickets"`
	TransactionNumber string                 `json:"transaction_number"`
	TotalCost         int                    `json:"total_cost"`
}

func (h *BookingHandler) Purchase(c *gin.Context) {
	var req model.PurchaseRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.Purchase(c, req)
	if err != nil {
		h.handleError(c, err, "Purchase")
		return
	}

	resp := PurchaseResponse{
		Tickets:           make([]model.TicketResponse, 0, len(result.Tickets)),
		TransactionNumber: result.TransactionNumber,
		TotalCost:         result.TotalCost,
	}
	for _, t := range result.Tickets {
		resp.Tickets = append(resp.Tickets, toTicketResponse(t))
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) CancelTicket(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket id"})
		return
	}
	ticket, err := h.service.Cancel(c, id)
	if err != nil {
		h.handleError(c, err, "CancelTicket")
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(ticket))
}

func (h *BookingHandler) GetTicket(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket id"})
		return
	}
	ticket, err := h.service.GetTicket(c, id)
	if err != nil {
		h.handleError(c, err, "GetTicket")
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(ticket))
}

func (h *BookingHandler) ListUserTickets(c *gin.Context) {
	// user_id 從 0 起算，必須以有無參數判斷、不能靠零值
	userIDParam := c.Query("user_id")
	if userIDParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	userID, err := strconv.Atoi(userIDParam)
	if err != nil || userID < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	activeOnly := c.Query("active") == "true"

	tickets, err := h.service.ListUserTickets(c, userID, activeOnly)
	if err != nil {
		h.handleError(c, err, "ListUserTickets")
		return
	}
	resp := make([]model.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		resp = append(resp, toTicketResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrSeatAlreadyBooked):
		log.Warn("Seat already booked")
		c.JSON(http.StatusConflict, gin.H{"error": "Seat already booked"})
	case errors.Is(err, apperrors.ErrDuplicateSeatInRequest):
		log.Warn("Duplicate seat in request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate seat in request"})
	case errors.Is(err, apperrors.ErrSeatOutOfRange):
		log.Warn("Seat out of range")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Seat number out of range"})
	case errors.Is(err, apperrors.ErrTicketAlreadyCancelled):
		// 重複取消是可恢復的使用者訊息，不是系統故障
		log.Warn("Ticket already cancelled")
		c.JSON(http.StatusConflict, gin.H{"error": "Ticket is already cancelled"})
	case errors.Is(err, apperrors.ErrShowNotFound):
		log.Warn("Show not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Show not found"})
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
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
