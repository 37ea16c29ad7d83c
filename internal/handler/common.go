package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tirthomj/Ticket-Management-system/internal/model"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func toShowResponse(show *model.Show) model.ShowResponse {
	return model.ShowResponse{
		ID:             show.ID,
		Singer:         show.Singer,
		Date:           show.Date.Format(),
		Venue:          show.Venue,
		Type:           show.Type,
		Price:          show.Price,
		Seats:          show.Seats,
		AvailableSeats: show.AvailableSeats(),
		BookedSeats:    show.BookedSeats(),
	}
}

func toTicketResponse(t *model.Ticket) model.TicketResponse {
	return model.TicketResponse{
		ID:                t.ID,
		TicketNumber:      t.TicketNumber,
		UserID:            t.UserID,
		ShowID:            t.ShowID,
		SeatNumber:        t.SeatNumber,
		PaymentMethod:     t.PaymentMethod,
		PaymentAccount:    t.PaymentAccount,
		TransactionNumber: t.TransactionNumber,
		Status:            t.Status.String(),
	}
}
