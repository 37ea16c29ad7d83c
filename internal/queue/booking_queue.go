package queue

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tirthomj/Ticket-Management-system/pkg/logger"
)

// 事件種類
const (
	EventTicketIssued    = "ticket_issued"
	EventTicketCancelled = "ticket_cancelled"
)

// BookingEvent 票務事件。事件流只是通知用途：
// 帳本在發佈之前已經落地，下游掉了事件也不影響訂位正確性。
type BookingEvent struct {
	Type              string    `json:"type"`
	TicketID          int       `json:"ticket_id"`
	TicketNumber      string    `json:"ticket_number"`
	UserID            int       `json:"user_id"`
	ShowID            int       `json:"show_id"`
	SeatNumber        int       `json:"seat_number"`
	TransactionNumber string    `json:"transaction_number"`
	OccurredAt        time.Time `json:"occurred_at"`
}

type Delivery struct {
	Event *BookingEvent
	Ack   func()
	Nack  func(requeue bool)
}

type BookingQueue interface {
	// 發送事件到隊列
	PublishEvent(ctx context.Context, event *BookingEvent) error
	// 訂閱事件隊列
	SubscribeEvents(ctx context.Context) (<-chan Delivery, error)
}

type MemoryBookingQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *BookingEvent
}

func NewMemoryBookingQueue(bufferSize int) BookingQueue {
	return &MemoryBookingQueueImpl{
		ch: make(chan *BookingEvent, bufferSize),
	}
}

func (q *MemoryBookingQueueImpl) PublishEvent(ctx context.Context, event *BookingEvent) error {
	select {
	case q.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryBookingQueueImpl) SubscribeEvents(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Event: event,
					Ack:   func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if !requeue {
							return
						}
						// 重回隊列不能讓呼叫端卡死：緩衝滿就丟掉這個通知性事件
						select {
						case q.ch <- event:
						default:
							logger.WithComponent("mq").Warn("requeue dropped, buffer full",
								zap.String("type", event.Type), zap.Int("ticket_id", event.TicketID))
						}
					},
				}
			}
		}
	}()

	return out, nil
}
