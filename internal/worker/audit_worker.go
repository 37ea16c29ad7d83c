package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/tirthomj/Ticket-Management-system/internal/queue"
)

// AuditWorker 訂閱票務事件並寫稽核紀錄。
// 事件流是通知性質：帳本早已落地，這裡只負責留下可追查的軌跡。
type AuditWorker interface {
	Start(ctx context.Context) error
}

type AuditWorkerImpl struct {
	queue queue.BookingQueue
	log   *zap.Logger
}

func NewAuditWorker(q queue.BookingQueue, log *zap.Logger) AuditWorker {
	return &AuditWorkerImpl{
		queue: q,
		log:   log,
	}
}

func (w *AuditWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeEvents(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			w.record(msg.Event)
			msg.Ack()
		}
	}()
	return nil
}

func (w *AuditWorkerImpl) record(event *queue.BookingEvent) {
	w.log.Info("booking event",
		zap.String("type", event.Type),
		zap.Int("ticket_id", event.TicketID),
		zap.String("ticket_number", event.TicketNumber),
		zap.Int("user_id", event.UserID),
		zap.Int("show_id", event.ShowID),
		zap.Int("seat_number", event.SeatNumber),
		zap.String("transaction_number", event.TransactionNumber),
		zap.Time("occurred_at", event.OccurredAt),
	)
}
