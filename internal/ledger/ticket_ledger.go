package ledger

import (
	"fmt"
	"sync"

	"github.com/tirthomj/Ticket-Management-system/internal/model"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
)

// TicketLedger 票券帳本：票券紀錄的唯一持有者。
// 票券只會由購買流程建立（Active），取消後只改狀態、永不刪除。
type TicketLedger struct {
	mu      sync.RWMutex
	tickets []*model.Ticket
	byID    map[int]*model.Ticket
	nextID  int
}

func NewTicketLedger(tickets []*model.Ticket) *TicketLedger {
	l := &TicketLedger{
		byID: make(map[int]*model.Ticket, len(tickets)),
	}
	for _, t := range tickets {
		clone := t.Clone()
		l.tickets = append(l.tickets, clone)
		l.byID[clone.ID] = clone
		if clone.ID >= l.nextID {
			l.nextID = clone.ID + 1
		}
	}
	return l
}

// Issue 配發下一個整數 ID 並建立 Active 票券。
// 呼叫端必須先透過 ShowLedger.ClaimSeat 佔好座位；本帳本不碰演出帳本。
func (l *TicketLedger) Issue(userID, showID, seatNumber int, ticketNumber, paymentMethod, paymentAccount, transactionNumber string) *model.Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := &model.Ticket{
		ID:                l.nextID,
		TicketNumber:      ticketNumber,
		UserID:            userID,
		ShowID:            showID,
		SeatNumber:        seatNumber,
		PaymentMethod:     paymentMethod,
		PaymentAccount:    paymentAccount,
		TransactionNumber: transactionNumber,
		Status:            model.TicketStatusActive,
	}
	l.nextID++
	l.tickets = append(l.tickets, t)
	l.byID[t.ID] = t
	return t.Clone()
}

// Cancel 將票券設為 Cancelled，回傳票券副本讓呼叫端釋放座位。
// 已取消的票券回報 ErrTicketAlreadyCancelled（可恢復訊息，不是致命錯誤）。
func (l *TicketLedger) Cancel(ticketID int) (*model.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.byID[ticketID]
	if !ok {
		return nil, fmt.Errorf("%w: ticket %d", apperrors.ErrTicketNotFound, ticketID)
	}
	if t.Status == model.TicketStatusCancelled {
		return nil, fmt.Errorf("%w: ticket %d", apperrors.ErrTicketAlreadyCancelled, ticketID)
	}
	t.Status = model.TicketStatusCancelled
	return t.Clone(), nil
}

// Reinstate 把剛取消的票券改回 Active。只給持久化失敗時的回滾用
func (l *TicketLedger) Reinstate(ticketID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.byID[ticketID]
	if !ok {
		return fmt.Errorf("%w: ticket %d", apperrors.ErrTicketNotFound, ticketID)
	}
	t.Status = model.TicketStatusActive
	return nil
}

// Discard 移除一張尚未落地的票券。只給中止的購買流程回滾用；
// 已持久化的票券永遠不刪。
func (l *TicketLedger) Discard(ticketID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byID[ticketID]; !ok {
		return fmt.Errorf("%w: ticket %d", apperrors.ErrTicketNotFound, ticketID)
	}
	delete(l.byID, ticketID)
	for i, t := range l.tickets {
		if t.ID == ticketID {
			l.tickets = append(l.tickets[:i], l.tickets[i+1:]...)
			break
		}
	}
	return nil
}

// ListByUser 依使用者列出票券（帳本順序），activeOnly 時只回 Active
func (l *TicketLedger) ListByUser(userID int, activeOnly bool) []*model.Ticket {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tickets := make([]*model.Ticket, 0)
	for _, t := range l.tickets {
		if t.UserID != userID {
			continue
		}
		if activeOnly && t.Status != model.TicketStatusActive {
			continue
		}
		tickets = append(tickets, t.Clone())
	}
	return tickets
}

func (l *TicketLedger) FindByID(ticketID int) (*model.Ticket, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	t, ok := l.byID[ticketID]
	if !ok {
		return nil, fmt.Errorf("%w: ticket %d", apperrors.ErrTicketNotFound, ticketID)
	}
	return t.Clone(), nil
}

// Snapshot 整本帳的深拷貝，持久化用
func (l *TicketLedger) Snapshot() []*model.Ticket {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tickets := make([]*model.Ticket, 0, len(l.tickets))
	for _, t := range l.tickets {
		tickets = append(tickets, t.Clone())
	}
	return tickets
}
