package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tirthomj/Ticket-Management-system/internal/cache"
	"github.com/tirthomj/Ticket-Management-system/internal/idgen"
	"github.com/tirthomj/Ticket-Management-system/internal/ledger"
	"github.com/tirthomj/Ticket-Management-system/internal/model"
	"github.com/tirthomj/Ticket-Management-system/internal/queue"
	"github.com/tirthomj/Ticket-Management-system/internal/storage"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
	"github.com/tirthomj/Ticket-Management-system/pkg/logger"
)

type BookingService interface {
	// ListUpcomingShows 參考日（含當天）之後的演出
	ListUpcomingShows(ctx context.Context, ref time.Time) ([]*model.Show, error)
	GetShow(ctx context.Context, showID int) (*model.Show, error)
	AddShow(ctx context.Context, show *model.Show) (*model.Show, error)
	// Purchase 一次購買一批座位：全部成功或全部不動
	Purchase(ctx context.Context, req model.PurchaseRequest) (*model.PurchaseResult, error)
	// Cancel 取消票券並釋放座位；重複取消回報 ErrTicketAlreadyCancelled
	Cancel(ctx context.Context, ticketID int) (*model.Ticket, error)
	GetTicket(ctx context.Context, ticketID int) (*model.Ticket, error)
	ListUserTickets(ctx context.Context, userID int, activeOnly bool) ([]*model.Ticket, error)
}

type BookingServiceImpl struct {
	// mu 讓購買與取消整段序列化：檢查、佔位、開票、落地是一個不可分割的單位
	mu            sync.Mutex
	shows         *ledger.ShowLedger
	tickets       *ledger.TicketLedger
	store         storage.Store
	idgen         *idgen.Generator
	seatInventory cache.RedisSeatInventoryManager // 可為 nil：單實例部署不需要
	eventQueue    queue.BookingQueue              // 可為 nil：事件流是通知用途
}

func NewBookingService(
	shows *ledger.ShowLedger,
	tickets *ledger.TicketLedger,
	store storage.Store,
	gen *idgen.Generator,
	seatInventory cache.RedisSeatInventoryManager,
	eventQueue queue.BookingQueue,
) BookingService {
	return &BookingServiceImpl{
		shows:         shows,
		tickets:       tickets,
		store:         store,
		idgen:         gen,
		seatInventory: seatInventory,
		eventQueue:    eventQueue,
	}
}

func (s *BookingServiceImpl) ListUpcomingShows(ctx context.Context, ref time.Time) ([]*model.Show, error) {
	return s.shows.ListUpcoming(ref), nil
}

func (s *BookingServiceImpl) GetShow(ctx context.Context, showID int) (*model.Show, error) {
	return s.shows.Get(showID)
}

func (s *BookingServiceImpl) AddShow(ctx context.Context, show *model.Show) (*model.Show, error) {
	if show.Seats < 1 || show.Price < 0 {
		return nil, apperrors.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.shows.AddShow(show)
	if err := s.store.SaveShows(ctx, s.shows.Snapshot()); err != nil {
		_ = s.shows.RemoveShow(created.ID)
		return nil, err
	}

	if s.seatInventory != nil {
		if err := s.seatInventory.WarmUpShow(ctx, created.ID, created.Seats, created.BookedSeats()); err != nil {
			logger.WithComponent("service").Warn("seat inventory warm-up failed",
				zap.Int("show_id", created.ID), zap.Error(err))
		}
	}
	return created, nil
}

func (s *BookingServiceImpl) Purchase(ctx context.Context, req model.PurchaseRequest) (*model.PurchaseResult, error) {
	if len(req.SeatNumbers) == 0 {
		return nil, apperrors.ErrInvalidInput
	}
	// 使用者 ID 從 0 起算，只有負值才算無效
	if req.UserID < 0 {
		return nil, fmt.Errorf("%w: user %d", apperrors.ErrInvalidInput, req.UserID)
	}

	// 1. 請求內部不得重複選同一個座位
	seen := make(map[int]struct{}, len(req.SeatNumbers))
	for _, seat := range req.SeatNumbers {
		if _, dup := seen[seat]; dup {
			return nil, fmt.Errorf("%w: seat %d", apperrors.ErrDuplicateSeatInRequest, seat)
		}
		seen[seat] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	show, err := s.shows.Get(req.ShowID)
	if err != nil {
		return nil, err
	}

	// 2. 全部座位先驗過一遍，任何一個被佔就整筆拒絕
	for _, seat := range req.SeatNumbers {
		booked, err := s.shows.IsSeatBooked(req.ShowID, seat)
		if err != nil {
			return nil, err
		}
		if booked {
			return nil, fmt.Errorf("%w: seat %d", apperrors.ErrSeatAlreadyBooked, seat)
		}
	}

	// 多實例部署時先過分散式佔位表；之後任何失敗都要歸還
	if s.seatInventory != nil {
		if err := s.seatInventory.ClaimSeats(ctx, req.ShowID, req.SeatNumbers); err != nil {
			return nil, err
		}
	}

	// 3. 整筆購買共用一個交易編號
	transactionNumber := s.idgen.TransactionNumber()

	// 4. 依請求順序逐一佔位開票，失敗就全部回滾
	claimed := make([]int, 0, len(req.SeatNumbers))
	issued := make([]*model.Ticket, 0, len(req.SeatNumbers))
	rollback := func() {
		for _, t := range issued {
			_ = s.tickets.Discard(t.ID)
		}
		for _, seat := range claimed {
			_ = s.shows.ReleaseSeat(req.ShowID, seat)
		}
		if s.seatInventory != nil {
			// 歸還一定要執行，不跟隨已取消的請求 context
			if err := s.seatInventory.RollbackSeats(context.Background(), req.ShowID, req.SeatNumbers); err != nil {
				logger.WithComponent("service").Error("seat inventory rollback failed",
					zap.Int("show_id", req.ShowID), zap.Error(err))
			}
		}
	}

	for _, seat := range req.SeatNumbers {
		if err := s.shows.ClaimSeat(req.ShowID, seat); err != nil {
			rollback()
			return nil, err
		}
		claimed = append(claimed, seat)
		t := s.tickets.Issue(req.UserID, req.ShowID, seat,
			s.idgen.TicketNumber(), req.PaymentMethod, req.PaymentAccount, transactionNumber)
		issued = append(issued, t)
	}

	// 帳本落地完成前，這筆購買不算成立
	if err := s.persist(ctx); err != nil {
		rollback()
		s.restoreStorage(ctx)
		return nil, err
	}

	s.publishTicketEvents(ctx, queue.EventTicketIssued, issued)

	// 5. 總價用演出單價乘票數算出來，不落地
	return &model.PurchaseResult{
		Tickets:           issued,
		TransactionNumber: transactionNumber,
		TotalCost:         show.Price * len(req.SeatNumbers),
	}, nil
}

func (s *BookingServiceImpl) Cancel(ctx context.Context, ticketID int) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.tickets.Cancel(ticketID)
	if err != nil {
		return nil, err
	}

	if err := s.shows.ReleaseSeat(t.ShowID, t.SeatNumber); err != nil {
		// 已開出的票指向不存在的演出：帳本內部不一致，不是使用者輸入問題
		_ = s.tickets.Reinstate(t.ID)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternalServerError, err)
	}

	if err := s.persist(ctx); err != nil {
		_ = s.shows.ClaimSeat(t.ShowID, t.SeatNumber)
		_ = s.tickets.Reinstate(t.ID)
		s.restoreStorage(ctx)
		return nil, err
	}

	if s.seatInventory != nil {
		if err := s.seatInventory.ReleaseSeat(ctx, t.ShowID, t.SeatNumber); err != nil {
			logger.WithComponent("service").Warn("seat inventory release failed",
				zap.Int("show_id", t.ShowID), zap.Int("seat_number", t.SeatNumber), zap.Error(err))
		}
	}

	s.publishTicketEvents(ctx, queue.EventTicketCancelled, []*model.Ticket{t})
	return t, nil
}

func (s *BookingServiceImpl) GetTicket(ctx context.Context, ticketID int) (*model.Ticket, error) {
	return s.tickets.FindByID(ticketID)
}

func (s *BookingServiceImpl) ListUserTickets(ctx context.Context, userID int, activeOnly bool) ([]*model.Ticket, error) {
	return s.tickets.ListByUser(userID, activeOnly), nil
}

// persist 兩本帳一起落地
func (s *BookingServiceImpl) persist(ctx context.Context) error {
	if err := s.store.SaveShows(ctx, s.shows.Snapshot()); err != nil {
		return err
	}
	if err := s.store.SaveTickets(ctx, s.tickets.Snapshot()); err != nil {
		return err
	}
	return nil
}

// restoreStorage 落地半途失敗、記憶體已回滾後，盡力把存檔恢復成回滾後的狀態。
// 存儲整個掛掉時這裡也會失敗，只能留下紀錄
func (s *BookingServiceImpl) restoreStorage(ctx context.Context) {
	if err := s.persist(ctx); err != nil {
		logger.WithComponent("service").Error("storage restore after failed persist", zap.Error(err))
	}
}

func (s *BookingServiceImpl) publishTicketEvents(ctx context.Context, eventType string, tickets []*model.Ticket) {
	if s.eventQueue == nil {
		return
	}
	now := time.Now().UTC()
	for _, t := range tickets {
		event := &queue.BookingEvent{
			Type:              eventType,
			TicketID:          t.ID,
			TicketNumber:      t.TicketNumber,
			UserID:            t.UserID,
			ShowID:            t.ShowID,
			SeatNumber:        t.SeatNumber,
			TransactionNumber: t.TransactionNumber,
			OccurredAt:        now,
		}
		// 事件只是通知，發佈失敗不影響已落地的訂位
		if err := s.eventQueue.PublishEvent(ctx, event); err != nil {
			logger.WithComponent("service").Warn("publish booking event failed",
				zap.String("type", eventType), zap.Int("ticket_id", t.ID), zap.Error(err))
		}
	}
}
