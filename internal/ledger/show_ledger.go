package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/tirthomj/Ticket-Management-system/internal/model"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
)

// ShowLedger 演出帳本：演出紀錄與座位佔用集合的唯一持有者。
// 所有讀取都回傳副本，呼叫端拿不到內部狀態的引用。
type ShowLedger struct {
	mu     sync.RWMutex
	shows  []*model.Show // 帳本順序
	byID   map[int]*model.Show
	nextID int
}

func NewShowLedger(shows []*model.Show) *ShowLedger {
	l := &ShowLedger{
		byID: make(map[int]*model.Show, len(shows)),
	}
	for _, s := range shows {
		clone := s.Clone()
		if clone.Booked == nil {
			clone.Booked = make(map[int]struct{})
		}
		l.shows = append(l.shows, clone)
		l.byID[clone.ID] = clone
		if clone.ID >= l.nextID {
			l.nextID = clone.ID + 1
		}
	}
	return l
}

// AddShow 新增演出並配發 ID，回傳寫入後的副本
func (l *ShowLedger) AddShow(show *model.Show) *model.Show {
	l.mu.Lock()
	defer l.mu.Unlock()

	clone := show.Clone()
	if clone.Booked == nil {
		clone.Booked = make(map[int]struct{})
	}
	clone.ID = l.nextID
	l.nextID++
	l.shows = append(l.shows, clone)
	l.byID[clone.ID] = clone
	return clone.Clone()
}

// RemoveShow 移除一場尚未落地的演出。只給失敗的持久化回滾用；
// 已落地的演出永遠不刪。
func (l *ShowLedger) RemoveShow(showID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byID[showID]; !ok {
		return fmt.Errorf("%w: show %d", apperrors.ErrShowNotFound, showID)
	}
	delete(l.byID, showID)
	for i, s := range l.shows {
		if s.ID == showID {
			l.shows = append(l.shows[:i], l.shows[i+1:]...)
			break
		}
	}
	return nil
}

// Get 依 ID 取得演出副本
func (l *ShowLedger) Get(showID int) (*model.Show, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	show, ok := l.byID[showID]
	if !ok {
		return nil, fmt.Errorf("%w: show %d", apperrors.ErrShowNotFound, showID)
	}
	return show.Clone(), nil
}

// ListUpcoming 回傳日期在參考日（含當天）之後的演出，維持帳本順序
func (l *ShowLedger) ListUpcoming(ref time.Time) []*model.Show {
	l.mu.RLock()
	defer l.mu.RUnlock()

	upcoming := make([]*model.Show, 0)
	for _, show := range l.shows {
		if show.Date.OnOrAfter(ref) {
			upcoming = append(upcoming, show.Clone())
		}
	}
	return upcoming
}

// ClaimSeat 佔用一個座位。座位號必須落在 [1, seats] 且尚未被佔用
func (l *ShowLedger) ClaimSeat(showID, seatNumber int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	show, ok := l.byID[showID]
	if !ok {
		return fmt.Errorf("%w: show %d", apperrors.ErrShowNotFound, showID)
	}
	if seatNumber < 1 || seatNumber > show.Seats {
		return fmt.Errorf("%w: seat %d (show %d has seats 1..%d)",
			apperrors.ErrSeatOutOfRange, seatNumber, showID, show.Seats)
	}
	if _, booked := show.Booked[seatNumber]; booked {
		return fmt.Errorf("%w: seat %d", apperrors.ErrSeatAlreadyBooked, seatNumber)
	}
	show.Booked[seatNumber] = struct{}{}
	return nil
}

// ReleaseSeat 釋放座位。座位原本就沒被佔用時視為 no-op，不是錯誤
func (l *ShowLedger) ReleaseSeat(showID, seatNumber int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	show, ok := l.byID[showID]
	if !ok {
		return fmt.Errorf("%w: show %d", apperrors.ErrShowNotFound, showID)
	}
	delete(show.Booked, seatNumber)
	return nil
}

func (l *ShowLedger) IsSeatBooked(showID, seatNumber int) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	show, ok := l.byID[showID]
	if !ok {
		return false, fmt.Errorf("%w: show %d", apperrors.ErrShowNotFound, showID)
	}
	_, booked := show.Booked[seatNumber]
	return booked, nil
}

// Snapshot 整本帳的深拷貝，持久化用
func (l *ShowLedger) Snapshot() []*model.Show {
	l.mu.RLock()
	defer l.mu.RUnlock()

	shows := make([]*model.Show, 0, len(l.shows))
	for _, show := range l.shows {
		shows = append(shows, show.Clone())
	}
	return shows
}
