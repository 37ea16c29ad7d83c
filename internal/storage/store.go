package storage

import (
	"context"

	"github.com/tirthomj/Ticket-Management-system/internal/model"
)

// Store 帳本持久化端口。核心不直接開檔案或連線，
// 載入整本、存回整本，實作負責讓每次 Save 全有或全無。
type Store interface {
	LoadShows(ctx context.Context) ([]*model.Show, error)
	SaveShows(ctx context.Context, shows []*model.Show) error
	LoadTickets(ctx context.Context) ([]*model.Ticket, error)
	SaveTickets(ctx context.Context, tickets []*model.Ticket) error
	LoadUsers(ctx context.Context) ([]*model.User, error)
	SaveUsers(ctx context.Context, users []*model.User) error
}
