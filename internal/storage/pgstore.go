package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tirthomj/Ticket-Management-system/internal/model"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
)

// PGStore 以 Postgres 實作 Store。帳本語意跟檔案後端一致：
// 每次 Save 在單一交易內重寫整張表，全有或全無。
// date 與 booked 沿用資料檔的文字表示法，兩種後端可互相匯入。
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) LoadShows(ctx context.Context) ([]*model.Show, error) {
	query := `
		SELECT id, singer, show_date, venue, show_type, price, seats, booked
		FROM shows
		ORDER BY id
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	shows := make([]*model.Show, 0)
	for rows.Next() {
		var (
			show    model.Show
			dateStr string
			booked  string
		)
		err := rows.Scan(
			&show.ID,
			&show.Singer,
			&dateStr,
			&show.Venue,
			&show.Type,
			&show.Price,
			&show.Seats,
			&booked,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
		}
		if show.Date, err = model.ParseShowDate(dateStr); err != nil {
			return nil, fmt.Errorf("%w: show %d: %v", apperrors.ErrStorageUnavailable, show.ID, err)
		}
		if show.Booked, err = parseBookedSet(booked); err != nil {
			return nil, fmt.Errorf("%w: show %d: %v", apperrors.ErrStorageUnavailable, show.ID, err)
		}
		shows = append(shows, &show)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	return shows, nil
}

func (s *PGStore) SaveShows(ctx context.Context, shows []*model.Show) error {
	return s.rewrite(ctx, "shows", func(tx pgx.Tx) error {
		query := `
			INSERT INTO shows (id, singer, show_date, venue, show_type, price, seats, booked)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		for _, show := range shows {
			_, err := tx.Exec(ctx, query,
				show.ID, show.Singer, show.Date.String(), show.Venue, show.Type,
				show.Price, show.Seats, formatBookedSet(show),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PGStore) LoadTickets(ctx context.Context) ([]*model.Ticket, error) {
	query := `
		SELECT id, ticket_number, user_id, show_id, seat_number,
		       payment_method, payment_account, transaction_number, status
		FROM tickets
		ORDER BY id
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)
	for rows.Next() {
		var (
			t      model.Ticket
			status int
		)
		err := rows.Scan(
			&t.ID,
			&t.TicketNumber,
			&t.UserID,
			&t.ShowID,
			&t.SeatNumber,
			&t.PaymentMethod,
			&t.PaymentAccount,
			&t.TransactionNumber,
			&status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
		}
		t.Status = model.TicketStatus(status)
		tickets = append(tickets, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	return tickets, nil
}

func (s *PGStore) SaveTickets(ctx context.Context, tickets []*model.Ticket) error {
	return s.rewrite(ctx, "tickets", func(tx pgx.Tx) error {
		query := `
			INSERT INTO tickets (id, ticket_number, user_id, show_id, seat_number,
			                     payment_method, payment_account, transaction_number, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		for _, t := range tickets {
			_, err := tx.Exec(ctx, query,
				t.ID, t.TicketNumber, t.UserID, t.ShowID, t.SeatNumber,
				t.PaymentMethod, t.PaymentAccount, t.TransactionNumber, int(t.Status),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PGStore) LoadUsers(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT id, username, password
		FROM users
		ORDER BY id
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	return users, nil
}

func (s *PGStore) SaveUsers(ctx context.Context, users []*model.User) error {
	return s.rewrite(ctx, "users", func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (id, username, password)
			VALUES ($1, $2, $3)
		`
		for _, u := range users {
			if _, err := tx.Exec(ctx, query, u.ID, u.Username, u.Password); err != nil {
				return err
			}
		}
		return nil
	})
}

// rewrite 在單一交易內清空資料表並重新插入，失敗時整筆回滾
func (s *PGStore) rewrite(ctx context.Context, table string, insert func(pgx.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	if err := insert(tx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}
