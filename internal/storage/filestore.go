package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tirthomj/Ticket-Management-system/config"
	"github.com/tirthomj/Ticket-Management-system/internal/model"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
)

// 每個資料檔的第一行是欄位名，載入時跳過、存檔時原樣寫回
const (
	showsHeader   = "id|singer|date|venue|type|price|seats|booked"
	ticketsHeader = "id|ticket_number|user_id|show_id|seat_number|payment_method|payment_account|transaction_number|status"
	usersHeader   = "id|username|password"
)

// FileStore 以管線分隔的純文字檔實作 Store。
// 文字欄位內的管線字元沒有跳脫規則，屬於這個格式已知的邊界含糊處。
// 存檔採先寫暫存檔再 rename，讓寫入中途失敗時舊檔仍然有效。
type FileStore struct {
	showsPath   string
	ticketsPath string
	usersPath   string
}

func NewFileStore(cfg config.FileStoreConfig) *FileStore {
	return &FileStore{
		showsPath:   cfg.ShowsPath,
		ticketsPath: cfg.TicketsPath,
		usersPath:   cfg.UsersPath,
	}
}

func (s *FileStore) LoadShows(ctx context.Context) ([]*model.Show, error) {
	lines, err := readRecordLines(s.showsPath)
	if err != nil {
		return nil, err
	}
	shows := make([]*model.Show, 0, len(lines))
	for i, line := range lines {
		show, err := parseShowLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", apperrors.ErrStorageUnavailable, s.showsPath, i+2, err)
		}
		shows = append(shows, show)
	}
	return shows, nil
}

func (s *FileStore) SaveShows(ctx context.Context, shows []*model.Show) error {
	var b strings.Builder
	b.WriteString(showsHeader)
	b.WriteByte('\n')
	for _, show := range shows {
		fmt.Fprintf(&b, "%d|%s|%s|%s|%s|%d|%d|%s\n",
			show.ID, show.Singer, show.Date.String(), show.Venue, show.Type,
			show.Price, show.Seats, formatBookedSet(show))
	}
	return writeFileAtomic(s.showsPath, b.String())
}

func (s *FileStore) LoadTickets(ctx context.Context) ([]*model.Ticket, error) {
	lines, err := readRecordLines(s.ticketsPath)
	if err != nil {
		return nil, err
	}
	tickets := make([]*model.Ticket, 0, len(lines))
	for i, line := range lines {
		t, err := parseTicketLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", apperrors.ErrStorageUnavailable, s.ticketsPath, i+2, err)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (s *FileStore) SaveTickets(ctx context.Context, tickets []*model.Ticket) error {
	var b strings.Builder
	b.WriteString(ticketsHeader)
	b.WriteByte('\n')
	for _, t := range tickets {
		fmt.Fprintf(&b, "%d|%s|%d|%d|%d|%s|%s|%s|%d\n",
			t.ID, t.TicketNumber, t.UserID, t.ShowID, t.SeatNumber,
			t.PaymentMethod, t.PaymentAccount, t.TransactionNumber, int(t.Status))
	}
	return writeFileAtomic(s.ticketsPath, b.String())
}

func (s *FileStore) LoadUsers(ctx context.Context) ([]*model.User, error) {
	lines, err := readRecordLines(s.usersPath)
	if err != nil {
		return nil, err
	}
	users := make([]*model.User, 0, len(lines))
	for i, line := range lines {
		fields := strings.Split(line, "|")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: %s line %d: expected 3 fields, got %d",
				apperrors.ErrStorageUnavailable, s.usersPath, i+2, len(fields))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: invalid id %q",
				apperrors.ErrStorageUnavailable, s.usersPath, i+2, fields[0])
		}
		users = append(users, &model.User{ID: id, Username: fields[1], Password: fields[2]})
	}
	return users, nil
}

func (s *FileStore) SaveUsers(ctx context.Context, users []*model.User) error {
	var b strings.Builder
	b.WriteString(usersHeader)
	b.WriteByte('\n')
	for _, u := range users {
		fmt.Fprintf(&b, "%d|%s|%s\n", u.ID, u.Username, u.Password)
	}
	return writeFileAtomic(s.usersPath, b.String())
}

// readRecordLines 讀取資料行（跳過第一行表頭）。檔案不存在視為空帳本
func readRecordLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	records := make([]string, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			continue // 表頭
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, line)
	}
	return records, nil
}

func parseShowLine(line string) (*model.Show, error) {
	fields := strings.Split(line, "|")
	if len(fields) != 8 {
		return nil, fmt.Errorf("expected 8 fields, got %d", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", fields[0])
	}
	date, err := model.ParseShowDate(fields[2])
	if err != nil {
		return nil, err
	}
	price, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", fields[5])
	}
	seats, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("invalid seats %q", fields[6])
	}
	booked, err := parseBookedSet(fields[7])
	if err != nil {
		return nil, err
	}
	return &model.Show{
		ID:     id,
		Singer: fields[1],
		Date:   date,
		Venue:  fields[3],
		Type:   fields[4],
		Price:  price,
		Seats:  seats,
		Booked: booked,
	}, nil
}

func parseTicketLine(line string) (*model.Ticket, error) {
	fields := strings.Split(line, "|")
	if len(fields) != 9 {
		return nil, fmt.Errorf("expected 9 fields, got %d", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", fields[0])
	}
	userID, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("invalid user_id %q", fields[2])
	}
	showID, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("invalid show_id %q", fields[3])
	}
	seatNumber, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("invalid seat_number %q", fields[4])
	}
	statusInt, err := strconv.Atoi(fields[8])
	if err != nil {
		return nil, fmt.Errorf("invalid status %q", fields[8])
	}
	status := model.TicketStatus(statusInt)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status %d", statusInt)
	}
	return &model.Ticket{
		ID:                id,
		TicketNumber:      fields[1],
		UserID:            userID,
		ShowID:            showID,
		SeatNumber:        seatNumber,
		PaymentMethod:     fields[5],
		PaymentAccount:    fields[6],
		TransactionNumber: fields[7],
		Status:            status,
	}, nil
}

// parseBookedSet 逗號分隔的座位號（順序不拘），空字串代表沒有座位被佔用
func parseBookedSet(s string) (map[int]struct{}, error) {
	booked := make(map[int]struct{})
	if s == "" {
		return booked, nil
	}
	for _, token := range strings.Split(s, ",") {
		seat, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, fmt.Errorf("invalid booked seat %q", token)
		}
		booked[seat] = struct{}{}
	}
	return booked, nil
}

func formatBookedSet(show *model.Show) string {
	seats := show.BookedSeats()
	tokens := make([]string, len(seats))
	for i, seat := range seats {
		tokens[i] = strconv.Itoa(seat)
	}
	return strings.Join(tokens, ",")
}

// writeFileAtomic 先寫同目錄下的暫存檔，成功後 rename 蓋過正式檔
func writeFileAtomic(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}
