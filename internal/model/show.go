package model

import (
	"fmt"
	"sort"
	"time"
)

// ShowDate 演出日期，沿用資料檔的 day,month,year 表示法
type ShowDate struct {
	Day   int
	Month int
	Year  int
}

func ParseShowDate(s string) (ShowDate, error) {
	var d ShowDate
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &d.Day, &d.Month, &d.Year); err != nil {
		return ShowDate{}, fmt.Errorf("invalid show date %q: %w", s, err)
	}
	return d, nil
}

func (d ShowDate) String() string {
	return fmt.Sprintf("%d,%d,%d", d.Day, d.Month, d.Year)
}

// Format 顯示用格式，例如 "15 August, 2024"
func (d ShowDate) Format() string {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Format("02 January, 2006")
}

// OnOrAfter 演出日期是否在參考日（含當天）之後，只比較日期不比較時刻
func (d ShowDate) OnOrAfter(ref time.Time) bool {
	if d.Year != ref.Year() {
		return d.Year > ref.Year()
	}
	if d.Month != int(ref.Month()) {
		return d.Month > int(ref.Month())
	}
	return d.Day >= ref.Day()
}

// Show 演出模型。Booked 是已佔用座位號的集合，座位號為 1..Seats
type Show struct {
	ID     int
	Singer string
	Date   ShowDate
	Venue  string
	Type   string
	Price  int
	Seats  int
	Booked map[int]struct{}
}

func (s *Show) BookedCount() int {
	return len(s.Booked)
}

// AvailableSeats 可售座位數，永遠是計算值不落地
func (s *Show) AvailableSeats() int {
	return s.Seats - len(s.Booked)
}

func (s *Show) IsBooked(seat int) bool {
	_, ok := s.Booked[seat]
	return ok
}

// BookedSeats 回傳已佔用座位號（遞增排序）
func (s *Show) BookedSeats() []int {
	seats := make([]int, 0, len(s.Booked))
	for seat := range s.Booked {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	return seats
}

func (s *Show) Clone() *Show {
	booked := make(map[int]struct{}, len(s.Booked))
	for seat := range s.Booked {
		booked[seat] = struct{}{}
	}
	clone := *s
	clone.Booked = booked
	return &clone
}

// ShowResponse 演出響應
type ShowResponse struct {
	ID             int    `json:"id"`
	Singer         string `json:"singer"`
	Date           string `json:"date"`
	Venue          string `json:"venue"`
	Type           string `json:"type"`
	Price          int    `json:"price"`
	Seats          int    `json:"seats"`
	AvailableSeats int    `json:"available_seats"`
	BookedSeats    []int  `json:"booked_seats"`
}
