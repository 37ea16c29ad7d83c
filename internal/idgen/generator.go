// Package idgen 產生票券代碼與交易編號。
// 兩種編號都只是顯示用標籤：票券的主鍵是整數 ID，交易編號僅供對帳參考，
// 不以這裡的輸出當唯一鍵（同秒加上隨機前綴相同時可能碰撞）。
package idgen

import (
	"math/rand"
	"sync"
	"time"
)

const (
	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func New() *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewWithClock 指定亂數種子與時鐘，測試用
func NewWithClock(seed int64, now func() time.Time) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

// TicketNumber 3 個大寫字母 + 5 個數字 + 1 個大寫字母
func (g *Generator) TicketNumber() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	code := make([]byte, 9)
	for i := 0; i < 3; i++ {
		code[i] = letters[g.rnd.Intn(len(letters))]
	}
	for i := 3; i < 8; i++ {
		code[i] = digits[g.rnd.Intn(len(digits))]
	}
	code[8] = letters[g.rnd.Intn(len(letters))]
	return string(code)
}

// TransactionNumber 3 個大寫字母或數字 + 當下時刻 HHMMSS
func (g *Generator) TransactionNumber() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	code := make([]byte, 3)
	for i := range code {
		n := g.rnd.Intn(36)
		if n < 10 {
			code[i] = digits[n]
		} else {
			code[i] = letters[n-10]
		}
	}
	return string(code) + g.now().Format("150405")
}
