package model

// TicketStatus 票券狀態，落地時 1=Active、0=Cancelled
type TicketStatus int

const (
	TicketStatusCancelled TicketStatus = 0
	TicketStatusActive    TicketStatus = 1
)

// IsValid 驗證狀態是否有效
func (s TicketStatus) IsValid() bool {
	return s == TicketStatusActive || s == TicketStatusCancelled
}

func (s TicketStatus) String() string {
	if s == TicketStatusActive {
		return "active"
	}
	return "cancelled"
}

// Ticket 票券模型。TicketNumber 只是顯示用代碼，主鍵是 ID；
// TransactionNumber 同一筆購買的所有票券共用，僅供參考不保證唯一。
type Ticket struct {
	ID                int
	TicketNumber      string
	UserID            int
	ShowID            int
	SeatNumber        int
	PaymentMethod     string
	PaymentAccount    string
	TransactionNumber string
	Status            TicketStatus
}

func (t *Ticket) IsActive() bool {
	return t.Status == TicketStatusActive
}

func (t *Ticket) Clone() *Ticket {
	clone := *t
	return &clone
}

// PurchaseRequest 購票請求。ID 從 0 起算，不能用 required 擋零值
type PurchaseRequest struct {
	UserID         int    `json:"user_id" binding:"min=0"`
	ShowID         int    `json:"show_id" binding:"min=0"`
	SeatNumbers    []int  `json:"seat_numbers" binding:"required,min=1"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
	PaymentAccount string `json:"payment_account" binding:"required"`
}

// PurchaseResult 購票結果，TotalCost = show.Price * 票數
type PurchaseResult struct {
	Tickets           []*Ticket `json:"-"`
	TransactionNumber string    `json:"transaction_number"`
	TotalCost         int       `json:"total_cost"`
}

// TicketResponse 票券響應
type TicketResponse struct {
	ID                int    `json:"id"`
	TicketNumber      string `json:"ticket_number"`
	UserID            int    `json:"user_id"`
	ShowID            int    `json:"show_id"`
	SeatNumber        int    `json:"seat_number"`
	PaymentMethod     string `json:"payment_method"`
	PaymentAccount    string `json:"payment_account"`
	TransactionNumber string `json:"transaction_number"`
	Status            string `json:"status"`
}
