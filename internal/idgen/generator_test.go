package idgen_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tirthomj/Ticket-Management-system/internal/idgen"
)

var (
	ticketNumberPattern      = regexp.MustCompile(`^[A-Z]{3}[0-9]{5}[A-Z]$`)
	transactionNumberPattern = regexp.MustCompile(`^[A-Z0-9]{3}[0-9]{6}$`)
)

func TestGenerator_TicketNumber(t *testing.T) {
	g := idgen.New()

	for i := 0; i < 100; i++ {
		code := g.TicketNumber()
		assert.Regexp(t, ticketNumberPattern, code)
	}
}

func TestGenerator_TransactionNumber(t *testing.T) {
	fixed := time.Date(2026, 8, 15, 10, 30, 45, 0, time.UTC)
	g := idgen.NewWithClock(1, func() time.Time { return fixed })

	code := g.TransactionNumber()

	assert.Regexp(t, transactionNumberPattern, code)
	// 後六碼是產生當下的 HHMMSS
	assert.Equal(t, "103045", code[3:])
}

func TestGenerator_DeterministicWithSeed(t *testing.T) {
	fixed := time.Date(2026, 8, 15, 10, 30, 45, 0, time.UTC)
	clock := func() time.Time { return fixed }

	a := idgen.NewWithClock(42, clock)
	b := idgen.NewWithClock(42, clock)

	assert.Equal(t, a.TicketNumber(), b.TicketNumber())
	assert.Equal(t, a.TransactionNumber(), b.TransactionNumber())
}
