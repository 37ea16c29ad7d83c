package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tirthomj/Ticket-Management-system/internal/ledger"
	"github.com/tirthomj/Ticket-Management-system/internal/model"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
)

func issueTestTicket(l *ledger.TicketLedger, userID, showID, seat int) *model.Ticket {
	return l.Issue(userID, showID, seat, "ABC12345D", "card", "4111", "X7K103045")
}

func TestTicketLedger_Issue(t *testing.T) {
	t.Run("FirstTicketGetsIDZero", func(t *testing.T) {
		l := ledger.NewTicketLedger(nil)

		first := issueTestTicket(l, 1, 1, 3)
		second := issueTestTicket(l, 1, 1, 4)

		assert.Equal(t, 0, first.ID)
		assert.Equal(t, 1, second.ID)
		assert.Equal(t, model.TicketStatusActive, first.Status)
	})

	t.Run("ContinuesFromLoadedMaxID", func(t *testing.T) {
		l := ledger.NewTicketLedger([]*model.Ticket{
			{ID: 4, UserID: 1, ShowID: 1, SeatNumber: 1, Status: model.TicketStatusActive},
		})

		issued := issueTestTicket(l, 2, 1, 2)
		assert.Equal(t, 5, issued.ID)
	})
}

func TestTicketLedger_Cancel(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		l := ledger.NewTicketLedger(nil)
		issued := issueTestTicket(l, 1, 1, 3)

		cancelled, err := l.Cancel(issued.ID)
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusCancelled, cancelled.Status)
		assert.Equal(t, issued.SeatNumber, cancelled.SeatNumber)
	})

	t.Run("NotFound", func(t *testing.T) {
		l := ledger.NewTicketLedger(nil)
		_, err := l.Cancel(42)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})

	t.Run("AlreadyCancelled", func(t *testing.T) {
		l := ledger.NewTicketLedger(nil)
		issued := issueTestTicket(l, 1, 1, 3)

		_, err := l.Cancel(issued.ID)
		require.NoError(t, err)

		// 重複取消是可恢復錯誤，狀態保持 Cancelled
		_, err = l.Cancel(issued.ID)
		assert.ErrorIs(t, err, apperrors.ErrTicketAlreadyCancelled)

		stored, err := l.FindByID(issued.ID)
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusCancelled, stored.Status)
	})
}

func TestTicketLedger_Reinstate(t *testing.T) {
	l := ledger.NewTicketLedger(nil)
	issued := issueTestTicket(l, 1, 1, 3)

	_, err := l.Cancel(issued.ID)
	require.NoError(t, err)
	require.NoError(t, l.Reinstate(issued.ID))

	stored, err := l.FindByID(issued.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusActive, stored.Status)
}

func TestTicketLedger_Discard(t *testing.T) {
	l := ledger.NewTicketLedger(nil)
	issued := issueTestTicket(l, 1, 1, 3)

	require.NoError(t, l.Discard(issued.ID))

	_, err := l.FindByID(issued.ID)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	assert.Empty(t, l.Snapshot())
}

func TestTicketLedger_ListByUser(t *testing.T) {
	l := ledger.NewTicketLedger(nil)
	first := issueTestTicket(l, 1, 1, 1)
	issueTestTicket(l, 2, 1, 2)
	second := issueTestTicket(l, 1, 1, 3)

	_, err := l.Cancel(second.ID)
	require.NoError(t, err)

	t.Run("AllTickets", func(t *testing.T) {
		tickets := l.ListByUser(1, false)
		require.Len(t, tickets, 2)
		assert.Equal(t, first.ID, tickets[0].ID)
		assert.Equal(t, second.ID, tickets[1].ID)
	})

	t.Run("ActiveOnly", func(t *testing.T) {
		tickets := l.ListByUser(1, true)
		require.Len(t, tickets, 1)
		assert.Equal(t, first.ID, tickets[0].ID)
	})

	t.Run("UnknownUserReturnsEmpty", func(t *testing.T) {
		assert.Empty(t, l.ListByUser(99, false))
	})
}
