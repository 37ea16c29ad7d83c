package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tirthomj/Ticket-Management-system/internal/model"
)

type BookingServiceMock struct {
	mock.Mock
}

func NewBookingServiceMock() *BookingServiceMock {
	return &BookingServiceMock{}
}

func (m *BookingServiceMock) ListUpcomingShows(ctx context.Context, ref time.Time) ([]*model.Show, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Show), args.Error(1)
}

func (m *BookingServiceMock) GetShow(ctx context.Context, showID int) (*model.Show, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Show), args.Error(1)
}

func (m *BookingServiceMock) AddShow(ctx context.Context, show *model.Show) (*model.Show, error) {
	args := m.Called(ctx, show)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Show), args.Error(1)
}

func (m *BookingServiceMock) Purchase(ctx context.Context, req model.PurchaseRequest) (*model.PurchaseResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseResult), args.Error(1)
}

func (m *BookingServiceMock) Cancel(ctx context.Context, ticketID int) (*model.Ticket, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *BookingServiceMock) GetTicket(ctx context.Context, ticketID int) (*model.Ticket, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *BookingServiceMock) ListUserTickets(ctx context.Context, userID int, activeOnly bool) ([]*model.Ticket, error) {
	args := m.Called(ctx, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}
