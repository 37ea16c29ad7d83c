package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tirthomj/Ticket-Management-system/internal/model"
)

type StoreMock struct {
	mock.Mock
}

func NewStoreMock() *StoreMock {
	return &StoreMock{}
}

func (m *StoreMock) LoadShows(ctx context.Context) ([]*model.Show, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Show), args.Error(1)
}

func (m *StoreMock) SaveShows(ctx context.Context, shows []*model.Show) error {
	args := m.Called(ctx, shows)
	return args.Error(0)
}

func (m *StoreMock) LoadTickets(ctx context.Context) ([]*model.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *StoreMock) SaveTickets(ctx context.Context, tickets []*model.Ticket) error {
	args := m.Called(ctx, tickets)
	return args.Error(0)
}

func (m *StoreMock) LoadUsers(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *StoreMock) SaveUsers(ctx context.Context, users []*model.User) error {
	args := m.Called(ctx, users)
	return args.Error(0)
}
