package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tirthomj/Ticket-Management-system/internal/model"
	"github.com/tirthomj/Ticket-Management-system/internal/service"
	storageMocks "github.com/tirthomj/Ticket-Management-system/internal/storage/mocks"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := storageMocks.NewStoreMock()
		store.On("SaveUsers", mock.Anything, mock.Anything).Return(nil).Once()
		svc := service.NewUserService(nil, store)

		u, err := svc.Register(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, 0, u.ID)
		assert.Equal(t, "alice", u.Username)
		store.AssertExpectations(t)
	})

	t.Run("Failed - EmptyFields", func(t *testing.T) {
		store := storageMocks.NewStoreMock()
		svc := service.NewUserService(nil, store)

		_, err := svc.Register(ctx, "", "secret")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		_, err = svc.Register(ctx, "alice", "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		store.AssertNotCalled(t, "SaveUsers")
	})

	t.Run("Failed - UsernameTaken", func(t *testing.T) {
		store := storageMocks.NewStoreMock()
		svc := service.NewUserService([]*model.User{
			{ID: 0, Username: "alice", Password: "secret"},
		}, store)

		_, err := svc.Register(ctx, "alice", "other")
		assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
		store.AssertNotCalled(t, "SaveUsers")
	})

	t.Run("Failed - PersistRollsBack", func(t *testing.T) {
		store := storageMocks.NewStoreMock()
		store.On("SaveUsers", mock.Anything, mock.Anything).Return(apperrors.ErrStorageUnavailable).Once()
		svc := service.NewUserService(nil, store)

		_, err := svc.Register(ctx, "alice", "secret")
		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)

		// 回滾後同名可以再註冊，ID 重新使用
		store.On("SaveUsers", mock.Anything, mock.Anything).Return(nil).Once()
		u, err := svc.Register(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, 0, u.ID)
	})

	t.Run("ContinuesFromLoadedMaxID", func(t *testing.T) {
		store := storageMocks.NewStoreMock()
		store.On("SaveUsers", mock.Anything, mock.Anything).Return(nil).Once()
		svc := service.NewUserService([]*model.User{
			{ID: 3, Username: "carol", Password: "pw"},
		}, store)

		u, err := svc.Register(ctx, "dave", "pw")
		require.NoError(t, err)
		assert.Equal(t, 4, u.ID)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	store := storageMocks.NewStoreMock()
	svc := service.NewUserService([]*model.User{
		{ID: 0, Username: "alice", Password: "secret"},
	}, store)

	t.Run("Success", func(t *testing.T) {
		u, err := svc.Login(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, 0, u.ID)
	})

	t.Run("Failed - WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("Failed - UnknownUser", func(t *testing.T) {
		// 帳號不存在與密碼錯誤必須無法區分
		_, err := svc.Login(ctx, "mallory", "secret")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}
