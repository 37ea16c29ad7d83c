package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/tirthomj/Ticket-Management-system/internal/model"
	"github.com/tirthomj/Ticket-Management-system/internal/storage"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
)

// UserService 使用者註冊與登入。密碼沿 users 資料檔的格式以明文存放與比對，
// 這裡不做強化；重試輪迴屬於呼叫端，兩個方法都是一次性驗證。
type UserService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
}

type UserServiceImpl struct {
	mu     sync.Mutex
	users  []*model.User
	byName map[string]*model.User
	store  storage.Store
	nextID int
}

func NewUserService(users []*model.User, store storage.Store) UserService {
	s := &UserServiceImpl{
		byName: make(map[string]*model.User, len(users)),
		store:  store,
	}
	for _, u := range users {
		clone := u.Clone()
		s.users = append(s.users, clone)
		s.byName[clone.Username] = clone
		if clone.ID >= s.nextID {
			s.nextID = clone.ID + 1
		}
	}
	return s
}

func (s *UserServiceImpl) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[username]; exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUsernameTaken, username)
	}

	u := &model.User{
		ID:       s.nextID,
		Username: username,
		Password: password,
	}
	s.nextID++
	s.users = append(s.users, u)
	s.byName[u.Username] = u

	if err := s.store.SaveUsers(ctx, s.snapshotLocked()); err != nil {
		s.users = s.users[:len(s.users)-1]
		delete(s.byName, u.Username)
		s.nextID--
		return nil, err
	}
	return u.Clone(), nil
}

func (s *UserServiceImpl) Login(ctx context.Context, username, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byName[username]
	// 帳號不存在與密碼錯誤回同一個錯，不讓呼叫端枚舉帳號
	if !ok || u.Password != password {
		return nil, apperrors.ErrInvalidCredentials
	}
	return u.Clone(), nil
}

func (s *UserServiceImpl) snapshotLocked() []*model.User {
	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.Clone())
	}
	return users
}
