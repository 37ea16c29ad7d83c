package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
)

// RedisSeatInventoryManager 分散式座位佔用表。
// 多實例部署時擋在本地帳本前面，讓「檢查再佔位」跨實例也是原子的；
// 單實例部署不設定它，核心行為不變。
type RedisSeatInventoryManager interface {
	// 預熱：把演出的容量與已佔用座位載入 Redis
	WarmUpShow(ctx context.Context, showID int, seats int, booked []int) error
	// 佔位：整批座位原子地檢查並佔用 (使用Lua腳本確保原子性)
	ClaimSeats(ctx context.Context, showID int, seatNumbers []int) error
	// 釋放：取消票券時移除單一座位
	ReleaseSeat(ctx context.Context, showID int, seatNumber int) error
	// 回滾：購買中止時整批歸還
	RollbackSeats(ctx context.Context, showID int, seatNumbers []int) error
	// 查詢：目前佔用的座位數
	BookedCount(ctx context.Context, showID int) (int, error)
}

type RedisSeatInventoryManagerImpl struct {
	client *redis.Client
}

func NewRedisSeatInventoryManager(client *redis.Client) RedisSeatInventoryManager {
	return &RedisSeatInventoryManagerImpl{
		client: client,
	}
}

// 已佔用座位集合的 key
func (m *RedisSeatInventoryManagerImpl) getSeatsKey(showID int) string {
	return fmt.Sprintf("show:%d:booked", showID)
}

// 座位容量的 key
func (m *RedisSeatInventoryManagerImpl) getCapacityKey(showID int) string {
	return fmt.Sprintf("show:%d:capacity", showID)
}

func (m *RedisSeatInventoryManagerImpl) WarmUpShow(ctx context.Context, showID int, seats int, booked []int) error {
	seatsKey := m.getSeatsKey(showID)
	capacityKey := m.getCapacityKey(showID)

	_, err := m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, capacityKey, seats, 0)
		pipe.Del(ctx, seatsKey)
		if len(booked) > 0 {
			members := make([]interface{}, len(booked))
			for i, seat := range booked {
				members[i] = seat
			}
			pipe.SAdd(ctx, seatsKey, members...)
		}
		return nil
	})
	return err
}

/*
整批佔位 (使用Lua腳本確保原子性)
1. 確認演出已預熱
2. 逐一檢查座位範圍與佔用狀態
3. 全部可用才一次佔下，任何一個衝突就整批不動
*/
func (m *RedisSeatInventoryManagerImpl) ClaimSeats(ctx context.Context, showID int, seatNumbers []int) error {
	seatsKey := m.getSeatsKey(showID)
	capacityKey := m.getCapacityKey(showID)

	script := `
		-- 1. 取得參數
		local seats_key = KEYS[1]
		local capacity_key = KEYS[2]

		-- 2. 確認演出已預熱
		local capacity = tonumber(redis.call('GET', capacity_key))
		if not capacity then
			return {-3, 0} -- 錯誤：演出未預熱
		end

		-- 3. 逐一檢查
		for i = 1, #ARGV do
			local seat = tonumber(ARGV[i])
			if seat < 1 or seat > capacity then
				return {-2, seat} -- 錯誤：座位號超出範圍
			end
			if redis.call('SISMEMBER', seats_key, seat) == 1 then
				return {-1, seat} -- 錯誤：座位已被佔用
			end
		end

		-- 4. 整批佔下
		for i = 1, #ARGV do
			redis.call('SADD', seats_key, ARGV[i])
		end

		return {1, 0} -- 佔位成功
	`

	args := make([]interface{}, len(seatNumbers))
	for i, seat := range seatNumbers {
		args[i] = seat
	}

	result, err := m.client.Eval(ctx, script, []string{seatsKey, capacityKey}, args...).Result()
	if err != nil {
		return err
	}

	resSlice := result.([]interface{})
	code := resSlice[0].(int64)
	seat := resSlice[1].(int64)

	switch code {
	case 1:
		return nil
	case -1:
		return fmt.Errorf("%w: seat %d", apperrors.ErrSeatAlreadyBooked, seat)
	case -2:
		return fmt.Errorf("%w: seat %d", apperrors.ErrSeatOutOfRange, seat)
	case -3:
		return fmt.Errorf("%w: show %d", apperrors.ErrShowNotFound, showID)
	default:
		return errors.New("unexpected result")
	}
}

func (m *RedisSeatInventoryManagerImpl) ReleaseSeat(ctx context.Context, showID int, seatNumber int) error {
	return m.client.SRem(ctx, m.getSeatsKey(showID), seatNumber).Err()
}

func (m *RedisSeatInventoryManagerImpl) RollbackSeats(ctx context.Context, showID int, seatNumbers []int) error {
	if len(seatNumbers) == 0 {
		return nil
	}
	members := make([]interface{}, len(seatNumbers))
	for i, seat := range seatNumbers {
		members[i] = seat
	}
	return m.client.SRem(ctx, m.getSeatsKey(showID), members...).Err()
}

func (m *RedisSeatInventoryManagerImpl) BookedCount(ctx context.Context, showID int) (int, error) {
	n, err := m.client.SCard(ctx, m.getSeatsKey(showID)).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
