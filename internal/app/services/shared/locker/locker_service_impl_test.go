package locker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRedisRepository struct {
	mock.Mock
}

func (m *mockRedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *mockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *mockRedisRepository) CompareAndDelete(ctx context.Context, key string, value interface{}) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func TestLockService_TryLock(t *testing.T) {
	ctx := context.Background()
	const key = "lock:booking:doctor-1:2025-06-10:09:00"

	t.Run("acquired returns owner value", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("TrySetNX", ctx, key, mock.AnythingOfType("string"), 5*time.Second).Return(true, nil)

		acquired, value, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, key, 5*time.Second)
		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, value)
		repo.AssertExpectations(t)
	})

	t.Run("held by someone else", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("TrySetNX", ctx, key, mock.Anything, time.Second).Return(false, nil)

		acquired, value, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, key, time.Second)
		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, value)
	})

	t.Run("redis error", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("TrySetNX", ctx, key, mock.Anything, time.Second).Return(false, errors.New("connection refused"))

		acquired, _, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, key, time.Second)
		assert.Error(t, err)
		assert.False(t, acquired)
	})
}

func TestLockService_Unlock(t *testing.T) {
	ctx := context.Background()

	t.Run("released by owner", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("CompareAndDelete", ctx, "k", "owner").Return(true, nil)
		assert.NoError(t, NewLockService(repo, zap.NewNop()).Unlock(ctx, "k", "owner"))
		repo.AssertExpectations(t)
	})

	t.Run("expired lock is not an error", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("CompareAndDelete", ctx, "k", "stale").Return(false, nil)
		assert.NoError(t, NewLockService(repo, zap.NewNop()).Unlock(ctx, "k", "stale"))
	})

	t.Run("redis error", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("CompareAndDelete", ctx, "k", "owner").Return(false, errors.New("timeout"))
		assert.Error(t, NewLockService(repo, zap.NewNop()).Unlock(ctx, "k", "owner"))
	})
}
