package doctors

import (
	"context"
	"errors"
	"medibook-service/internal/app/models"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockDoctorRepository struct {
	mock.Mock
}

func (m *mockDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *mockDoctorRepository) FindAll(ctx context.Context, filter *models.DoctorFilter) ([]models.Doctor, int64, error) {
	args := m.Called(ctx, filter)
	doctors, _ := args.Get(0).([]models.Doctor)
	return doctors, args.Get(1).(int64), args.Error(2)
}

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

func TestDoctorCachedRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	doctor := &models.Doctor{ID: "d1", FullName: "Dr. House", ConsultationFee: 250000, IsAvailable: true}
	key := "doctor:cache:d1"
	ttl := time.Minute

	t.Run("Cache hit skips the database", func(t *testing.T) {
		next := new(mockDoctorRepository)
		redis := new(mockRedisRepository)
		raw, err := json.Marshal(doctor)
		require.NoError(t, err)
		redis.On("Get", ctx, key).Return(string(raw), nil)

		repo := NewDoctorCachedRepository(next, redis, ttl, zap.NewNop())
		found, err := repo.FindByID(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, doctor.FullName, found.FullName)
		assert.Equal(t, doctor.ConsultationFee, found.ConsultationFee)
		next.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Cache miss loads and stores", func(t *testing.T) {
		next := new(mockDoctorRepository)
		redis := new(mockRedisRepository)
		redis.On("Get", ctx, key).Return("", nil)
		next.On("FindByID", ctx, "d1").Return(doctor, nil)
		redis.On("Set", ctx, key, doctor, ttl).Return(nil)

		repo := NewDoctorCachedRepository(next, redis, ttl, zap.NewNop())
		found, err := repo.FindByID(ctx, "d1")
		require.NoError(t, err)
		assert.Same(t, doctor, found)
		redis.AssertExpectations(t)
		next.AssertExpectations(t)
	})

	t.Run("Redis outage falls through", func(t *testing.T) {
		next := new(mockDoctorRepository)
		redis := new(mockRedisRepository)
		redis.On("Get", ctx, key).Return("", errors.New("connection refused"))
		next.On("FindByID", ctx, "d1").Return(doctor, nil)
		redis.On("Set", ctx, key, doctor, ttl).Return(errors.New("connection refused"))

		repo := NewDoctorCachedRepository(next, redis, ttl, zap.NewNop())
		found, err := repo.FindByID(ctx, "d1")
		require.NoError(t, err)
		assert.Same(t, doctor, found)
	})

	t.Run("Missing doctor is not cached", func(t *testing.T) {
		next := new(mockDoctorRepository)
		redis := new(mockRedisRepository)
		redis.On("Get", ctx, key).Return("", nil)
		next.On("FindByID", ctx, "d1").Return(nil, nil)

		repo := NewDoctorCachedRepository(next, redis, ttl, zap.NewNop())
		found, err := repo.FindByID(ctx, "d1")
		require.NoError(t, err)
		assert.Nil(t, found)
		redis.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDoctorUsecase_GetDoctor(t *testing.T) {
	ctx := context.Background()
	next := new(mockDoctorRepository)
	next.On("FindByID", ctx, "missing").Return(nil, nil)
	next.On("FindByID", ctx, "d1").Return(&models.Doctor{ID: "d1"}, nil)

	uc := NewDoctorUsecase(next, zap.NewNop())

	found, err := uc.GetDoctor(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "d1", found.ID)

	_, err = uc.GetDoctor(ctx, "missing")
	assert.Error(t, err)
}
