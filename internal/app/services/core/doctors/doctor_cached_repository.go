package doctors

import (
	"context"
	"fmt"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// doctorCachedRepository reads single doctors through Redis. Cache failures
// fall through to the wrapped repository.
type doctorCachedRepository struct {
	next            contracts.DoctorRepository
	RedisRepository contracts.RedisRepository
	TTL             time.Duration
	Log             *zap.Logger
}

func NewDoctorCachedRepository(next contracts.DoctorRepository, redisRepository contracts.RedisRepository, ttl time.Duration, logger *zap.Logger) contracts.DoctorRepository {
	return &doctorCachedRepository{
		next:            next,
		RedisRepository: redisRepository,
		TTL:             ttl,
		Log:             logger,
	}
}

func (r *doctorCachedRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	key := fmt.Sprintf(constvars.DoctorCacheKeyFormat, doctorID)

	cached, err := r.RedisRepository.Get(ctx, key)
	if err != nil {
		r.Log.Warn("doctorCachedRepository.FindByID cache read failed",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
	} else if cached != "" {
		var doctor models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctor); err == nil {
			return &doctor, nil
		}
		r.Log.Warn("doctorCachedRepository.FindByID cache entry undecodable",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
		)
	}

	doctor, err := r.next.FindByID(ctx, doctorID)
	if err != nil || doctor == nil {
		return doctor, err
	}

	if err := r.RedisRepository.Set(ctx, key, doctor, r.TTL); err != nil {
		r.Log.Warn("doctorCachedRepository.FindByID cache write failed",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
	}
	return doctor, nil
}

func (r *doctorCachedRepository) FindAll(ctx context.Context, filter *models.DoctorFilter) ([]models.Doctor, int64, error) {
	return r.next.FindAll(ctx, filter)
}
