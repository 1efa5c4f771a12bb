package schedules

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/shared/transactor"
	"medibook-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type schedulePostgresRepository struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewSchedulePostgresRepository(db *gorm.DB, logger *zap.Logger) contracts.ScheduleRepository {
	return &schedulePostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *schedulePostgresRepository) FindByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	err := transactor.Conn(ctx, r.DB).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return slots, nil
}

// SetSlotStatus is a no-op when the doctor declared no slot at that start time.
func (r *schedulePostgresRepository) SetSlotStatus(ctx context.Context, doctorID, date, startTime string, status models.ScheduleSlotStatus) error {
	err := transactor.Conn(ctx, r.DB).
		Model(&models.ScheduleSlot{}).
		Where("doctor_id = ? AND date = ? AND start_time = ?", doctorID, date, startTime).
		Update("status", status).Error
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
