package appointments

import (
	"context"
	"errors"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/shared/transactor"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var activeAppointmentStatuses = []models.AppointmentStatus{
	models.AppointmentStatusPending,
	models.AppointmentStatusConfirmed,
}

type appointmentPostgresRepository struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewAppointmentPostgresRepository(db *gorm.DB, logger *zap.Logger) contracts.AppointmentRepository {
	return &appointmentPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *appointmentPostgresRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	err := transactor.Conn(ctx, r.DB).Create(appointment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return exceptions.ErrConflict(err, constvars.ErrClientAppointmentSlotTaken)
	} else if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *appointmentPostgresRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := transactor.Conn(ctx, r.DB).First(&appointment, "id = ?", appointmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &appointment, nil
}

func (r *appointmentPostgresRepository) FindAll(ctx context.Context, filter *models.AppointmentFilter) ([]models.Appointment, int64, error) {
	query := transactor.Conn(ctx, r.DB).Model(&models.Appointment{})
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.DoctorID != "" {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		query = query.Where("appointment_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("appointment_date <= ?", filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, exceptions.ErrPostgresDBCountData(err)
	}

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset((filter.Page - 1) * filter.PageSize)
	}

	var appointments []models.Appointment
	err := query.Order("appointment_date DESC").Order("start_time DESC").Find(&appointments).Error
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	return appointments, total, nil
}

func (r *appointmentPostgresRepository) FindActiveByDoctorAndDate(ctx context.Context, doctorID, date, excludeID string) ([]models.Appointment, error) {
	query := transactor.Conn(ctx, r.DB).
		Where("doctor_id = ? AND appointment_date = ?", doctorID, date).
		Where("status <> ?", models.AppointmentStatusCancelled)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var appointments []models.Appointment
	if err := query.Order("start_time ASC").Find(&appointments).Error; err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return appointments, nil
}

func (r *appointmentPostgresRepository) TransitionStatus(ctx context.Context, appointmentID string, from []models.AppointmentStatus, to models.AppointmentStatus, fields map[string]interface{}) (int64, error) {
	updates := make(map[string]interface{}, len(fields)+1)
	for key, value := range fields {
		updates[key] = value
	}
	updates["status"] = to

	result := transactor.Conn(ctx, r.DB).
		Model(&models.Appointment{}).
		Where("id = ? AND status IN ?", appointmentID, from).
		Updates(updates)
	if result.Error != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *appointmentPostgresRepository) UpdateFields(ctx context.Context, appointmentID string, fields map[string]interface{}) (int64, error) {
	result := transactor.Conn(ctx, r.DB).
		Model(&models.Appointment{}).
		Where("id = ? AND status IN ?", appointmentID, activeAppointmentStatuses).
		Updates(fields)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return 0, exceptions.ErrConflict(result.Error, constvars.ErrClientAppointmentSlotTaken)
	} else if result.Error != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(result.Error)
	}
	return result.RowsAffected, nil
}
