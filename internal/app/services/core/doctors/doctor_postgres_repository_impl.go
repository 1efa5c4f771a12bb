package doctors

import (
	"context"
	"errors"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/shared/transactor"
	"medibook-service/internal/pkg/exceptions"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type doctorPostgresRepository struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewDoctorPostgresRepository(db *gorm.DB, logger *zap.Logger) contracts.DoctorRepository {
	return &doctorPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *doctorPostgresRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := transactor.Conn(ctx, r.DB).
		Preload("Specialty").
		First(&doctor, "id = ?", doctorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &doctor, nil
}

func (r *doctorPostgresRepository) FindAll(ctx context.Context, filter *models.DoctorFilter) ([]models.Doctor, int64, error) {
	query := transactor.Conn(ctx, r.DB).Model(&models.Doctor{})
	if filter.SpecialtyID != "" {
		query = query.Where("specialty_id = ?", filter.SpecialtyID)
	}
	if filter.ClinicID != "" {
		query = query.Where("clinic_id = ?", filter.ClinicID)
	}
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		query = query.Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, exceptions.ErrPostgresDBCountData(err)
	}

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset((filter.Page - 1) * filter.PageSize)
	}

	var doctors []models.Doctor
	err := query.Preload("Specialty").
		Order("rating DESC").
		Order("full_name ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	return doctors, total, nil
}
