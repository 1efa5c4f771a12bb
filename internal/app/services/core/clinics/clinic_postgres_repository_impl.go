package clinics

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

type clinicPostgresRepository struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewClinicPostgresRepository(db *gorm.DB, logger *zap.Logger) contracts.ClinicRepository {
	return &clinicPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *clinicPostgresRepository) FindByID(ctx context.Context, clinicID string) (*models.Clinic, error) {
	var clinic models.Clinic
	err := transactor.Conn(ctx, r.DB).First(&clinic, "id = ?", clinicID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &clinic, nil
}

func (r *clinicPostgresRepository) FindActive(ctx context.Context, nameQuery string) ([]models.Clinic, error) {
	query := transactor.Conn(ctx, r.DB).Where("is_active = ?", true)
	if q := strings.TrimSpace(nameQuery); q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var clinics []models.Clinic
	if err := query.Order("name ASC").Find(&clinics).Error; err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return clinics, nil
}

type specialtyPostgresRepository struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewSpecialtyPostgresRepository(db *gorm.DB, logger *zap.Logger) contracts.SpecialtyRepository {
	return &specialtyPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *specialtyPostgresRepository) FindAll(ctx context.Context) ([]models.Specialty, error) {
	var specialties []models.Specialty
	if err := transactor.Conn(ctx, r.DB).Order("name ASC").Find(&specialties).Error; err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return specialties, nil
}
