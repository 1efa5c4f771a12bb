package patients

import (
	"context"
	"errors"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/shared/transactor"
	"medibook-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type patientPostgresRepository struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewPatientPostgresRepository(db *gorm.DB, logger *zap.Logger) contracts.PatientRepository {
	return &patientPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *patientPostgresRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	var patient models.Patient
	err := transactor.Conn(ctx, r.DB).First(&patient, "id = ?", patientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &patient, nil
}
