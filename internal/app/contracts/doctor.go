package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

type DoctorUsecase interface {
	SearchDoctors(ctx context.Context, query *requests.DoctorSearchQuery) (*responses.DoctorList, error)
	GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error)
}

type DoctorRepository interface {
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindAll(ctx context.Context, filter *models.DoctorFilter) ([]models.Doctor, int64, error)
}

type PatientRepository interface {
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
}
