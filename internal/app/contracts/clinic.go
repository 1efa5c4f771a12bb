package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

type ClinicUsecase interface {
	SearchClinics(ctx context.Context, query *requests.ClinicSearchQuery) ([]responses.ClinicWithDistance, error)
	GetClinic(ctx context.Context, clinicID string) (*models.Clinic, error)
	ListSpecialties(ctx context.Context) ([]models.Specialty, error)
}

type ClinicRepository interface {
	FindByID(ctx context.Context, clinicID string) (*models.Clinic, error)
	FindActive(ctx context.Context, nameQuery string) ([]models.Clinic, error)
}

type SpecialtyRepository interface {
	FindAll(ctx context.Context) ([]models.Specialty, error)
}
