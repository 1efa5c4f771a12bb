package clinics

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"sort"

	"go.uber.org/zap"
)

const defaultSearchRadiusKm = 10.0

type clinicUsecase struct {
	ClinicRepository    contracts.ClinicRepository
	SpecialtyRepository contracts.SpecialtyRepository
	Log                 *zap.Logger
}

func NewClinicUsecase(clinicRepository contracts.ClinicRepository, specialtyRepository contracts.SpecialtyRepository, logger *zap.Logger) contracts.ClinicUsecase {
	return &clinicUsecase{
		ClinicRepository:    clinicRepository,
		SpecialtyRepository: specialtyRepository,
		Log:                 logger,
	}
}

// SearchClinics returns active clinics. With a location the result is limited
// to the radius and sorted nearest first.
func (uc *clinicUsecase) SearchClinics(ctx context.Context, query *requests.ClinicSearchQuery) ([]responses.ClinicWithDistance, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicUsecase.SearchClinics called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, query),
	)

	clinics, err := uc.ClinicRepository.FindActive(ctx, query.Query)
	if err != nil {
		uc.Log.Error("clinicUsecase.SearchClinics error calling ClinicRepository.FindActive",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]responses.ClinicWithDistance, 0, len(clinics))
	if !query.HasLocation() {
		for _, clinic := range clinics {
			result = append(result, responses.ClinicWithDistance{Clinic: clinic})
		}
		return result, nil
	}

	radius := query.RadiusKm
	if radius <= 0 {
		radius = defaultSearchRadiusKm
	}
	for _, clinic := range clinics {
		distance := utils.HaversineKm(*query.Latitude, *query.Longitude, clinic.Latitude, clinic.Longitude)
		if distance > radius {
			continue
		}
		result = append(result, responses.ClinicWithDistance{Clinic: clinic, DistanceKm: &distance})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return *result[i].DistanceKm < *result[j].DistanceKm
	})
	return result, nil
}

func (uc *clinicUsecase) GetClinic(ctx context.Context, clinicID string) (*models.Clinic, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicUsecase.GetClinic called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("clinic_id", clinicID),
	)

	clinic, err := uc.ClinicRepository.FindByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, exceptions.ErrNotFound(nil, "clinic")
	}
	return clinic, nil
}

func (uc *clinicUsecase) ListSpecialties(ctx context.Context) ([]models.Specialty, error) {
	specialties, err := uc.SpecialtyRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if specialties == nil {
		specialties = []models.Specialty{}
	}
	return specialties, nil
}
