package doctors

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository contracts.DoctorRepository
	Log              *zap.Logger
}

func NewDoctorUsecase(doctorRepository contracts.DoctorRepository, logger *zap.Logger) contracts.DoctorUsecase {
	return &doctorUsecase{
		DoctorRepository: doctorRepository,
		Log:              logger,
	}
}

func (uc *doctorUsecase) SearchDoctors(ctx context.Context, query *requests.DoctorSearchQuery) (*responses.DoctorList, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.SearchDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, query),
	)

	doctors, total, err := uc.DoctorRepository.FindAll(ctx, &models.DoctorFilter{
		SpecialtyID:   query.SpecialtyID,
		ClinicID:      query.ClinicID,
		Query:         query.Query,
		AvailableOnly: query.AvailableOnly,
		Page:          query.Page,
		PageSize:      query.PageSize,
	})
	if err != nil {
		uc.Log.Error("doctorUsecase.SearchDoctors error calling DoctorRepository.FindAll",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if doctors == nil {
		doctors = []models.Doctor{}
	}
	return &responses.DoctorList{Doctors: doctors, Total: total}, nil
}

func (uc *doctorUsecase) GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.GetDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrNotFound(nil, "doctor")
	}
	return doctor, nil
}
