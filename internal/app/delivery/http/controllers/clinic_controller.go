package controllers

import (
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type ClinicController struct {
	Log           *zap.Logger
	ClinicUsecase contracts.ClinicUsecase
}

func NewClinicController(logger *zap.Logger, clinicUsecase contracts.ClinicUsecase) *ClinicController {
	return &ClinicController{
		Log:           logger,
		ClinicUsecase: clinicUsecase,
	}
}

func (ctrl *ClinicController) SearchClinics(w http.ResponseWriter, r *http.Request) {
	query := &requests.ClinicSearchQuery{
		Query: r.URL.Query().Get(constvars.QueryParamSearch),
	}

	var err error
	if query.Latitude, err = parseFloatQuery(r, constvars.QueryParamLatitude); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	if query.Longitude, err = parseFloatQuery(r, constvars.QueryParamLongitude); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	radius, err := parseFloatQuery(r, constvars.QueryParamRadiusKm)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	if radius != nil {
		query.RadiusKm = *radius
	}

	if err := validate(ctrl.Log, r, query); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.ClinicUsecase.SearchClinics(ctx, query)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ClinicListSuccess, result)
}

func (ctrl *ClinicController) GetClinic(w http.ResponseWriter, r *http.Request) {
	clinicID, err := pathID(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.ClinicUsecase.GetClinic(ctx, clinicID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ClinicGetSuccess, result)
}

func (ctrl *ClinicController) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.ClinicUsecase.ListSpecialties(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SpecialtyListSuccess, result)
}
