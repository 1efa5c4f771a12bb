package controllers

import (
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

type DoctorController struct {
	Log           *zap.Logger
	DoctorUsecase contracts.DoctorUsecase
}

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase) *DoctorController {
	return &DoctorController{
		Log:           logger,
		DoctorUsecase: doctorUsecase,
	}
}

func (ctrl *DoctorController) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	available, _ := strconv.ParseBool(r.URL.Query().Get(constvars.QueryParamAvailable))
	query := &requests.DoctorSearchQuery{
		SpecialtyID:   r.URL.Query().Get(constvars.QueryParamSpecialtyID),
		ClinicID:      r.URL.Query().Get(constvars.QueryParamClinicID),
		Query:         r.URL.Query().Get(constvars.QueryParamSearch),
		AvailableOnly: available,
		Pagination:    utils.BuildPaginationRequest(r),
	}
	if err := validate(ctrl.Log, r, query); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.DoctorUsecase.SearchDoctors(ctx, query)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(int(result.Total), query.Page, query.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.DoctorListSuccess, pagination, result.Doctors)
}

func (ctrl *DoctorController) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathID(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.DoctorUsecase.GetDoctor(ctx, doctorID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorGetSuccess, result)
}
