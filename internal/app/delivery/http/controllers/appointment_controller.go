package controllers

import (
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	user, err := authUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateAppointment)
	if err := decodeAndValidate(ctrl.Log, r, request); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.CreateAppointment(ctx, user, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AppointmentCreatedSuccess, result)
}

func (ctrl *AppointmentController) ListAppointments(w http.ResponseWriter, r *http.Request) {
	user, err := authUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	query := &requests.ListAppointmentsQuery{
		Status:     r.URL.Query().Get(constvars.QueryParamStatus),
		DateFrom:   r.URL.Query().Get(constvars.QueryParamDateFrom),
		DateTo:     r.URL.Query().Get(constvars.QueryParamDateTo),
		Pagination: utils.BuildPaginationRequest(r),
	}
	if err := validate(ctrl.Log, r, query); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.ListAppointments(ctx, user, query)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(int(result.Total), query.Page, query.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.AppointmentListSuccess, pagination, result.Appointments)
}

func (ctrl *AppointmentController) GetAppointment(w http.ResponseWriter, r *http.Request) {
	user, err := authUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	appointmentID, err := pathID(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.GetAppointment(ctx, user, appointmentID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentGetSuccess, result)
}

func (ctrl *AppointmentController) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	user, err := authUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	appointmentID, err := pathID(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateAppointment)
	if err := decodeAndValidate(ctrl.Log, r, request); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.UpdateAppointment(ctx, user, appointmentID, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentUpdatedSuccess, result)
}

func (ctrl *AppointmentController) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	user, err := authUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	appointmentID, err := pathID(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.CancelAppointment)
	if err := decodeOptionalAndValidate(ctrl.Log, r, request); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.CancelAppointment(ctx, user, appointmentID, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentCancelledSuccess, result)
}

func (ctrl *AppointmentController) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	user, err := authUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	appointmentID, err := pathID(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.ConfirmAppointment(ctx, user, appointmentID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentConfirmedSuccess, result)
}

func (ctrl *AppointmentController) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	user, err := authUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	appointmentID, err := pathID(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.CompleteAppointment(ctx, user, appointmentID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentCompletedSuccess, result)
}

func (ctrl *AppointmentController) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	query := &requests.AvailableSlotsQuery{
		DoctorID: r.URL.Query().Get(constvars.QueryParamDoctorID),
		Date:     r.URL.Query().Get(constvars.QueryParamDate),
	}
	ctrl.availableSlots(w, r, query)
}

// GetDoctorAvailableSlots serves the same lookup under /doctors/{id}.
func (ctrl *AppointmentController) GetDoctorAvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathID(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	query := &requests.AvailableSlotsQuery{
		DoctorID: doctorID,
		Date:     r.URL.Query().Get(constvars.QueryParamDate),
	}
	ctrl.availableSlots(w, r, query)
}

func (ctrl *AppointmentController) availableSlots(w http.ResponseWriter, r *http.Request, query *requests.AvailableSlotsQuery) {
	if err := validate(ctrl.Log, r, query); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.GetAvailableSlots(ctx, query.DoctorID, query.Date)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentAvailableSlotsRead, result)
}
