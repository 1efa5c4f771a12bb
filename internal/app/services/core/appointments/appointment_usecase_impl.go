package appointments

import (
	"context"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

const bookingLockTTL = 10 * time.Second

type appointmentUsecase struct {
	Transactor            contracts.Transactor
	AppointmentRepository contracts.AppointmentRepository
	ScheduleRepository    contracts.ScheduleRepository
	DoctorRepository      contracts.DoctorRepository
	ClinicRepository      contracts.ClinicRepository
	PaymentRepository     contracts.PaymentRepository
	LockService           contracts.LockerService
	EventDispatcher       contracts.EventDispatcher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

func NewAppointmentUsecase(
	transactor contracts.Transactor,
	appointmentRepository contracts.AppointmentRepository,
	scheduleRepository contracts.ScheduleRepository,
	doctorRepository contracts.DoctorRepository,
	clinicRepository contracts.ClinicRepository,
	paymentRepository contracts.PaymentRepository,
	lockService contracts.LockerService,
	eventDispatcher contracts.EventDispatcher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		location = time.UTC
	}
	return &appointmentUsecase{
		Transactor:            transactor,
		AppointmentRepository: appointmentRepository,
		ScheduleRepository:    scheduleRepository,
		DoctorRepository:      doctorRepository,
		ClinicRepository:      clinicRepository,
		PaymentRepository:     paymentRepository,
		LockService:           lockService,
		EventDispatcher:       eventDispatcher,
		InternalConfig:        internalConfig,
		Log:                   logger,
		now:                   func() time.Time { return time.Now().In(location) },
	}
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, user *models.AuthUser, request *requests.CreateAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingAppointmentDate, request.AppointmentDate),
		zap.String(constvars.LoggingStartTimeKey, request.StartTime),
	)

	if !user.IsPatient() || user.ProfileID == "" {
		return nil, exceptions.ErrForbidden(nil, constvars.ErrClientOnlyPatientCanBook)
	}

	doctor, err := uc.findDoctor(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.IsAvailable {
		return nil, exceptions.ErrBusiness(nil, constvars.ErrClientDoctorUnavailable)
	}

	appointmentType := models.AppointmentType(request.Type)
	clinicID, err := uc.resolveClinic(ctx, doctor, appointmentType, request.ClinicID)
	if err != nil {
		return nil, err
	}

	err = uc.validateWindow(ctx, doctor, request.AppointmentDate, request.StartTime, request.EndTime)
	if err != nil {
		uc.Log.Info("appointmentUsecase.CreateAppointment window rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	release, err := uc.acquireBookingLock(ctx, doctor.ID, request.AppointmentDate, request.StartTime)
	if err != nil {
		return nil, err
	}
	defer release()

	appointment := &models.Appointment{
		PatientID:       user.ProfileID,
		DoctorID:        doctor.ID,
		ClinicID:        clinicID,
		AppointmentDate: request.AppointmentDate,
		StartTime:       request.StartTime,
		EndTime:         request.EndTime,
		Type:            appointmentType,
		Status:          models.AppointmentStatusPending,
		Symptoms:        request.Symptoms,
		Notes:           request.Notes,
	}

	err = uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ensureNoOverlap(txCtx, doctor.ID, appointment.AppointmentDate, appointment.StartTime, appointment.EndTime, ""); err != nil {
			return err
		}
		if err := uc.AppointmentRepository.Create(txCtx, appointment); err != nil {
			return err
		}
		return uc.ScheduleRepository.SetSlotStatus(txCtx, doctor.ID, appointment.AppointmentDate, appointment.StartTime, models.ScheduleSlotStatusBooked)
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error booking slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	uc.dispatch(ctx, models.EventAppointmentCreated, appointment, user, "")
	return appointment, nil
}

func (uc *appointmentUsecase) GetAppointment(ctx context.Context, user *models.AuthUser, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.GetAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !uc.CheckUserAccess(user, appointment) {
		return nil, exceptions.ErrForbidden(nil, constvars.ErrClientNotAuthorized)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) ListAppointments(ctx context.Context, user *models.AuthUser, query *requests.ListAppointmentsQuery) (*responses.AppointmentList, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.UserID),
	)

	filter := &models.AppointmentFilter{
		Status:   models.AppointmentStatus(query.Status),
		DateFrom: query.DateFrom,
		DateTo:   query.DateTo,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	switch {
	case user.IsPatient():
		filter.PatientID = user.ProfileID
	case user.IsDoctor():
		filter.DoctorID = user.ProfileID
	case user.IsAdmin():
	default:
		return nil, exceptions.ErrNotMatchRoleType(nil)
	}

	appointments, total, err := uc.AppointmentRepository.FindAll(ctx, filter)
	if err != nil {
		uc.Log.Error("appointmentUsecase.ListAppointments error calling AppointmentRepository.FindAll",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.AppointmentList{
		Appointments: appointments,
		Total:        total,
	}, nil
}

func (uc *appointmentUsecase) UpdateAppointment(ctx context.Context, user *models.AuthUser, appointmentID string, request *requests.UpdateAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !uc.CheckUserAccess(user, appointment) {
		return nil, exceptions.ErrForbidden(nil, constvars.ErrClientNotAuthorized)
	}
	if appointment.Status.IsTerminal() {
		return nil, exceptions.ErrBusiness(nil, fmt.Sprintf(constvars.ErrClientAppointmentNotEditable, strings.ToLower(string(appointment.Status))))
	}

	fields := map[string]interface{}{}
	if request.Symptoms != nil {
		fields["symptoms"] = *request.Symptoms
	}
	if request.Notes != nil {
		fields["notes"] = *request.Notes
	}

	var doctor *models.Doctor
	loadDoctor := func() (*models.Doctor, error) {
		if doctor != nil {
			return doctor, nil
		}
		found, err := uc.findDoctor(ctx, appointment.DoctorID)
		doctor = found
		return found, err
	}

	appointmentType := appointment.Type
	if request.Type != nil {
		appointmentType = models.AppointmentType(*request.Type)
	}
	if request.Type != nil || request.ClinicID != nil {
		d, err := loadDoctor()
		if err != nil {
			return nil, err
		}
		clinicID := request.ClinicID
		if clinicID == nil {
			clinicID = appointment.ClinicID
		}
		resolved, err := uc.resolveClinic(ctx, d, appointmentType, clinicID)
		if err != nil {
			return nil, err
		}
		fields["type"] = appointmentType
		fields["clinic_id"] = resolved
	}

	date := valueOr(request.AppointmentDate, appointment.AppointmentDate)
	startTime := valueOr(request.StartTime, appointment.StartTime)
	endTime := valueOr(request.EndTime, appointment.EndTime)
	rescheduled := request.Reschedules() &&
		(date != appointment.AppointmentDate || startTime != appointment.StartTime || endTime != appointment.EndTime)

	if rescheduled {
		d, err := loadDoctor()
		if err != nil {
			return nil, err
		}
		if err := uc.validateWindow(ctx, d, date, startTime, endTime); err != nil {
			return nil, err
		}
		fields["appointment_date"] = date
		fields["start_time"] = startTime
		fields["end_time"] = endTime
		if appointment.Status == models.AppointmentStatusConfirmed {
			fields["status"] = models.AppointmentStatusPending
			fields["confirmed_at"] = nil
		}
	}

	if len(fields) == 0 {
		return appointment, nil
	}

	if rescheduled {
		release, err := uc.acquireBookingLock(ctx, appointment.DoctorID, date, startTime)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	err = uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if rescheduled {
			if err := uc.ensureNoOverlap(txCtx, appointment.DoctorID, date, startTime, endTime, appointment.ID); err != nil {
				return err
			}
		}

		rows, err := uc.AppointmentRepository.UpdateFields(txCtx, appointment.ID, fields)
		if err != nil {
			return err
		}
		if rows == 0 {
			return exceptions.ErrBusiness(nil, fmt.Sprintf(constvars.ErrClientAppointmentNotEditable, "closed"))
		}

		if rescheduled {
			err := uc.ScheduleRepository.SetSlotStatus(txCtx, appointment.DoctorID, appointment.AppointmentDate, appointment.StartTime, models.ScheduleSlotStatusAvailable)
			if err != nil {
				return err
			}
			return uc.ScheduleRepository.SetSlotStatus(txCtx, appointment.DoctorID, date, startTime, models.ScheduleSlotStatusBooked)
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateAppointment error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return nil, err
	}

	updated, err := uc.findAppointment(ctx, appointment.ID)
	if err != nil {
		return nil, err
	}

	if rescheduled {
		uc.dispatch(ctx, models.EventAppointmentRescheduled, updated, user, "")
	}
	return updated, nil
}

func (uc *appointmentUsecase) ConfirmAppointment(ctx context.Context, user *models.AuthUser, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ConfirmAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !isAssignedDoctor(user, appointment) {
		return nil, exceptions.ErrForbidden(nil, constvars.ErrClientNotAssignedDoctor)
	}
	if appointment.Status != models.AppointmentStatusPending {
		return nil, exceptions.ErrBusiness(nil, constvars.ErrClientAppointmentNotPending)
	}

	now := uc.now()
	rows, err := uc.AppointmentRepository.TransitionStatus(ctx, appointment.ID,
		[]models.AppointmentStatus{models.AppointmentStatusPending},
		models.AppointmentStatusConfirmed,
		map[string]interface{}{"confirmed_at": now},
	)
	if err != nil {
		uc.Log.Error("appointmentUsecase.ConfirmAppointment error calling AppointmentRepository.TransitionStatus",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if rows == 0 {
		return nil, exceptions.ErrBusiness(nil, constvars.ErrClientAppointmentNotPending)
	}

	appointment.Status = models.AppointmentStatusConfirmed
	appointment.ConfirmedAt = &now

	uc.dispatch(ctx, models.EventAppointmentConfirmed, appointment, user, "")
	return appointment, nil
}

func (uc *appointmentUsecase) CompleteAppointment(ctx context.Context, user *models.AuthUser, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CompleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !isAssignedDoctor(user, appointment) {
		return nil, exceptions.ErrForbidden(nil, constvars.ErrClientNotAssignedDoctor)
	}
	if appointment.Status != models.AppointmentStatusConfirmed {
		return nil, exceptions.ErrBusiness(nil, constvars.ErrClientAppointmentNotConfirmed)
	}

	now := uc.now()
	rows, err := uc.AppointmentRepository.TransitionStatus(ctx, appointment.ID,
		[]models.AppointmentStatus{models.AppointmentStatusConfirmed},
		models.AppointmentStatusCompleted,
		map[string]interface{}{"completed_at": now},
	)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, exceptions.ErrBusiness(nil, constvars.ErrClientAppointmentNotConfirmed)
	}

	appointment.Status = models.AppointmentStatusCompleted
	appointment.CompletedAt = &now

	uc.dispatch(ctx, models.EventAppointmentCompleted, appointment, user, "")
	return appointment, nil
}

func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, user *models.AuthUser, appointmentID string, request *requests.CancelAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !uc.CheckUserAccess(user, appointment) {
		return nil, exceptions.ErrForbidden(nil, constvars.ErrClientNotAuthorized)
	}
	if appointment.Status.IsTerminal() {
		return nil, notCancellable(appointment.Status)
	}

	reason := ""
	if request != nil {
		reason = strings.TrimSpace(request.Reason)
	}
	now := uc.now()
	cancelledBy := user.UserID

	err = uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		rows, err := uc.AppointmentRepository.TransitionStatus(txCtx, appointment.ID,
			activeAppointmentStatuses,
			models.AppointmentStatusCancelled,
			map[string]interface{}{
				"cancelled_at":  now,
				"cancel_reason": reason,
				"cancelled_by":  cancelledBy,
			},
		)
		if err != nil {
			return err
		}
		if rows == 0 {
			current, err := uc.AppointmentRepository.FindByID(txCtx, appointment.ID)
			if err != nil {
				return err
			}
			if current == nil {
				return exceptions.ErrNotFound(nil, "appointment")
			}
			return notCancellable(current.Status)
		}

		err = uc.ScheduleRepository.SetSlotStatus(txCtx, appointment.DoctorID, appointment.AppointmentDate, appointment.StartTime, models.ScheduleSlotStatusAvailable)
		if err != nil {
			return err
		}
		return uc.cancelPendingPayment(txCtx, appointment.ID)
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.CancelAppointment error cancelling appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return nil, err
	}

	appointment.Status = models.AppointmentStatusCancelled
	appointment.CancelledAt = &now
	appointment.CancelReason = reason
	appointment.CancelledBy = &cancelledBy

	uc.dispatch(ctx, models.EventAppointmentCancelled, appointment, user, reason)
	return appointment, nil
}

func (uc *appointmentUsecase) GetAvailableSlots(ctx context.Context, doctorID, date string) (*responses.AvailableSlots, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.GetAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingAppointmentDate, date),
	)

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, exceptions.ErrFieldValidation("date", constvars.CustomValidationErrorMessages["date_only"])
	}

	doctor, err := uc.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	result := &responses.AvailableSlots{
		DoctorID: doctor.ID,
		Date:     date,
		Slots:    []models.AvailableSlot{},
	}
	if !doctor.IsAvailable {
		return result, nil
	}
	if past, _ := utils.IsPastDate(date, uc.now()); past {
		return result, nil
	}

	candidates, err := uc.candidateSlots(ctx, doctor, date, day.Weekday())
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return result, nil
	}

	booked, err := uc.AppointmentRepository.FindActiveByDoctorAndDate(ctx, doctor.ID, date, "")
	if err != nil {
		uc.Log.Error("appointmentUsecase.GetAvailableSlots error calling AppointmentRepository.FindActiveByDoctorAndDate",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result.Slots = freeSlots(candidates, booked)
	uc.Log.Info("appointmentUsecase.GetAvailableSlots computed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result.Slots)),
	)
	return result, nil
}

func (uc *appointmentUsecase) CheckUserAccess(user *models.AuthUser, appointment *models.Appointment) bool {
	if user == nil || appointment == nil {
		return false
	}
	switch user.Role {
	case models.UserRoleAdmin:
		return true
	case models.UserRolePatient:
		return user.ProfileID != "" && user.ProfileID == appointment.PatientID
	case models.UserRoleDoctor:
		return user.ProfileID != "" && user.ProfileID == appointment.DoctorID
	}
	return false
}

func (uc *appointmentUsecase) findAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrNotFound(nil, "appointment")
	}
	return appointment, nil
}

func (uc *appointmentUsecase) findDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrNotFound(nil, "doctor")
	}
	return doctor, nil
}

// resolveClinic returns the clinic the appointment takes place at. Online
// appointments fall back to the doctor's clinic.
func (uc *appointmentUsecase) resolveClinic(ctx context.Context, doctor *models.Doctor, appointmentType models.AppointmentType, clinicID *string) (*string, error) {
	if clinicID == nil || *clinicID == "" {
		if appointmentType == models.AppointmentTypeOffline {
			return nil, exceptions.ErrFieldValidation("clinicId", constvars.ErrClientClinicRequired)
		}
		fallback := doctor.ClinicID
		return &fallback, nil
	}

	clinic, err := uc.ClinicRepository.FindByID(ctx, *clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, exceptions.ErrNotFound(nil, "clinic")
	}
	if clinic.ID != doctor.ClinicID {
		return nil, exceptions.ErrBusiness(nil, constvars.ErrClientClinicMismatch)
	}
	resolved := clinic.ID
	return &resolved, nil
}

// validateWindow applies the calendar rules that do not depend on other bookings.
func (uc *appointmentUsecase) validateWindow(ctx context.Context, doctor *models.Doctor, date, startTime, endTime string) error {
	day, err := utils.ParseDate(date)
	if err != nil {
		return exceptions.ErrFieldValidation("appointmentDate", constvars.CustomValidationErrorMessages["date_only"])
	}
	if _, err := utils.ClockToMinutes(startTime); err != nil {
		return exceptions.ErrFieldValidation("startTime", constvars.CustomValidationErrorMessages["hhmm"])
	}
	if _, err := utils.ClockToMinutes(endTime); err != nil {
		return exceptions.ErrFieldValidation("endTime", constvars.CustomValidationErrorMessages["hhmm"])
	}
	if endTime <= startTime {
		return exceptions.ErrBusiness(nil, constvars.ErrClientAppointmentInvalidWindow)
	}

	past, err := utils.IsPastDate(date, uc.now())
	if err != nil {
		return exceptions.ErrFieldValidation("appointmentDate", constvars.CustomValidationErrorMessages["date_only"])
	}
	if past {
		return exceptions.ErrBusiness(nil, constvars.ErrClientAppointmentPastDate)
	}

	ranges, err := uc.bookableRanges(ctx, doctor, date, day.Weekday())
	if err != nil {
		return err
	}
	if !withinRanges(startTime, endTime, ranges) {
		return exceptions.ErrBusiness(nil, constvars.ErrClientAppointmentOutsideHours)
	}
	return nil
}

// bookableRanges prefers the weekly template and falls back to the slots the
// doctor declared for that date.
func (uc *appointmentUsecase) bookableRanges(ctx context.Context, doctor *models.Doctor, date string, weekday time.Weekday) ([]models.TimeRange, error) {
	hours, err := doctor.Schedule()
	if err != nil {
		uc.Log.Warn("appointmentUsecase.bookableRanges invalid working hours",
			zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
			zap.Error(err),
		)
	}
	if ranges := hours.For(weekday); len(ranges) > 0 {
		return ranges, nil
	}

	schedule, err := uc.ScheduleRepository.FindByDoctorAndDate(ctx, doctor.ID, date)
	if err != nil {
		return nil, err
	}
	return rangesFromSchedule(schedule), nil
}

func (uc *appointmentUsecase) candidateSlots(ctx context.Context, doctor *models.Doctor, date string, weekday time.Weekday) ([]models.AvailableSlot, error) {
	hours, err := doctor.Schedule()
	if err != nil {
		uc.Log.Warn("appointmentUsecase.candidateSlots invalid working hours",
			zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
			zap.Error(err),
		)
	}
	if ranges := hours.For(weekday); len(ranges) > 0 {
		slotMinutes := doctor.SlotDurationMinutes
		if slotMinutes <= 0 {
			slotMinutes = constvars.DefaultSlotDurationInMinutes
		}
		return templateSlots(ranges, slotMinutes), nil
	}

	schedule, err := uc.ScheduleRepository.FindByDoctorAndDate(ctx, doctor.ID, date)
	if err != nil {
		return nil, err
	}
	return declaredSlots(schedule), nil
}

func (uc *appointmentUsecase) ensureNoOverlap(ctx context.Context, doctorID, date, startTime, endTime, excludeID string) error {
	existing, err := uc.AppointmentRepository.FindActiveByDoctorAndDate(ctx, doctorID, date, excludeID)
	if err != nil {
		return err
	}
	if overlapsAny(startTime, endTime, existing) {
		return exceptions.ErrConflict(nil, constvars.ErrClientAppointmentSlotTaken)
	}
	return nil
}

// acquireBookingLock takes the short lived slot lock. A lock held by another
// request is reported as a conflict. Redis errors are logged and booking goes on
// under the database guarantees alone.
func (uc *appointmentUsecase) acquireBookingLock(ctx context.Context, doctorID, date, startTime string) (func(), error) {
	noop := func() {}
	if uc.LockService == nil {
		return noop, nil
	}

	key := fmt.Sprintf(constvars.AppointmentLockKeyFormat, doctorID, date, startTime)
	acquired, token, err := uc.LockService.TryLock(ctx, key, bookingLockTTL)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.acquireBookingLock lock unavailable, continuing without it",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return noop, nil
	}
	if !acquired {
		return nil, exceptions.ErrConflict(nil, constvars.ErrClientAppointmentSlotTaken)
	}

	return func() {
		if err := uc.LockService.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			uc.Log.Warn("appointmentUsecase.acquireBookingLock unlock failed", zap.Error(err))
		}
	}, nil
}

func (uc *appointmentUsecase) cancelPendingPayment(ctx context.Context, appointmentID string) error {
	if uc.PaymentRepository == nil {
		return nil
	}
	payment, err := uc.PaymentRepository.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if payment == nil || payment.Status != models.PaymentStatusPending {
		return nil
	}
	_, err = uc.PaymentRepository.TransitionStatus(ctx, payment.ID,
		[]models.PaymentStatus{models.PaymentStatusPending},
		models.PaymentStatusCancelled,
		nil,
	)
	return err
}

func (uc *appointmentUsecase) dispatch(ctx context.Context, eventType models.EventType, appointment *models.Appointment, actor *models.AuthUser, reason string) {
	if uc.EventDispatcher == nil {
		return
	}
	event := models.NewDomainEvent(eventType, appointment)
	event.OccurredAt = uc.now()
	event.Reason = reason
	if actor != nil {
		event.ActorUserID = actor.UserID
	}
	uc.EventDispatcher.Dispatch(ctx, event)
}

func isAssignedDoctor(user *models.AuthUser, appointment *models.Appointment) bool {
	return user.IsDoctor() && user.ProfileID != "" && user.ProfileID == appointment.DoctorID
}

func notCancellable(status models.AppointmentStatus) error {
	return exceptions.ErrBusiness(nil, fmt.Sprintf(constvars.ErrClientAppointmentNotCancellable, strings.ToLower(string(status))))
}

func valueOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}
