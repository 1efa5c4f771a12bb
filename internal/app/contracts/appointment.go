package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, user *models.AuthUser, request *requests.CreateAppointment) (*models.Appointment, error)
	GetAppointment(ctx context.Context, user *models.AuthUser, appointmentID string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, user *models.AuthUser, query *requests.ListAppointmentsQuery) (*responses.AppointmentList, error)
	UpdateAppointment(ctx context.Context, user *models.AuthUser, appointmentID string, request *requests.UpdateAppointment) (*models.Appointment, error)
	ConfirmAppointment(ctx context.Context, user *models.AuthUser, appointmentID string) (*models.Appointment, error)
	CompleteAppointment(ctx context.Context, user *models.AuthUser, appointmentID string) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, user *models.AuthUser, appointmentID string, request *requests.CancelAppointment) (*models.Appointment, error)
	GetAvailableSlots(ctx context.Context, doctorID, date string) (*responses.AvailableSlots, error)
	CheckUserAccess(user *models.AuthUser, appointment *models.Appointment) bool
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindAll(ctx context.Context, filter *models.AppointmentFilter) ([]models.Appointment, int64, error)
	// FindActiveByDoctorAndDate returns non-cancelled appointments, skipping excludeID when set.
	FindActiveByDoctorAndDate(ctx context.Context, doctorID, date, excludeID string) ([]models.Appointment, error)
	// TransitionStatus updates the row only while its status is one of from.
	// The returned count is zero when another writer got there first.
	TransitionStatus(ctx context.Context, appointmentID string, from []models.AppointmentStatus, to models.AppointmentStatus, fields map[string]interface{}) (int64, error)
	// UpdateFields updates the row only while it is not in a terminal status.
	UpdateFields(ctx context.Context, appointmentID string, fields map[string]interface{}) (int64, error)
}

type ScheduleRepository interface {
	FindByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.ScheduleSlot, error)
	SetSlotStatus(ctx context.Context, doctorID, date, startTime string, status models.ScheduleSlotStatus) error
}
