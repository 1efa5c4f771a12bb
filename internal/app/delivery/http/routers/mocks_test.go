package routers

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"net/url"

	"github.com/stretchr/testify/mock"
)

type mockAppointmentUsecase struct {
	mock.Mock
}

func (m *mockAppointmentUsecase) appointment(args mock.Arguments) (*models.Appointment, error) {
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *mockAppointmentUsecase) CreateAppointment(ctx context.Context, user *models.AuthUser, request *requests.CreateAppointment) (*models.Appointment, error) {
	return m.appointment(m.Called(ctx, user, request))
}

func (m *mockAppointmentUsecase) GetAppointment(ctx context.Context, user *models.AuthUser, appointmentID string) (*models.Appointment, error) {
	return m.appointment(m.Called(ctx, user, appointmentID))
}

func (m *mockAppointmentUsecase) ListAppointments(ctx context.Context, user *models.AuthUser, query *requests.ListAppointmentsQuery) (*responses.AppointmentList, error) {
	args := m.Called(ctx, user, query)
	list, _ := args.Get(0).(*responses.AppointmentList)
	return list, args.Error(1)
}

func (m *mockAppointmentUsecase) UpdateAppointment(ctx context.Context, user *models.AuthUser, appointmentID string, request *requests.UpdateAppointment) (*models.Appointment, error) {
	return m.appointment(m.Called(ctx, user, appointmentID, request))
}

func (m *mockAppointmentUsecase) ConfirmAppointment(ctx context.Context, user *models.AuthUser, appointmentID string) (*models.Appointment, error) {
	return m.appointment(m.Called(ctx, user, appointmentID))
}

func (m *mockAppointmentUsecase) CompleteAppointment(ctx context.Context, user *models.AuthUser, appointmentID string) (*models.Appointment, error) {
	return m.appointment(m.Called(ctx, user, appointmentID))
}

func (m *mockAppointmentUsecase) CancelAppointment(ctx context.Context, user *models.AuthUser, appointmentID string, request *requests.CancelAppointment) (*models.Appointment, error) {
	return m.appointment(m.Called(ctx, user, appointmentID, request))
}

func (m *mockAppointmentUsecase) GetAvailableSlots(ctx context.Context, doctorID, date string) (*responses.AvailableSlots, error) {
	args := m.Called(ctx, doctorID, date)
	slots, _ := args.Get(0).(*responses.AvailableSlots)
	return slots, args.Error(1)
}

func (m *mockAppointmentUsecase) CheckUserAccess(user *models.AuthUser, appointment *models.Appointment) bool {
	return m.Called(user, appointment).Bool(0)
}

type mockPaymentUsecase struct {
	mock.Mock
}

func (m *mockPaymentUsecase) CreateGatewayPayment(ctx context.Context, user *models.AuthUser, request *requests.CreateVNPayPayment) (*responses.CreateVNPayPayment, error) {
	args := m.Called(ctx, user, request)
	result, _ := args.Get(0).(*responses.CreateVNPayPayment)
	return result, args.Error(1)
}

func (m *mockPaymentUsecase) ReconcileCallback(ctx context.Context, params url.Values) (*responses.ReconcileResult, error) {
	args := m.Called(ctx, params)
	result, _ := args.Get(0).(*responses.ReconcileResult)
	return result, args.Error(1)
}

func (m *mockPaymentUsecase) GetPaymentStatus(ctx context.Context, user *models.AuthUser, paymentID string) (*responses.PaymentStatus, error) {
	args := m.Called(ctx, user, paymentID)
	result, _ := args.Get(0).(*responses.PaymentStatus)
	return result, args.Error(1)
}

func (m *mockPaymentUsecase) ExpireStalePayments(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockDoctorUsecase struct {
	mock.Mock
}

func (m *mockDoctorUsecase) SearchDoctors(ctx context.Context, query *requests.DoctorSearchQuery) (*responses.DoctorList, error) {
	args := m.Called(ctx, query)
	result, _ := args.Get(0).(*responses.DoctorList)
	return result, args.Error(1)
}

func (m *mockDoctorUsecase) GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

type mockClinicUsecase struct {
	mock.Mock
}

func (m *mockClinicUsecase) SearchClinics(ctx context.Context, query *requests.ClinicSearchQuery) ([]responses.ClinicWithDistance, error) {
	args := m.Called(ctx, query)
	result, _ := args.Get(0).([]responses.ClinicWithDistance)
	return result, args.Error(1)
}

func (m *mockClinicUsecase) GetClinic(ctx context.Context, clinicID string) (*models.Clinic, error) {
	args := m.Called(ctx, clinicID)
	clinic, _ := args.Get(0).(*models.Clinic)
	return clinic, args.Error(1)
}

func (m *mockClinicUsecase) ListSpecialties(ctx context.Context) ([]models.Specialty, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).([]models.Specialty)
	return result, args.Error(1)
}

type mockNotificationUsecase struct {
	mock.Mock
}

func (m *mockNotificationUsecase) ListNotifications(ctx context.Context, user *models.AuthUser, pagination requests.Pagination) (*responses.NotificationList, error) {
	args := m.Called(ctx, user, pagination)
	result, _ := args.Get(0).(*responses.NotificationList)
	return result, args.Error(1)
}

func (m *mockNotificationUsecase) MarkAsRead(ctx context.Context, user *models.AuthUser, notificationID string) error {
	return m.Called(ctx, user, notificationID).Error(0)
}

func (m *mockNotificationUsecase) StoreNotification(ctx context.Context, message *models.NotificationMessage) error {
	return m.Called(ctx, message).Error(0)
}
