package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/drivers/database"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/core/appointments"
	"medibook-service/internal/app/services/core/clinics"
	"medibook-service/internal/app/services/core/doctors"
	"medibook-service/internal/app/services/core/schedules"
	"medibook-service/internal/app/services/shared/payment_gateway"
	"medibook-service/internal/app/services/shared/transactor"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	testTmnCode    = "MEDIBOOK"
	testHashSecret = "TESTSECRETKEY0123456789"
	testFee        = int64(300000)
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []models.DomainEvent
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, event models.DomainEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) count(eventType models.EventType) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, event := range d.events {
		if event.Type == eventType {
			n++
		}
	}
	return n
}

type recordingStorage struct {
	mu      sync.Mutex
	objects map[string]interface{}
	err     error
}

func (s *recordingStorage) PutJSON(ctx context.Context, objectName string, payload interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.objects == nil {
		s.objects = map[string]interface{}{}
	}
	s.objects[objectName] = payload
	return nil
}

type paymentFixture struct {
	db          *gorm.DB
	usecase     contracts.PaymentUsecase
	events      *recordingDispatcher
	storage     *recordingStorage
	doctor      *models.Doctor
	patient     *models.AuthUser
	stranger    *models.AuthUser
	doctorUser  *models.AuthUser
	appointment *models.Appointment
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	logger := zap.NewNop()
	f := &paymentFixture{db: db, events: &recordingDispatcher{}, storage: &recordingStorage{}}

	specialty := &models.Specialty{Name: "Dermatology"}
	require.NoError(t, db.Create(specialty).Error)
	clinic := &models.Clinic{Name: "Central Clinic", Address: "1 Main St", IsActive: true}
	require.NoError(t, db.Create(clinic).Error)

	doctorAccount := &models.User{Email: uuid.NewString() + "@medibook.test", PasswordHash: "x", FullName: "Dr. Grey", Role: models.UserRoleDoctor}
	require.NoError(t, db.Create(doctorAccount).Error)
	f.doctor = &models.Doctor{
		UserID:          doctorAccount.ID,
		ClinicID:        clinic.ID,
		SpecialtyID:     specialty.ID,
		FullName:        "Dr. Grey",
		ConsultationFee: testFee,
		IsAvailable:     true,
	}
	require.NoError(t, db.Create(f.doctor).Error)
	f.doctorUser = &models.AuthUser{UserID: doctorAccount.ID, Role: models.UserRoleDoctor, ProfileID: f.doctor.ID}

	f.patient = seedPatient(t, db)
	f.stranger = seedPatient(t, db)
	f.appointment = seedAppointment(t, db, f.patient.ProfileID, f.doctor.ID, "09:00", models.AppointmentStatusConfirmed)

	cfg := &config.InternalConfig{
		App: config.App{Timezone: "UTC", PaymentExpiredTimeInMinutes: 15},
		VNPay: config.AppVNPay{
			TmnCode:             testTmnCode,
			HashSecret:          testHashSecret,
			PaymentURL:          "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
			ReturnURL:           "http://localhost:8080/api/v1/payments/vnpay/callback",
			ExpireTimeInMinutes: 15,
		},
	}
	gateway, err := payment_gateway.NewVNPayService(cfg, logger)
	require.NoError(t, err)

	appointmentRepository := appointments.NewAppointmentPostgresRepository(db, logger)
	paymentRepository := NewPaymentPostgresRepository(db, logger)
	doctorRepository := doctors.NewDoctorPostgresRepository(db, logger)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		transactor.NewGormTransactor(db),
		appointmentRepository,
		schedules.NewSchedulePostgresRepository(db, logger),
		doctorRepository,
		clinics.NewClinicPostgresRepository(db, logger),
		paymentRepository,
		nil,
		nil,
		cfg,
		logger,
	)

	f.usecase = NewPaymentUsecase(
		transactor.NewGormTransactor(db),
		paymentRepository,
		appointmentRepository,
		doctorRepository,
		appointmentUsecase,
		gateway,
		NewReceiptArchiver(f.storage, logger),
		f.events,
		cfg,
		logger,
	)
	return f
}

func seedPatient(t *testing.T, db *gorm.DB) *models.AuthUser {
	t.Helper()
	user := &models.User{Email: uuid.NewString() + "@medibook.test", PasswordHash: "x", FullName: "Patient", Role: models.UserRolePatient}
	require.NoError(t, db.Create(user).Error)
	patient := &models.Patient{UserID: user.ID}
	require.NoError(t, db.Create(patient).Error)
	return &models.AuthUser{UserID: user.ID, Role: models.UserRolePatient, ProfileID: patient.ID}
}

func seedAppointment(t *testing.T, db *gorm.DB, patientID, doctorID, startTime string, status models.AppointmentStatus) *models.Appointment {
	t.Helper()
	start, err := time.Parse(constvars.TimeLayout, startTime)
	require.NoError(t, err)
	appointment := &models.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: "2025-06-10",
		StartTime:       startTime,
		EndTime:         start.Add(30 * time.Minute).Format(constvars.TimeLayout),
		Type:            models.AppointmentTypeOnline,
		Status:          status,
	}
	require.NoError(t, db.Create(appointment).Error)
	return appointment
}

// gatewayCallback signs params the way the gateway does before calling back.
// gatewayCallback answers the URL stored on payment the way the gateway does.
func gatewayCallback(t *testing.T, payment *models.Payment, responseCode string) url.Values {
	t.Helper()
	paymentURL, err := url.Parse(payment.PaymentURL)
	require.NoError(t, err)
	sent := paymentURL.Query()

	params := url.Values{}
	params.Set(constvars.VNPayParamTmnCode, testTmnCode)
	params.Set(constvars.VNPayParamAmount, sent.Get(constvars.VNPayParamAmount))
	params.Set(constvars.VNPayParamTxnRef, sent.Get(constvars.VNPayParamTxnRef))
	params.Set(constvars.VNPayParamOrderInfo, sent.Get(constvars.VNPayParamOrderInfo))
	params.Set(constvars.VNPayParamResponseCode, responseCode)
	params.Set(constvars.VNPayParamTransactionStatus, responseCode)
	params.Set(constvars.VNPayParamTransactionNo, "14226112")
	params.Set(constvars.VNPayParamBankCode, "NCB")
	params.Set(constvars.VNPayParamPayDate, "20250601100512")
	return signCallback(params)
}

// signCallback recomputes the secure hash over the vnp_ params.
func signCallback(params url.Values) url.Values {
	params.Del(constvars.VNPayParamSecureHash)
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+url.QueryEscape(params.Get(key)))
	}

	mac := hmac.New(sha512.New, []byte(testHashSecret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	params.Set(constvars.VNPayParamSecureHash, hex.EncodeToString(mac.Sum(nil)))
	return params
}

func (f *paymentFixture) createPayment(t *testing.T) *models.Payment {
	t.Helper()
	result, err := f.usecase.CreateGatewayPayment(context.Background(), f.patient, &requests.CreateVNPayPayment{
		AppointmentID: f.appointment.ID,
		ClientIP:      "10.0.0.1",
	})
	require.NoError(t, err)
	return result.Payment
}

func (f *paymentFixture) storedPayment(t *testing.T, id string) models.Payment {
	t.Helper()
	var payment models.Payment
	require.NoError(t, f.db.First(&payment, "id = ?", id).Error)
	return payment
}

func TestCreateGatewayPayment(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	result, err := f.usecase.CreateGatewayPayment(ctx, f.patient, &requests.CreateVNPayPayment{
		AppointmentID: f.appointment.ID,
		ClientIP:      "10.0.0.1",
		Locale:        "en",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, result.Payment.Status)
	assert.Equal(t, testFee, result.Payment.Amount)
	assert.Equal(t, models.PaymentMethodVNPay, result.Payment.Method)
	assert.Equal(t, f.appointment.ID, result.Appointment.ID)

	paymentURL, err := url.Parse(result.PaymentURL)
	require.NoError(t, err)
	query := paymentURL.Query()
	assert.Equal(t, f.appointment.ID, query.Get(constvars.VNPayParamTxnRef))
	assert.Equal(t, "30000000", query.Get(constvars.VNPayParamAmount))
	assert.Equal(t, "en", query.Get(constvars.VNPayParamLocale))
	assert.NotEmpty(t, query.Get(constvars.VNPayParamSecureHash))

	t.Run("Second attempt refreshes the pending payment", func(t *testing.T) {
		again, err := f.usecase.CreateGatewayPayment(ctx, f.patient, &requests.CreateVNPayPayment{AppointmentID: f.appointment.ID})
		require.NoError(t, err)
		assert.Equal(t, result.Payment.ID, again.Payment.ID)
		assert.Equal(t, models.PaymentStatusPending, again.Payment.Status)

		var count int64
		require.NoError(t, f.db.Model(&models.Payment{}).Where("appointment_id = ?", f.appointment.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Not the owner", func(t *testing.T) {
		_, err := f.usecase.CreateGatewayPayment(ctx, f.stranger, &requests.CreateVNPayPayment{AppointmentID: f.appointment.ID})
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeNotFound))
	})

	t.Run("Unknown appointment", func(t *testing.T) {
		_, err := f.usecase.CreateGatewayPayment(ctx, f.patient, &requests.CreateVNPayPayment{AppointmentID: uuid.NewString()})
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeNotFound))
	})

	t.Run("Cancelled appointment", func(t *testing.T) {
		cancelled := seedAppointment(t, f.db, f.patient.ProfileID, f.doctor.ID, "10:00", models.AppointmentStatusCancelled)
		_, err := f.usecase.CreateGatewayPayment(ctx, f.patient, &requests.CreateVNPayPayment{AppointmentID: cancelled.ID})
		require.Error(t, err)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.ErrCodeBusiness, customErr.Code)
		assert.Equal(t, constvars.ErrClientPaymentInvalidStatus, customErr.ClientMessage)
	})

	t.Run("Doctor without fee", func(t *testing.T) {
		require.NoError(t, f.db.Model(&models.Doctor{}).Where("id = ?", f.doctor.ID).Update("consultation_fee", 0).Error)
		defer f.db.Model(&models.Doctor{}).Where("id = ?", f.doctor.ID).Update("consultation_fee", testFee)

		other := seedAppointment(t, f.db, f.patient.ProfileID, f.doctor.ID, "11:00", models.AppointmentStatusPending)
		_, err := f.usecase.CreateGatewayPayment(ctx, f.patient, &requests.CreateVNPayPayment{AppointmentID: other.ID})
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeBusiness))
	})
}

func TestCreateGatewayPayment_AlreadyPaid(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	payment := f.createPayment(t)
	_, err := f.usecase.ReconcileCallback(ctx, gatewayCallback(t, payment, "00"))
	require.NoError(t, err)

	_, err = f.usecase.CreateGatewayPayment(ctx, f.patient, &requests.CreateVNPayPayment{AppointmentID: f.appointment.ID})
	require.Error(t, err)

	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.ErrCodeBusiness, customErr.Code)
	assert.Equal(t, "appointment already paid", customErr.ClientMessage)

	stored := f.storedPayment(t, payment.ID)
	assert.Equal(t, models.PaymentStatusPaid, stored.Status)
}

func TestReconcileCallback_IPNIsIdempotent(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	payment := f.createPayment(t)
	callback := gatewayCallback(t, payment, "00")

	first, err := f.usecase.ReconcileCallback(ctx, callback)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.False(t, first.AlreadyProcessed)
	assert.Equal(t, models.PaymentStatusPaid, first.Status)

	stored := f.storedPayment(t, payment.ID)
	assert.Equal(t, models.PaymentStatusPaid, stored.Status)
	require.NotNil(t, stored.PaidAt)
	paidAt := *stored.PaidAt
	assert.Equal(t, "14226112", stored.TransactionID)
	assert.Equal(t, "NCB", stored.BankCode)

	second, err := f.usecase.ReconcileCallback(ctx, callback)
	require.NoError(t, err, "a duplicate IPN must not fail")
	assert.True(t, second.Success)
	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, models.PaymentStatusPaid, second.Status)

	stored = f.storedPayment(t, payment.ID)
	assert.Equal(t, models.PaymentStatusPaid, stored.Status)
	assert.True(t, paidAt.Equal(*stored.PaidAt), "paidAt is written once")

	assert.Equal(t, 1, f.events.count(models.EventPaymentSucceeded), "side effects happen once")
	assert.Len(t, f.storage.objects, 1)
	assert.Contains(t, f.storage.objects, "receipts/"+f.appointment.ID+"/"+payment.ID+".json")
}

func TestReconcileCallback_ConcurrentDeliveries(t *testing.T) {
	f := newPaymentFixture(t)
	callback := gatewayCallback(t, f.createPayment(t), "00")

	var wg sync.WaitGroup
	var mu sync.Mutex
	fresh := 0
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := f.usecase.ReconcileCallback(context.Background(), callback)
			if !assert.NoError(t, err) {
				return
			}
			if !result.AlreadyProcessed {
				mu.Lock()
				fresh++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fresh)
	assert.Equal(t, 1, f.events.count(models.EventPaymentSucceeded))
}

func TestReconcileCallback_PromotesPendingAppointment(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	pending := seedAppointment(t, f.db, f.patient.ProfileID, f.doctor.ID, "14:00", models.AppointmentStatusPending)
	created, err := f.usecase.CreateGatewayPayment(ctx, f.patient, &requests.CreateVNPayPayment{AppointmentID: pending.ID})
	require.NoError(t, err)

	_, err = f.usecase.ReconcileCallback(ctx, gatewayCallback(t, created.Payment, "00"))
	require.NoError(t, err)

	var stored models.Appointment
	require.NoError(t, f.db.First(&stored, "id = ?", pending.ID).Error)
	assert.Equal(t, models.AppointmentStatusConfirmed, stored.Status)
	assert.NotNil(t, stored.ConfirmedAt)
	assert.Equal(t, 1, f.events.count(models.EventAppointmentConfirmed))
}

func TestReconcileCallback_StaleAttemptAfterRetry(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	first := f.createPayment(t)
	declined := gatewayCallback(t, first, "24")
	result, err := f.usecase.ReconcileCallback(ctx, declined)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, result.Status)

	retry, err := f.usecase.CreateGatewayPayment(ctx, f.patient, &requests.CreateVNPayPayment{AppointmentID: f.appointment.ID})
	require.NoError(t, err)
	require.Equal(t, first.ID, retry.Payment.ID)
	assert.NotEqual(t, first.AttemptRef, retry.Payment.AttemptRef)

	t.Run("Replayed decline of the earlier attempt changes nothing", func(t *testing.T) {
		result, err := f.usecase.ReconcileCallback(ctx, declined)
		require.NoError(t, err)
		assert.True(t, result.AlreadyProcessed)
		assert.Equal(t, models.PaymentStatusPending, result.Status)

		stored := f.storedPayment(t, first.ID)
		assert.Equal(t, models.PaymentStatusPending, stored.Status)
		assert.Equal(t, 1, f.events.count(models.EventPaymentFailed))
	})

	t.Run("Success of the current attempt pays", func(t *testing.T) {
		result, err := f.usecase.ReconcileCallback(ctx, gatewayCallback(t, retry.Payment, "00"))
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.False(t, result.AlreadyProcessed)
		assert.Equal(t, models.PaymentStatusPaid, result.Status)

		stored := f.storedPayment(t, first.ID)
		assert.Equal(t, models.PaymentStatusPaid, stored.Status)
		assert.Equal(t, 1, f.events.count(models.EventPaymentSucceeded))
		assert.Equal(t, 1, f.events.count(models.EventPaymentFailed))
	})

	t.Run("Refreshing a pending attempt keeps its reference", func(t *testing.T) {
		other := seedAppointment(t, f.db, f.patient.ProfileID, f.doctor.ID, "15:00", models.AppointmentStatusPending)
		initial, err := f.usecase.CreateGatewayPayment(ctx, f.patient, &requests.CreateVNPayPayment{AppointmentID: other.ID})
		require.NoError(t, err)
		refreshed, err := f.usecase.CreateGatewayPayment(ctx, f.patient, &requests.CreateVNPayPayment{AppointmentID: other.ID})
		require.NoError(t, err)
		assert.Equal(t, initial.Payment.AttemptRef, refreshed.Payment.AttemptRef)

		result, err := f.usecase.ReconcileCallback(ctx, gatewayCallback(t, initial.Payment, "00"))
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, result.Status)
	})
}

func TestReconcileCallback_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("Gateway declined", func(t *testing.T) {
		f := newPaymentFixture(t)
		payment := f.createPayment(t)

		result, err := f.usecase.ReconcileCallback(ctx, gatewayCallback(t, payment, "24"))
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, models.PaymentStatusFailed, result.Status)

		stored := f.storedPayment(t, payment.ID)
		assert.Equal(t, models.PaymentStatusFailed, stored.Status)
		assert.Nil(t, stored.PaidAt)
		assert.Equal(t, 1, f.events.count(models.EventPaymentFailed))
		assert.Empty(t, f.storage.objects)

		// a new attempt re-arms the failed payment
		retry, err := f.usecase.CreateGatewayPayment(ctx, f.patient, &requests.CreateVNPayPayment{AppointmentID: f.appointment.ID})
		require.NoError(t, err)
		assert.Equal(t, payment.ID, retry.Payment.ID)
		assert.Equal(t, models.PaymentStatusPending, retry.Payment.Status)
		assert.Empty(t, retry.Payment.ResponseCode)
	})

	t.Run("Tampered amount", func(t *testing.T) {
		f := newPaymentFixture(t)
		payment := f.createPayment(t)

		callback := gatewayCallback(t, payment, "00")
		callback.Set(constvars.VNPayParamAmount, "100")
		_, err := f.usecase.ReconcileCallback(ctx, callback)
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeInvalidSignature))

		stored := f.storedPayment(t, payment.ID)
		assert.Equal(t, models.PaymentStatusPending, stored.Status)
	})

	t.Run("Signed amount differs from payment", func(t *testing.T) {
		f := newPaymentFixture(t)
		payment := f.createPayment(t)

		for _, raw := range []string{"15000000", "30000099", "3000000"} {
			callback := gatewayCallback(t, payment, "00")
			callback.Set(constvars.VNPayParamAmount, raw)
			_, err := f.usecase.ReconcileCallback(ctx, signCallback(callback))
			require.Error(t, err, raw)
			var customErr *exceptions.CustomError
			require.True(t, errors.As(err, &customErr))
			assert.Equal(t, constvars.ErrClientPaymentAmountMismatch, customErr.ClientMessage)
		}

		stored := f.storedPayment(t, payment.ID)
		assert.Equal(t, models.PaymentStatusPending, stored.Status)
		assert.Zero(t, f.events.count(models.EventPaymentSucceeded))
	})

	t.Run("Unknown order", func(t *testing.T) {
		f := newPaymentFixture(t)
		callback := gatewayCallback(t, f.createPayment(t), "00")
		callback.Set(constvars.VNPayParamTxnRef, uuid.NewString())
		_, err := f.usecase.ReconcileCallback(ctx, signCallback(callback))
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeNotFound))
	})

	t.Run("Callback after the appointment was cancelled", func(t *testing.T) {
		f := newPaymentFixture(t)
		payment := f.createPayment(t)
		require.NoError(t, f.db.Model(&models.Payment{}).Where("id = ?", payment.ID).Update("status", models.PaymentStatusCancelled).Error)

		result, err := f.usecase.ReconcileCallback(ctx, gatewayCallback(t, payment, "00"))
		require.NoError(t, err)
		assert.True(t, result.AlreadyProcessed)
		assert.False(t, result.Success)
		assert.Equal(t, models.PaymentStatusCancelled, result.Status)
	})
}

func TestGetPaymentStatus(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	payment := f.createPayment(t)

	status, err := f.usecase.GetPaymentStatus(ctx, f.patient, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, status.Payment.ID)
	assert.Equal(t, f.appointment.ID, status.Appointment.ID)

	_, err = f.usecase.GetPaymentStatus(ctx, f.doctorUser, payment.ID)
	assert.NoError(t, err, "the assigned doctor may read the payment")

	_, err = f.usecase.GetPaymentStatus(ctx, f.stranger, payment.ID)
	assert.True(t, exceptions.HasCode(err, constvars.ErrCodeForbidden))

	_, err = f.usecase.GetPaymentStatus(ctx, f.patient, uuid.NewString())
	assert.True(t, exceptions.HasCode(err, constvars.ErrCodeNotFound))
}

func TestExpireStalePayments(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	payment := f.createPayment(t)

	uc := f.usecase.(*paymentUsecase)

	uc.now = func() time.Time { return time.Now().UTC() }
	expired, err := f.usecase.ExpireStalePayments(ctx)
	require.NoError(t, err)
	assert.Zero(t, expired, "fresh payments stay pending")

	uc.now = func() time.Time { return time.Now().UTC().Add(time.Hour) }
	expired, err = f.usecase.ExpireStalePayments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Equal(t, models.PaymentStatusCancelled, f.storedPayment(t, payment.ID).Status)

	expired, err = f.usecase.ExpireStalePayments(ctx)
	require.NoError(t, err)
	assert.Zero(t, expired)
}
