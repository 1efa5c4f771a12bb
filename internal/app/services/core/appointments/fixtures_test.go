package appointments

import (
	"context"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/drivers/database"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/core/clinics"
	"medibook-service/internal/app/services/core/doctors"
	"medibook-service/internal/app/services/core/payments"
	"medibook-service/internal/app/services/core/schedules"
	"medibook-service/internal/app/services/shared/transactor"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []models.DomainEvent
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, event models.DomainEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) types() []models.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	types := make([]models.EventType, 0, len(d.events))
	for _, event := range d.events {
		types = append(types, event.Type)
	}
	return types
}

type stubLocker struct {
	acquired bool
	err      error
	unlocked int
}

func (l *stubLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	return l.acquired, "token", l.err
}

func (l *stubLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.unlocked++
	return nil
}

type fixture struct {
	db          *gorm.DB
	usecase     contracts.AppointmentUsecase
	events      *recordingDispatcher
	clinic      *models.Clinic
	otherClinic *models.Clinic
	doctor      *models.Doctor
	patientA    *models.AuthUser
	patientB    *models.AuthUser
	doctorUser  *models.AuthUser
	otherDoctor *models.AuthUser
	admin       *models.AuthUser
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T, locker contracts.LockerService) *fixture {
	t.Helper()
	db := newTestDB(t)
	logger := zap.NewNop()

	f := &fixture{db: db, events: &recordingDispatcher{}}

	specialty := &models.Specialty{Name: "Cardiology"}
	require.NoError(t, db.Create(specialty).Error)

	f.clinic = &models.Clinic{Name: "Central Clinic", Address: "1 Main St", Latitude: 10.77, Longitude: 106.70, IsActive: true}
	f.otherClinic = &models.Clinic{Name: "North Clinic", Address: "9 North St", Latitude: 10.85, Longitude: 106.75, IsActive: true}
	require.NoError(t, db.Create(f.clinic).Error)
	require.NoError(t, db.Create(f.otherClinic).Error)

	f.doctor = seedDoctor(t, db, f.clinic.ID, specialty.ID, "Dr. House")
	other := seedDoctor(t, db, f.clinic.ID, specialty.ID, "Dr. Wilson")

	f.doctorUser = &models.AuthUser{UserID: f.doctor.UserID, Role: models.UserRoleDoctor, ProfileID: f.doctor.ID}
	f.otherDoctor = &models.AuthUser{UserID: other.UserID, Role: models.UserRoleDoctor, ProfileID: other.ID}
	f.patientA = seedPatient(t, db, "alice")
	f.patientB = seedPatient(t, db, "bob")
	f.admin = &models.AuthUser{UserID: uuid.NewString(), Role: models.UserRoleAdmin}

	cfg := &config.InternalConfig{App: config.App{Timezone: "UTC"}}
	usecase := NewAppointmentUsecase(
		transactor.NewGormTransactor(db),
		NewAppointmentPostgresRepository(db, logger),
		schedules.NewSchedulePostgresRepository(db, logger),
		doctors.NewDoctorPostgresRepository(db, logger),
		clinics.NewClinicPostgresRepository(db, logger),
		payments.NewPaymentPostgresRepository(db, logger),
		locker,
		f.events,
		cfg,
		logger,
	)
	usecase.(*appointmentUsecase).now = func() time.Time { return testNow }
	f.usecase = usecase
	return f
}

func seedDoctor(t *testing.T, db *gorm.DB, clinicID, specialtyID, name string) *models.Doctor {
	t.Helper()
	user := &models.User{Email: uuid.NewString() + "@medibook.test", PasswordHash: "x", FullName: name, Role: models.UserRoleDoctor}
	require.NoError(t, db.Create(user).Error)

	doctor := &models.Doctor{
		UserID:              user.ID,
		ClinicID:            clinicID,
		SpecialtyID:         specialtyID,
		FullName:            name,
		ConsultationFee:     300000,
		IsAvailable:         true,
		SlotDurationMinutes: 30,
	}
	require.NoError(t, doctor.SetSchedule(models.WorkingHours{
		"tuesday":  {{Start: "08:00", End: "10:00"}},
		"thursday": {{Start: "13:00", End: "15:00"}},
	}))
	require.NoError(t, db.Create(doctor).Error)
	return doctor
}

func seedPatient(t *testing.T, db *gorm.DB, name string) *models.AuthUser {
	t.Helper()
	user := &models.User{Email: fmt.Sprintf("%s-%s@medibook.test", name, uuid.NewString()), PasswordHash: "x", FullName: name, Role: models.UserRolePatient}
	require.NoError(t, db.Create(user).Error)
	patient := &models.Patient{UserID: user.ID}
	require.NoError(t, db.Create(patient).Error)
	return &models.AuthUser{UserID: user.ID, Role: models.UserRolePatient, ProfileID: patient.ID}
}
