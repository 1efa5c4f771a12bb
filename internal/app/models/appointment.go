package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

type AppointmentType string

const (
	AppointmentTypeOnline  AppointmentType = "ONLINE"
	AppointmentTypeOffline AppointmentType = "OFFLINE"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusCompleted
}

func (t AppointmentType) IsValid() bool {
	return t == AppointmentTypeOnline || t == AppointmentTypeOffline
}

// Appointment dates are stored as YYYY-MM-DD and times as HH:mm so that the
// slot key compares exactly in every SQL dialect. A partial unique index on
// (doctor_id, appointment_date, start_time) covers every non-cancelled row,
// see AutoMigrate.
type Appointment struct {
	ID              string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	PatientID       string            `gorm:"type:varchar(36);not null;index" json:"patientId"`
	DoctorID        string            `gorm:"type:varchar(36);not null;index" json:"doctorId"`
	ClinicID        *string           `gorm:"type:varchar(36);index" json:"clinicId,omitempty"`
	AppointmentDate string            `gorm:"type:varchar(10);not null;index" json:"appointmentDate"`
	StartTime       string            `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime         string            `gorm:"type:varchar(5);not null" json:"endTime"`
	Type            AppointmentType   `gorm:"type:varchar(16);not null" json:"type"`
	Status          AppointmentStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	Symptoms        string            `gorm:"type:text" json:"symptoms,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CancelReason    string            `gorm:"type:text" json:"cancelReason,omitempty"`
	CancelledBy     *string           `gorm:"type:varchar(36)" json:"cancelledBy,omitempty"`
	ConfirmedAt     *time.Time        `json:"confirmedAt,omitempty"`
	CancelledAt     *time.Time        `json:"cancelledAt,omitempty"`
	CompletedAt     *time.Time        `json:"completedAt,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Clinic  *Clinic  `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	PatientID string
	DoctorID  string
	Status    AppointmentStatus
	DateFrom  string
	DateTo    string
	Page      int
	PageSize  int
}
