package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EventType string

const (
	EventAppointmentCreated     EventType = "appointment.created"
	EventAppointmentConfirmed   EventType = "appointment.confirmed"
	EventAppointmentCancelled   EventType = "appointment.cancelled"
	EventAppointmentCompleted   EventType = "appointment.completed"
	EventAppointmentRescheduled EventType = "appointment.rescheduled"
	EventPaymentSucceeded       EventType = "payment.succeeded"
	EventPaymentFailed          EventType = "payment.failed"
)

// DomainEvent is emitted by the domain services after a state change commits.
type DomainEvent struct {
	ID              string    `json:"id"`
	Type            EventType `json:"type"`
	OccurredAt      time.Time `json:"occurredAt"`
	AppointmentID   string    `json:"appointmentId,omitempty"`
	PaymentID       string    `json:"paymentId,omitempty"`
	PatientID       string    `json:"patientId,omitempty"`
	DoctorID        string    `json:"doctorId,omitempty"`
	ActorUserID     string    `json:"actorUserId,omitempty"`
	AppointmentDate string    `json:"appointmentDate,omitempty"`
	StartTime       string    `json:"startTime,omitempty"`
	Reason          string    `json:"reason,omitempty"`
	Amount          int64     `json:"amount,omitempty"`
}

func NewDomainEvent(eventType EventType, appointment *Appointment) DomainEvent {
	event := DomainEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now(),
	}
	if appointment != nil {
		event.AppointmentID = appointment.ID
		event.PatientID = appointment.PatientID
		event.DoctorID = appointment.DoctorID
		event.AppointmentDate = appointment.AppointmentDate
		event.StartTime = appointment.StartTime
	}
	return event
}

// NotificationMessage is one recipient's copy of an event, as carried on the queue.
type NotificationMessage struct {
	EventID string            `json:"eventId"`
	UserID  string            `json:"userId"`
	Type    EventType         `json:"type"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data,omitempty"`
}

type Notification struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventID   string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_notifications_event_user" json:"eventId"`
	UserID    string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_notifications_event_user;index" json:"userId"`
	Type      EventType      `gorm:"type:varchar(64);not null" json:"type"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Message   string         `gorm:"type:text" json:"message"`
	Data      datatypes.JSON `json:"data,omitempty"`
	IsRead    bool           `gorm:"not null;default:false" json:"isRead"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
