package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleSlotStatus string

const (
	ScheduleSlotStatusAvailable ScheduleSlotStatus = "AVAILABLE"
	ScheduleSlotStatusBooked    ScheduleSlotStatus = "BOOKED"
)

// ScheduleSlot is a declared slot of a doctor on a concrete date. It mirrors
// bookings but never decides them.
type ScheduleSlot struct {
	ID        string             `gorm:"type:varchar(36);primaryKey" json:"id"`
	DoctorID  string             `gorm:"type:varchar(36);not null;index:idx_doctor_schedules_doctor_date" json:"doctorId"`
	Date      string             `gorm:"type:varchar(10);not null;index:idx_doctor_schedules_doctor_date" json:"date"`
	StartTime string             `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime   string             `gorm:"type:varchar(5);not null" json:"endTime"`
	Status    ScheduleSlotStatus `gorm:"type:varchar(16);not null;default:'AVAILABLE'" json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func (ScheduleSlot) TableName() string {
	return "doctor_schedules"
}

func (s *ScheduleSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// AvailableSlot is a free bookable window returned to clients.
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}
