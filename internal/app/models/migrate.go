package models

import "gorm.io/gorm"

// Only one live booking may hold a doctor's start time on a given date.
// Cancelled rows are excluded so a freed slot can be booked again.
const appointmentSlotIndexDDL = `CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
	ON appointments (doctor_id, appointment_date, start_time)
	WHERE status <> 'CANCELLED'`

// AutoMigrate creates or updates every table of the service.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Patient{},
		&Specialty{},
		&Clinic{},
		&Doctor{},
		&ScheduleSlot{},
		&Appointment{},
		&Payment{},
		&Notification{},
	)
	if err != nil {
		return err
	}
	return db.Exec(appointmentSlotIndexDDL).Error
}
