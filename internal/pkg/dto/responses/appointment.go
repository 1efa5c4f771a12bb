package responses

import "medibook-service/internal/app/models"

type AvailableSlots struct {
	DoctorID string                 `json:"doctorId"`
	Date     string                 `json:"date"`
	Slots    []models.AvailableSlot `json:"slots"`
}

type AppointmentList struct {
	Appointments []models.Appointment `json:"appointments"`
	Total        int64                `json:"-"`
}
