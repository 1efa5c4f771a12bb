package requests

type CreateAppointment struct {
	DoctorID        string  `json:"doctorId" validate:"required,uuid"`
	ClinicID        *string `json:"clinicId,omitempty" validate:"omitempty,uuid"`
	AppointmentDate string  `json:"appointmentDate" validate:"required,date_only"`
	StartTime       string  `json:"startTime" validate:"required,hhmm"`
	EndTime         string  `json:"endTime" validate:"required,hhmm,after_time=StartTime"`
	Type            string  `json:"type" validate:"required,appointment_type"`
	Symptoms        string  `json:"symptoms,omitempty" validate:"omitempty,max=2000"`
	Notes           string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateAppointment is used by both PUT and PATCH. Nil fields are left untouched.
type UpdateAppointment struct {
	AppointmentDate *string `json:"appointmentDate,omitempty" validate:"omitempty,date_only"`
	StartTime       *string `json:"startTime,omitempty" validate:"omitempty,hhmm"`
	EndTime         *string `json:"endTime,omitempty" validate:"omitempty,hhmm"`
	Type            *string `json:"type,omitempty" validate:"omitempty,appointment_type"`
	ClinicID        *string `json:"clinicId,omitempty" validate:"omitempty,uuid"`
	Symptoms        *string `json:"symptoms,omitempty" validate:"omitempty,max=2000"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// Reschedules reports whether the patch moves the appointment in time.
func (u *UpdateAppointment) Reschedules() bool {
	return u.AppointmentDate != nil || u.StartTime != nil || u.EndTime != nil
}

type CancelAppointment struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type AvailableSlotsQuery struct {
	DoctorID string `json:"doctorId" validate:"required,uuid"`
	Date     string `json:"date" validate:"required,date_only"`
}

type ListAppointmentsQuery struct {
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	DateFrom string `json:"dateFrom,omitempty" validate:"omitempty,date_only"`
	DateTo   string `json:"dateTo,omitempty" validate:"omitempty,date_only"`
	Pagination
}
