package responses

import "medibook-service/internal/app/models"

type DoctorList struct {
	Doctors []models.Doctor `json:"doctors"`
	Total   int64           `json:"-"`
}

type ClinicWithDistance struct {
	models.Clinic
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

type NotificationList struct {
	Notifications []models.Notification `json:"notifications"`
	Unread        int64                 `json:"unread"`
	Total         int64                 `json:"-"`
}
