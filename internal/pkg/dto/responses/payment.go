package responses

import "medibook-service/internal/app/models"

type CreateVNPayPayment struct {
	PaymentURL  string              `json:"paymentUrl"`
	Payment     *models.Payment     `json:"payment"`
	Appointment *models.Appointment `json:"appointment"`
}

type PaymentStatus struct {
	Payment     *models.Payment     `json:"payment"`
	Appointment *models.Appointment `json:"appointment"`
}

// ReconcileResult is the outcome of one gateway callback delivery.
type ReconcileResult struct {
	Success          bool                 `json:"success"`
	AlreadyProcessed bool                 `json:"alreadyProcessed"`
	AppointmentID    string               `json:"appointmentId"`
	PaymentID        string               `json:"paymentId"`
	Status           models.PaymentStatus `json:"status"`
	Message          string               `json:"message"`
}

// VNPayIPN is the only body shape the IPN endpoint ever returns.
type VNPayIPN struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}
