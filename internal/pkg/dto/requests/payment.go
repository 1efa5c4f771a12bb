package requests

type CreateVNPayPayment struct {
	AppointmentID string `json:"appointmentId" validate:"required,uuid"`
	BankCode      string `json:"bankCode,omitempty" validate:"omitempty,max=20"`
	Locale        string `json:"locale,omitempty" validate:"omitempty,oneof=vn en"`
	ReturnURL     string `json:"returnUrl,omitempty" validate:"omitempty,url"`
	ClientIP      string `json:"-"`
}
