package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Appointment messages
	AppointmentCreatedSuccess     = "appointment created successfully"
	AppointmentGetSuccess         = "get appointment successfully"
	AppointmentListSuccess        = "get appointments successfully"
	AppointmentUpdatedSuccess     = "appointment updated successfully"
	AppointmentConfirmedSuccess   = "appointment confirmed successfully"
	AppointmentCompletedSuccess   = "appointment completed successfully"
	AppointmentCancelledSuccess   = "appointment cancelled successfully"
	AppointmentAvailableSlotsRead = "get available slots successfully"

	// Payment messages
	PaymentCreatedSuccess   = "payment url created successfully"
	PaymentStatusGetSuccess = "get payment status successfully"
	PaymentSuccessMessage   = "payment successful"
	PaymentFailedMessage    = "payment failed"
	PaymentAlreadyProcessed = "payment already processed"

	// IPN answers
	IPNConfirmSuccess = "Confirm Success"
	IPNConfirmFailed  = "Confirm Failed"

	// Reference data messages
	DoctorListSuccess    = "get doctors successfully"
	DoctorGetSuccess     = "get doctor successfully"
	ClinicListSuccess    = "get clinics successfully"
	ClinicGetSuccess     = "get clinic successfully"
	SpecialtyListSuccess = "get specialties successfully"

	// Notification messages
	NotificationListSuccess = "get notifications successfully"
	NotificationReadSuccess = "notification marked as read"
)
