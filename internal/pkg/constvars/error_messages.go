package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"required_if":      "is required when %s",
	"required_with":    "is required when %s is present",
	"email":            "must be a valid email",
	"min":              "must be at least %s",
	"max":              "must be at most %s",
	"len":              "must be %s characters long",
	"oneof":            "must be one of [%s]",
	"gt":               "must be greater than %s",
	"gte":              "must be greater than or equal to %s",
	"lt":               "must be less than %s",
	"lte":              "must be less than or equal to %s",
	"url":              "must be a valid URL",
	"uuid":             "must be a valid UUID",
	"latitude":         "must be a valid latitude",
	"longitude":        "must be a valid longitude",
	"date_only":        "must be a date in YYYY-MM-DD format",
	"hhmm":             "must be a time in HH:mm format",
	"appointment_type": "must be either 'ONLINE' or 'OFFLINE'",
	"after_time":       "must be after %s",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":           true,
	"max":           true,
	"len":           true,
	"gt":            true,
	"gte":           true,
	"lt":            true,
	"lte":           true,
	"oneof":         true,
	"required_if":   true,
	"required_with": true,
	"after_time":    true,
}

// Error codes returned to clients
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeBusiness         = "BUSINESS_ERROR"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeInvalidSignature = "INVALID_SIGNATURE"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeTimeout          = "TIMEOUT"
)

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientValidationFailed              = "request validation failed"
	ErrClientTooManyRequests               = "too many requests, please try again later"

	ErrClientResourceNotFound          = "%s not found"
	ErrClientAppointmentSlotTaken      = "the selected time slot is already booked"
	ErrClientAppointmentPastDate       = "appointment date cannot be in the past"
	ErrClientAppointmentOutsideHours   = "the selected time is outside the doctor's working hours"
	ErrClientAppointmentInvalidWindow  = "end time must be after start time"
	ErrClientDoctorUnavailable         = "the doctor is not accepting appointments"
	ErrClientClinicRequired            = "is required for offline appointments"
	ErrClientClinicMismatch            = "the doctor does not practice at the selected clinic"
	ErrClientAppointmentNotCancellable = "appointment is already %s and cannot be cancelled"
	ErrClientAppointmentNotPending     = "Only pending appointments can be confirmed"
	ErrClientAppointmentNotConfirmed   = "Only confirmed appointments can be completed"
	ErrClientAppointmentNotEditable    = "appointment is already %s and cannot be modified"
	ErrClientNotAssignedDoctor         = "only the assigned doctor can perform this action"
	ErrClientOnlyPatientCanBook        = "only patients can book appointments"

	ErrClientPaymentInvalidStatus  = "appointment has invalid status for payment"
	ErrClientPaymentAlreadyPaid    = "appointment already paid"
	ErrClientPaymentAmountMismatch = "payment amount does not match"
	ErrClientPaymentInvalidHash    = "invalid payment signature"
	ErrClientPaymentNotConfigured  = "payment gateway is not configured"
	ErrClientPaymentInProgress     = "a payment for this appointment is already in progress"
	ErrClientPaymentNoFee          = "the doctor has no consultation fee configured"
)

// Error messages for developers
const (
	ErrDevInvalidInput              = "invalid input"
	ErrDevValidationFailed          = "request validation failed"
	ErrDevCannotParseJSON           = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON         = "cannot convert struct or other data types to JSON"
	ErrDevURLParamIDValidation      = "invalid url param %s"
	ErrDevServerDeadlineExceeded    = "server deadline exceeded"
	ErrDevAuthTokenMissing          = "authorization token is missing"
	ErrDevAuthTokenInvalidOrExpired = "authorization token is invalid or expired"
	ErrDevRoleTypeDoesntMatch       = "role type does not match"
	ErrDevAccessDenied              = "caller has no access to the resource"
	ErrDevResourceNotFound          = "%s not found"
	ErrDevBusinessRule              = "business rule violated"
	ErrDevUniqueConstraint          = "unique constraint violated"
	ErrDevRateLimited               = "rate limit exceeded"
	ErrDevPanicRecovered            = "panic recovered"

	ErrDevDBFailedToFindData   = "failed to find data"
	ErrDevDBFailedToInsertData = "failed to insert data"
	ErrDevDBFailedToUpdateData = "failed to update data"
	ErrDevDBFailedToRunTx      = "failed to run transaction"
	ErrDevDBFailedToCountData  = "failed to count data"

	ErrDevRedisSetData    = "failed to set data to redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisGetNoData  = "no data found in redis for key %s"

	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"
	ErrDevMinioCreateObject      = "failed to create object in bucket %s"

	ErrDevPaymentSignatureMismatch = "vnpay secure hash mismatch"
	ErrDevPaymentBuildURL          = "failed to build vnpay payment url"
	ErrDevPaymentAmountMismatch    = "vnpay amount %d does not match payment amount %d"
)
