package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
	CONTEXT_AUTH_USER_KEY  ContextKey = "auth_user"
)

const (
	REQUEST_ID_PREFIX = "MDBK_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	DefaultPageSize        = 10
	MaxPageSize            = 100
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultSlotDurationInMinutes = 30
	ControllerTimeoutInSeconds   = 10
)

const (
	AppointmentLockKeyFormat = "appointment:lock:%s:%s:%s"
	DoctorCacheKeyFormat     = "doctor:cache:%s"
	PaymentExpiryLockKey     = "worker:payment_expiry:leader"
)
