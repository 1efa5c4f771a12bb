package config

type InternalConfig struct {
	App          App
	JWT          AppJWT
	VNPay        AppVNPay
	Notification AppNotification
	Worker       AppWorker
	Cache        AppCache
}

type App struct {
	Env                         string
	Port                        string
	Version                     string
	Timezone                    string
	EndpointPrefix              string
	FrontendBaseURL             string
	CorsAllowedOrigins          []string
	MaxRequests                 int
	MaxTimeRequestsPerSeconds   int
	ShutdownTimeoutInSeconds    int
	RequestBodyLimitInMegabyte  int
	PaymentExpiredTimeInMinutes int
	// GatewayRateLimitPerSecond throttles the payment gateway endpoints
	GatewayRateLimitPerSecond int
	GatewayRateLimitBurst     int
}

type AppJWT struct {
	Secret        string
	Issuer        string
	ExpTimeInHour int
}

type AppVNPay struct {
	TmnCode                string
	HashSecret             string
	PaymentURL             string
	ReturnURL              string
	ExpireTimeInMinutes    int
	RequestTimeoutInSecond int
}

type AppNotification struct {
	QueueName     string
	ConsumerTag   string
	PrefetchCount int
}

type AppWorker struct {
	PaymentExpiryCronSpec string
	LeaderLockTTLSeconds  int
}

type AppCache struct {
	DoctorTTLInSeconds int
}
