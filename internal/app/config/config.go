package config

import (
	"medibook-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Postgres: Postgres{
			Host:                     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:                     utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username:                 utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password:                 utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DBName:                   utils.GetEnvString("POSTGRES_DB_NAME", "medibook"),
			SSLMode:                  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			TimeZone:                 utils.GetEnvString("POSTGRES_TIMEZONE", "Asia/Ho_Chi_Minh"),
			MaxOpenConns:             utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns:             utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeInMinutes: utils.GetEnvInt("POSTGRES_CONN_MAX_LIFETIME_IN_MINUTES", 30),
		},
		SQLite: SQLite{
			Enabled: utils.GetEnvBool("SQLITE_ENABLED", false),
			Path:    utils.GetEnvString("SQLITE_PATH", "medibook.db"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Enabled:  utils.GetEnvBool("RABBITMQ_ENABLED", false),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Enabled:    utils.GetEnvBool("MINIO_ENABLED", false),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "medibook"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                         utils.GetEnvString("APP_ENV", "development"),
			Port:                        utils.GetEnvString("APP_PORT", "8080"),
			Version:                     utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                    utils.GetEnvString("APP_TIMEZONE", "Asia/Ho_Chi_Minh"),
			EndpointPrefix:              utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			FrontendBaseURL:             utils.GetEnvString("APP_FRONTEND_BASE_URL", "http://localhost:3000"),
			CorsAllowedOrigins:          utils.GetEnvStringSlice("APP_CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			MaxRequests:                 utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds:   utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			ShutdownTimeoutInSeconds:    utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte:  utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 2),
			PaymentExpiredTimeInMinutes: utils.GetEnvInt("APP_PAYMENT_EXPIRED_TIME_IN_MINUTES", 15),
			GatewayRateLimitPerSecond:   utils.GetEnvInt("APP_GATEWAY_RATE_LIMIT_PER_SECOND", 20),
			GatewayRateLimitBurst:       utils.GetEnvInt("APP_GATEWAY_RATE_LIMIT_BURST", 40),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			Issuer:        utils.GetEnvString("JWT_ISSUER", "medibook"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		VNPay: AppVNPay{
			TmnCode:                utils.GetEnvString("VNPAY_TMN_CODE", ""),
			HashSecret:             utils.GetEnvString("VNPAY_HASH_SECRET", ""),
			PaymentURL:             utils.GetEnvString("VNPAY_PAYMENT_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
			ReturnURL:              utils.GetEnvString("VNPAY_RETURN_URL", "http://localhost:8080/api/v1/payments/vnpay/callback"),
			ExpireTimeInMinutes:    utils.GetEnvInt("VNPAY_EXPIRE_TIME_IN_MINUTES", 15),
			RequestTimeoutInSecond: utils.GetEnvInt("VNPAY_REQUEST_TIMEOUT_IN_SECONDS", 10),
		},
		Notification: AppNotification{
			QueueName:     utils.GetEnvString("NOTIFICATION_QUEUE_NAME", "medibook.notifications"),
			ConsumerTag:   utils.GetEnvString("NOTIFICATION_CONSUMER_TAG", "medibook-notification-worker"),
			PrefetchCount: utils.GetEnvInt("NOTIFICATION_PREFETCH_COUNT", 10),
		},
		Worker: AppWorker{
			PaymentExpiryCronSpec: utils.GetEnvString("WORKER_PAYMENT_EXPIRY_CRON_SPEC", "@every 1m"),
			LeaderLockTTLSeconds:  utils.GetEnvInt("WORKER_LEADER_LOCK_TTL_SECONDS", 55),
		},
		Cache: AppCache{
			DoctorTTLInSeconds: utils.GetEnvInt("CACHE_DOCTOR_TTL_IN_SECONDS", 60),
		},
	}
}
