package config

type (
	DriverConfig struct {
		Postgres Postgres
		SQLite   SQLite
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	Postgres struct {
		Host                     string
		Port                     string
		Username                 string
		Password                 string
		DBName                   string
		SSLMode                  string
		TimeZone                 string
		MaxOpenConns             int
		MaxIdleConns             int
		ConnMaxLifetimeInMinutes int
	}
	// SQLite replaces Postgres for local runs when enabled
	SQLite struct {
		Enabled bool
		Path    string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Enabled  bool
		Host     string
		Port     string
		Username string
		Password string
	}
	Minio struct {
		Enabled    bool
		Host       string
		Port       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}
)
