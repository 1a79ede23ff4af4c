package config

// Environment variable names
const (
	EnvPort       = "PORT"
	EnvLogLevel   = "LOG_LEVEL"
	EnvLogFormat  = "LOG_FORMAT"
	EnvDBUser     = "DB_USER"
	EnvDBPassword = "DB_PASSWORD"
	EnvDBHost     = "DB_HOST"
	EnvDBPort     = "DB_PORT"
	EnvDBName     = "DB_NAME"
	EnvAPIKey     = "API_KEY"
	EnvTimezone   = "CANDY_TIMEZONE"
)

// Default values
const (
	DefaultPort       = "8080"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultDBUser     = "postgres"
	DefaultDBPassword = "postgres"
	DefaultDBHost     = "localhost"
	DefaultDBPort     = "5432"
	DefaultDBName     = "candybot"

	// DefaultTimezone anchors every daily/monthly/yearly window. The zone has
	// no DST transitions, which keeps the two expiry computations identical.
	DefaultTimezone = "Asia/Tokyo"
)
