package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig selects the storage backend. The memory driver keeps everything
// in-process and needs no URL; the SQL drivers need a DSN.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"         validate:"required,oneof=memory sqlite3 pgx postgres"`
	URL          string `mapstructure:"url"            validate:"required_unless=Driver memory"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"           validate:"required,min=32"`
	TokenLifetimeHours int    `mapstructure:"token_lifetime_hours" validate:"gt=0"`
	BcryptCost         int    `mapstructure:"bcrypt_cost"          validate:"gte=4,lte=31"`
	ClockSkewSeconds   int    `mapstructure:"clock_skew_seconds"   validate:"gte=0"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig throttles the unauthenticated auth endpoints per client IP.
// A zero rate disables limiting.
type RateLimitConfig struct {
	AuthRequestsPerMinute int `mapstructure:"auth_requests_per_minute" validate:"gte=0"`
	AuthBurst             int `mapstructure:"auth_burst"               validate:"gte=0"`
}

// UsesSQL reports whether the configured driver is backed by database/sql.
func (c DatabaseConfig) UsesSQL() bool {
	return c.Driver != "" && c.Driver != "memory"
}
