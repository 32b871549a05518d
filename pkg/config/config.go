package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "AMCDESK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Docgen        DocgenConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DB.DSN == "" && !c.FeatureFlags.UseSQLite {
		return fmt.Errorf("AMCDESK_DB_DSN is required unless AMCDESK_USE_SQLITE is set")
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"AMCDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"AMCDESK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"AMCDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AMCDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN             string        `envconfig:"AMCDESK_DB_DSN"`
	MaxOpenConns    int           `envconfig:"AMCDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AMCDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AMCDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AMCDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional; when URL is empty the login rate limiter is disabled.
type RedisConfig struct {
	URL          string        `envconfig:"AMCDESK_REDIS_URL"`
	PoolSize     int           `envconfig:"AMCDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AMCDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AMCDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AMCDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AMCDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"AMCDESK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AMCDESK_JWT_ISSUER" default:"amcdesk"`
	ExpirationMinutes int    `envconfig:"AMCDESK_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// TokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AMCDESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AMCDESK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AMCDESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AMCDESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AMCDESK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"AMCDESK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"AMCDESK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"AMCDESK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// DocgenConfig drives proposal document rendering. When Endpoint is set the
// proposal snapshot is POSTed to the remote renderer and the returned PDF URL
// is stored; otherwise PDFs are rendered locally under OutputDir.
type DocgenConfig struct {
	Endpoint   string        `envconfig:"AMCDESK_DOCGEN_ENDPOINT"`
	TemplateID string        `envconfig:"AMCDESK_DOCGEN_TEMPLATE_ID"`
	FolderID   string        `envconfig:"AMCDESK_DOCGEN_FOLDER_ID"`
	OutputDir  string        `envconfig:"AMCDESK_DOCGEN_OUTPUT_DIR" default:"var/documents"`
	Timeout    time.Duration `envconfig:"AMCDESK_DOCGEN_TIMEOUT" default:"30s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"AMCDESK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"AMCDESK_AUTO_MIGRATE" default:"false"`
}
