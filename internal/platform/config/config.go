package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	platformstrings "mcms/pkg/platform/strings"
)

// Store drivers.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Server captures HTTP server level configuration.
type Server struct {
	Port     string `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Store    StoreConfig
	Auth     AuthConfig
	Payments PaymentConfig
	Redis    RedisConfig
	Limits   RateLimitConfig
	Tracing  TracingConfig

	AdminEmails    []string      `env:"ADMIN_EMAILS" envSeparator:","`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Driver   string        `env:"STORE_DRIVER" envDefault:"mongo"`
	URI      string        `env:"MONGO_URI"`
	User     string        `env:"DB_USER"`
	Password string        `env:"DB_PASS"`
	Host     string        `env:"DB_HOST" envDefault:"cluster0.mongodb.net"`
	Database string        `env:"MONGO_DATABASE" envDefault:"mcmsDB"`
	Timeout  time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
}

// AuthConfig holds JWT signing settings.
type AuthConfig struct {
	SigningKey string        `env:"ACCESS_TOKEN_SECRET"`
	TokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	Issuer     string        `env:"ACCESS_TOKEN_ISSUER" envDefault:"mcms"`
}

// PaymentConfig selects the payment gateway.
type PaymentConfig struct {
	Provider  string `env:"PAYMENT_PROVIDER" envDefault:"stripe"`
	StripeKey string `env:"STRIPE_SECRET_KEY"`
	Currency  string `env:"PAYMENT_CURRENCY" envDefault:"usd"`
}

// RedisConfig is optional; an empty URL keeps rate-limit buckets in memory.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// RateLimitConfig sets per-class request budgets per client IP.
type RateLimitConfig struct {
	Disabled   bool          `env:"RATE_LIMIT_DISABLED" envDefault:"false"`
	AuthLimit  int           `env:"RATE_LIMIT_AUTH" envDefault:"20"`
	WriteLimit int           `env:"RATE_LIMIT_WRITE" envDefault:"60"`
	Window     time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// TracingConfig enables OTLP trace export. An empty endpoint keeps tracing off.
type TracingConfig struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"true"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"mcms"`
}

// Addr is the listen address derived from Port.
func (s Server) Addr() string {
	return ":" + s.Port
}

// MongoURI returns the explicit URI or builds an Atlas SRV URI from the
// credential parts.
func (c StoreConfig) MongoURI() string {
	if c.URI != "" {
		return c.URI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host)
}

// Load reads an optional .env file and then the process environment.
func Load() (Server, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.AdminEmails = platformstrings.DedupeAndTrimLower(cfg.AdminEmails)
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail on first use.
func (s Server) Validate() error {
	var errs []error
	if s.Auth.SigningKey == "" {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET is required"))
	}
	if s.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_TTL must be positive"))
	}
	switch s.Store.Driver {
	case StoreMongo:
		if s.Store.URI == "" && (s.Store.User == "" || s.Store.Password == "") {
			errs = append(errs, errors.New("MONGO_URI or DB_USER/DB_PASS is required"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", s.Store.Driver))
	}
	if s.Payments.Provider == "stripe" && s.Payments.StripeKey == "" {
		errs = append(errs, errors.New("STRIPE_SECRET_KEY is required for the stripe provider"))
	}
	if !s.Limits.Disabled && (s.Limits.AuthLimit <= 0 || s.Limits.WriteLimit <= 0 || s.Limits.Window <= 0) {
		errs = append(errs, errors.New("rate limits and window must be positive"))
	}
	return errors.Join(errs...)
}
