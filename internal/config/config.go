package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every environment-driven setting of the API.
type Config struct {
	AppEnv   string `env:"APP_ENV,default=development"`
	Port     int    `env:"PORT,default=3000"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	DatabaseURL       string        `env:"DATABASE_URL,required"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=10"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	DBConnMaxIdle     time.Duration `env:"DB_CONN_MAX_IDLE,default=5m"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`
	AutoMigrate       bool          `env:"BOOKS_AUTO_MIGRATE,default=true"`

	// MaxYear bounds the year field of a book. Zero means the current calendar year.
	MaxYear int `env:"BOOKS_MAX_YEAR,default=0"`

	MaxBodySize        int64    `env:"MAX_BODY_SIZE,default=1048576"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173;http://127.0.0.1:5173"`
	StrictSecurity     bool     `env:"STRICT_SECURITY,default=false"`

	// TrustedProxies lists the addresses or CIDRs whose forwarding headers
	// are believed when resolving the client IP.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	RedisURL       string  `env:"REDIS_URL"`
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS,default=5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST,default=20"`

	AuthJWTSecret string        `env:"AUTH_JWT_SECRET"`
	AuthClockSkew time.Duration `env:"AUTH_CLOCK_SKEW,default=60s"`

	SlowRequestThreshold time.Duration `env:"SLOW_REQUEST_THRESHOLD,default=1s"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Load reads the optional .env files, decodes the environment and validates
// the result. Missing .env files are ignored.
func Load(envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fails fast on settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if c.DBMaxOpenConns < 1 {
		errs = append(errs, errors.New("DB_MAX_OPEN_CONNS must be >= 1"))
	}
	if c.DBMaxIdleConns < 0 {
		errs = append(errs, errors.New("DB_MAX_IDLE_CONNS must be >= 0"))
	}
	if c.MaxYear < 0 {
		errs = append(errs, errors.New("BOOKS_MAX_YEAR must be >= 0"))
	}
	if c.MaxBodySize <= 0 {
		errs = append(errs, errors.New("MAX_BODY_SIZE must be > 0"))
	}
	if c.AuthJWTSecret != "" && len(c.AuthJWTSecret) < 32 {
		errs = append(errs, errors.New("AUTH_JWT_SECRET must be at least 32 characters"))
	}
	if c.RedisURL != "" && (c.RateLimitRPS <= 0 || c.RateLimitBurst < 1) {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		errs = append(errs, err)
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be > 0"))
	}
	return errors.Join(errs...)
}

// Warnings returns non-fatal hardening hints worth logging on startup.
func (c Config) Warnings() []string {
	var warns []string
	if !c.IsProduction() {
		return warns
	}
	if c.AuthJWTSecret == "" {
		warns = append(warns, "AUTH_JWT_SECRET not set; POST/PUT/DELETE /books are open to anyone")
	}
	if c.RedisURL == "" {
		warns = append(warns, "REDIS_URL not set; rate limiting is disabled")
	} else if strings.HasPrefix(c.RedisURL, "redis://") {
		warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
	}
	if c.MaxYear == 0 {
		warns = append(warns, "BOOKS_MAX_YEAR not set; the year bound moves with the calendar at each restart")
	}
	return warns
}

// TrustedProxyPrefixes parses TrustedProxies. Bare addresses become
// single-host prefixes.
func (c Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if p, err := netip.ParsePrefix(raw); err == nil {
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: invalid address %q", raw)
		}
		a = a.Unmap()
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}

func (c Config) IsProduction() bool { return strings.EqualFold(c.AppEnv, "production") }

// Addr is the listen address derived from Port.
func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// EffectiveMaxYear resolves MaxYear against now.
func (c Config) EffectiveMaxYear(now time.Time) int {
	if c.MaxYear > 0 {
		return c.MaxYear
	}
	return now.Year()
}
