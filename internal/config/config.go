package config // package config loads application configuration from the environment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting.  It is built once by Load and passed by
// value into the components that need it; nothing reads the environment
// after startup.
type Config struct {
	Env             string        `mapstructure:"APP_ENV" validate:"required,oneof=development production test"`
	Port            string        `mapstructure:"PORT" validate:"required,numeric"`
	ClientURL       string        `mapstructure:"CLIENT_URL" validate:"required,url"`
	LogLevel        string        `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	DBUser        string `mapstructure:"DB_USER" validate:"required"`
	DBPass        string `mapstructure:"DB_PASS"`                  // empty allowed
	DBHost        string `mapstructure:"DB_HOST" validate:"required"`
	DBPort        string `mapstructure:"DB_PORT" validate:"required,numeric"`
	DBName        string `mapstructure:"DB_NAME" validate:"required"`
	DBAutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`

	JWTSecret    string `mapstructure:"JWT_SECRET" validate:"required"`
	JWTExpiresIn string `mapstructure:"JWT_EXPIRES_IN" validate:"required"`

	// TokenTTL is JWTExpiresIn parsed; it also bounds the session cookie.
	TokenTTL time.Duration `mapstructure:"-"`

	Argon2    Argon2Config    `mapstructure:"-"`
	RateLimit RateLimitConfig `mapstructure:"-"`
	Redis     RedisConfig     `mapstructure:"-"`
	Activity  ActivityConfig  `mapstructure:"-"`
}

// Argon2Config holds the password hashing cost parameters.
type Argon2Config struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var envKeys = []string{
	"APP_ENV", "PORT", "CLIENT_URL", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT",
	"DB_USER", "DB_PASS", "DB_HOST", "DB_PORT", "DB_NAME", "DB_AUTO_MIGRATE",
	"JWT_SECRET", "JWT_EXPIRES_IN",
	"ARGON2_MEMORY_KIB", "ARGON2_ITERATIONS", "ARGON2_PARALLELISM",
	"RATE_LIMIT_ENABLED", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_REFILL_TOKENS",
	"RATE_LIMIT_REFILL_INTERVAL", "RATE_LIMIT_TTL", "RATE_LIMIT_KEY_STRATEGY",
	"RATE_LIMIT_PREFIX", "RATE_LIMIT_DEBUG",
	"REDIS_HOST", "REDIS_PORT", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_TLS",
	"ACTIVITY_SINK", "ACTIVITY_QUEUE", "ACTIVITY_WORKERS", "ACTIVITY_BUFFER",
	"ACTIVITY_CAPTURE_LIMIT", "ACTIVITY_WRITE_TIMEOUT", "RABBITMQ_URL", "AMQP_URL",
}

// Load reads .env (if present) and the process environment, applies
// defaults and validates the result.  A missing database setting or signing
// secret is returned as an error; cmd/server treats it as fatal.
func Load() (Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	setDefaults(v)

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config unmarshal: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	ttl, err := ParseExpiresIn(c.JWTExpiresIn)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}
	c.TokenTTL = ttl

	c.Argon2 = Argon2Config{
		MemoryKiB:   v.GetUint32("ARGON2_MEMORY_KIB"),
		Iterations:  v.GetUint32("ARGON2_ITERATIONS"),
		Parallelism: uint8(v.GetUint("ARGON2_PARALLELISM")),
	}
	if c.Argon2.Iterations < 1 || c.Argon2.Parallelism < 1 || c.Argon2.MemoryKiB < 8*uint32(c.Argon2.Parallelism) {
		return Config{}, fmt.Errorf("invalid argon2 parameters: m=%d t=%d p=%d",
			c.Argon2.MemoryKiB, c.Argon2.Iterations, c.Argon2.Parallelism)
	}

	c.RateLimit = loadRateLimitConfig(v)
	c.Redis = loadRedisConfig(v)
	c.Activity, err = loadActivityConfig(v)
	if err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "5000")
	v.SetDefault("CLIENT_URL", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("JWT_EXPIRES_IN", "1d")
	v.SetDefault("ARGON2_MEMORY_KIB", 65536)
	v.SetDefault("ARGON2_ITERATIONS", 3)
	v.SetDefault("ARGON2_PARALLELISM", 4)
}

// IsProduction reports whether cookies must be Secure/SameSite=None.
func (c Config) IsProduction() bool { return c.Env == "production" }

// Addr is the HTTP listen address.
func (c Config) Addr() string { return ":" + c.Port }

// Summary returns a log-safe view of the configuration with secrets masked.
func (c Config) Summary() map[string]string {
	return map[string]string{
		"env":            c.Env,
		"port":           c.Port,
		"client_url":     c.ClientURL,
		"db":             fmt.Sprintf("%s@%s:%s/%s", c.DBUser, c.DBHost, c.DBPort, c.DBName),
		"db_pass":        mask(c.DBPass),
		"jwt_secret":     mask(c.JWTSecret),
		"jwt_expires_in": c.JWTExpiresIn,
		"redis":          c.Redis.Addr,
		"activity_sink":  c.Activity.Sink,
	}
}

func mask(s string) string {
	switch {
	case s == "":
		return "(empty)"
	case len(s) <= 4:
		return "****"
	default:
		return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
	}
}

// ParseExpiresIn accepts Go durations ("90m", "24h"), a day count ("7d") or
// a bare number of seconds.
func ParseExpiresIn(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("duration must be positive: %q", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	if strings.HasSuffix(s, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count: %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %q", s)
	}
	return d, nil
}
