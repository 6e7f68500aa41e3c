package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "catalog")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_NAME", "movies")
	t.Setenv("JWT_SECRET", "super-secret-value")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", c.Env)
	assert.Equal(t, "5000", c.Port)
	assert.Equal(t, ":5000", c.Addr())
	assert.Equal(t, "3306", c.DBPort)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	assert.Equal(t, 15*time.Second, c.ShutdownTimeout)
	assert.False(t, c.IsProduction())

	assert.Equal(t, uint32(65536), c.Argon2.MemoryKiB)
	assert.Equal(t, uint32(3), c.Argon2.Iterations)
	assert.Equal(t, uint8(4), c.Argon2.Parallelism)

	assert.True(t, c.RateLimit.Enabled)
	assert.Equal(t, 10, c.RateLimit.Capacity)
	assert.Equal(t, 5*time.Minute, c.RateLimit.RefillInterval)
	assert.Equal(t, "ip_email_route", c.RateLimit.KeyStrategy)

	assert.Equal(t, ActivitySinkDB, c.Activity.Sink)
	assert.Equal(t, "activity.recorded", c.Activity.Queue)
	assert.Equal(t, "localhost:6379", c.Redis.Addr)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_EXPIRES_IN", "7d")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("ACTIVITY_SINK", "amqp")
	t.Setenv("AMQP_URL", "amqp://u:p@broker:5672/")

	c, err := Load()
	require.NoError(t, err)

	assert.True(t, c.IsProduction())
	assert.Equal(t, ":8080", c.Addr())
	assert.Equal(t, 7*24*time.Hour, c.TokenTTL)
	assert.Equal(t, "cache:6380", c.Redis.Addr)
	assert.Equal(t, ActivitySinkAMQP, c.Activity.Sink)
	assert.Equal(t, "amqp://u:p@broker:5672/", c.Activity.AMQPURL)
}

func TestLoadMissingSecretFails(t *testing.T) {
	t.Setenv("DB_USER", "catalog")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_NAME", "movies")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWTSecret")
}

func TestLoadMissingDatabaseFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "super-secret-value")
	t.Setenv("DB_USER", "catalog")
	t.Setenv("DB_NAME", "movies")
	t.Setenv("DB_HOST", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DBHost")
}

func TestLoadRejectsUnknownSink(t *testing.T) {
	setRequired(t)
	t.Setenv("ACTIVITY_SINK", "kafka")

	_, err := Load()
	require.Error(t, err)
}

func TestParseExpiresIn(t *testing.T) {
	cases := map[string]time.Duration{
		"1d":   24 * time.Hour,
		"12h":  12 * time.Hour,
		"90m":  90 * time.Minute,
		"3600": time.Hour,
	}
	for in, want := range cases {
		got, err := ParseExpiresIn(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "0", "-1h", "xd", "soon"} {
		_, err := ParseExpiresIn(bad)
		assert.Error(t, err, bad)
	}
}

func TestSummaryMasksSecrets(t *testing.T) {
	c := Config{JWTSecret: "abcdefghij", DBPass: ""}
	s := c.Summary()
	assert.Equal(t, "ab******ij", s["jwt_secret"])
	assert.Equal(t, "(empty)", s["db_pass"])
	assert.NotContains(t, s["jwt_secret"], "cdefgh")
}
