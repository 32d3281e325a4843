package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var travelEnvKeys = []string{
	"TRAVEL_APP_NAME",
	"TRAVEL_APP_ENV",
	"TRAVEL_APP_PORT",
	"TRAVEL_DATABASE_HOST",
	"TRAVEL_DATABASE_PORT",
	"TRAVEL_DATABASE_USER",
	"TRAVEL_DATABASE_PASSWORD",
	"TRAVEL_DATABASE_DBNAME",
	"TRAVEL_DATABASE_SSLMODE",
	"TRAVEL_DATABASE_MAX_OPEN_CONNS",
	"TRAVEL_DATABASE_MAX_IDLE_CONNS",
	"TRAVEL_JWT_SECRET",
	"TRAVEL_TENANT_BASE_DOMAIN",
	"TRAVEL_BOOKING_EDIT_TIMEOUT",
	"TRAVEL_CURRENCY_RATE_CACHE_TTL",
	"TRAVEL_TELEMETRY_SAMPLING_RATIO",
	"TRAVEL_TELEMETRY_DB_LOG_FULL_SQL",
	"TRAVEL_HTTP_CORS_ALLOW_ORIGINS",
}

// clearEnv blanks every key for the duration of the test; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range travelEnvKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "travel-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "travel", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "X-Tenant-ID", cfg.Tenant.HeaderName)
		assert.Equal(t, 10*time.Second, cfg.Booking.EditTimeout)
		assert.Equal(t, 10*time.Minute, cfg.Currency.RateCacheTTL)
		assert.Equal(t, 30*time.Second, cfg.Currency.TrackingCacheTTL)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	})

	t.Run("loads values from environment variables with TRAVEL prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRAVEL_APP_NAME", "test-app")
		t.Setenv("TRAVEL_APP_PORT", "9000")
		t.Setenv("TRAVEL_DATABASE_HOST", "testdb.local")
		t.Setenv("TRAVEL_DATABASE_PORT", "5433")
		t.Setenv("TRAVEL_DATABASE_SSLMODE", "require")
		t.Setenv("TRAVEL_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("TRAVEL_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("TRAVEL_TENANT_BASE_DOMAIN", "agency.example.com")
		t.Setenv("TRAVEL_BOOKING_EDIT_TIMEOUT", "3s")
		t.Setenv("TRAVEL_CURRENCY_RATE_CACHE_TTL", "1m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "agency.example.com", cfg.Tenant.BaseDomain)
		assert.Equal(t, 3*time.Second, cfg.Booking.EditTimeout)
		assert.Equal(t, time.Minute, cfg.Currency.RateCacheTTL)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRAVEL_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("TRAVEL_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRAVEL_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRAVEL_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRAVEL_APP_ENV", "production")
		t.Setenv("TRAVEL_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		t.Setenv("TRAVEL_DATABASE_PASSWORD", "secure-password")
		t.Setenv("TRAVEL_DATABASE_SSLMODE", "require")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("requires jwt.secret at least 32 characters", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("TRAVEL_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password", func(t *testing.T) {
		setValidProductionBase(t)
		os.Unsetenv("TRAVEL_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("TRAVEL_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("rejects wildcard CORS origin", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("TRAVEL_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("rejects full SQL logging", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("TRAVEL_TELEMETRY_DB_LOG_FULL_SQL", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db_log_full_sql")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "/testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
