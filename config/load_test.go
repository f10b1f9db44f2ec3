package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/videostore")
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_MAX_CONNS", "")
	t.Setenv("RENTAL_PERIOD_DAYS", "")
	t.Setenv("AUTO_MIGRATE", "")

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, DriverPostgres, cfg.StoreDriver)
	require.Equal(t, int32(10), cfg.DBMaxConns)
	require.Equal(t, 7, cfg.RentalPeriodDays)
	require.True(t, cfg.AutoMigrate)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/videostore")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("RENTAL_PERIOD_DAYS", "3")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg := Load()
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, int32(25), cfg.DBMaxConns)
	require.Equal(t, 3, cfg.RentalPeriodDays)
	require.False(t, cfg.AutoMigrate)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/videostore")
	t.Setenv("DB_MAX_CONNS", "lots")
	t.Setenv("RENTAL_PERIOD_DAYS", "-2")

	cfg := Load()
	require.Equal(t, int32(10), cfg.DBMaxConns)
	require.Equal(t, 7, cfg.RentalPeriodDays)
}

func TestLoad_MissingDatabaseURLPanics(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	require.Panics(t, func() { Load() })
}

func TestLoad_MemoryDriverNeedsNoDatabase(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DATABASE_URL", "")
	cfg := Load()
	require.Equal(t, DriverMemory, cfg.StoreDriver)
	require.Empty(t, cfg.DatabaseURL)
}

func TestLoad_UnknownDriverPanics(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	require.Panics(t, func() { Load() })
}
