package config

import (
	"log/slog"
	"os"
	"strconv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

func Load() App {
	cfg := App{
		Port:             getenv("APP_PORT", "8080"),
		StoreDriver:      getenv("STORE_DRIVER", DriverPostgres),
		Env:              getenv("APP_ENV", "dev"),
		DBMaxConns:       int32(getint("DB_MAX_CONNS", 10)),
		RentalPeriodDays: getint("RENTAL_PERIOD_DAYS", 7),
		AutoMigrate:      getbool("AUTO_MIGRATE", true),
	}
	switch cfg.StoreDriver {
	case DriverPostgres:
		cfg.DatabaseURL = must("DATABASE_URL")
	case DriverMemory:
	default:
		slog.Error("unknown store driver", "driver", cfg.StoreDriver)
		panic("unknown STORE_DRIVER " + cfg.StoreDriver)
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env, using default", "key", k, "value", v, "default", def)
		return def
	}
	return n
}

func getbool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env, using default", "key", k, "value", v, "default", def)
		return def
	}
	return b
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
