package config

type App struct {
	Port             string `env:"APP_PORT" default:"8080"`
	StoreDriver      string `env:"STORE_DRIVER" default:"postgres"` // postgres | memory
	DatabaseURL      string `env:"DATABASE_URL"`                    // required for postgres
	Env              string `env:"APP_ENV" default:"dev"`
	DBMaxConns       int32  `env:"DB_MAX_CONNS" default:"10"`
	RentalPeriodDays int    `env:"RENTAL_PERIOD_DAYS" default:"7"`
	AutoMigrate      bool   `env:"AUTO_MIGRATE" default:"true"`
}
