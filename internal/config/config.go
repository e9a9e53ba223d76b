package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/clinicdesk/clinicdesk/internal/platform/store"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	StoreDriver string   `mapstructure:"STORE_DRIVER"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	RedisURL    string   `mapstructure:"REDIS_URL"`
	RedisPrefix string   `mapstructure:"REDIS_PREFIX"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
	SeedOnStart bool     `mapstructure:"SEED_ON_START"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORE_DRIVER", "") // auto-detect: "" -> inferred from URLs
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("REDIS_PREFIX", "clinicdesk")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SEED_ON_START", true)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("STORE_DRIVER")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("REDIS_URL")
	v.BindEnv("REDIS_PREFIX")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SEED_ON_START")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ResolvedStoreDriver returns the effective storage driver. If STORE_DRIVER
// is explicitly set, it is returned. Otherwise, the driver is inferred:
//   - DATABASE_URL set → "postgres"
//   - REDIS_URL set    → "redis"
//   - Otherwise        → "memory" (process-local, development only)
func (c *Config) ResolvedStoreDriver() string {
	if c.StoreDriver != "" {
		return c.StoreDriver
	}
	if c.DatabaseURL != "" {
		return store.DriverPostgres
	}
	if c.RedisURL != "" {
		return store.DriverRedis
	}
	return store.DriverMemory
}

// Validate checks that the configuration is safe to run. A durable driver
// must come with its connection URL, and the in-memory driver is refused in
// production since it loses all records on restart.
func (c *Config) Validate() error {
	driver := c.ResolvedStoreDriver()
	switch driver {
	case store.DriverMemory:
		if c.IsProduction() {
			return fmt.Errorf("STORE_DRIVER=memory is not durable; set DATABASE_URL or REDIS_URL in production")
		}
	case store.DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is %q", driver)
		}
	case store.DriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORE_DRIVER is %q", driver)
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be \"memory\", \"redis\", or \"postgres\", got %q", driver)
	}
	return nil
}
