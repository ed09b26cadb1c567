package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries everything the process needs at startup. Values come from
// environment variables (EDUPOINT_ prefix), optionally seeded from a .env
// file in development.
type Config struct {
	Env  string `mapstructure:"env"`
	Addr string `mapstructure:"addr"`

	DBDriver string `mapstructure:"db_driver"` // postgres | sqlite
	DBDSN    string `mapstructure:"db_dsn"`

	SnowflakeNode int64 `mapstructure:"snowflake_node"`

	SeedDemoData bool `mapstructure:"seed_demo_data"`
}

func (c Config) IsProduction() bool { return c.Env == "production" }

func Load() (*Config, error) {
	// Missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EDUPOINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "file:edupoint.db")
	v.SetDefault("snowflake_node", 1)
	v.SetDefault("seed_demo_data", false)

	for _, key := range []string{"env", "addr", "db_driver", "db_dsn", "snowflake_node", "seed_demo_data"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}

	return &cfg, nil
}
