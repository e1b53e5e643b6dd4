package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	Company struct {
		Name     string
		Subtitle string
	} `mapstructure:"company"`

	Storage struct {
		Backend string
	} `mapstructure:"storage"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

const (
	BackendPocketBase = "pocketbase"
	BackendPostgres   = "postgres"
)

// Load reads configuration from path (YAML, JSON or TOML) when given,
// then applies BUDGET_* environment overrides, e.g. BUDGET_POSTGRES_DSN.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("app.env", "prod")
	v.SetDefault("company.name", "Relevo Consultoria Ambiental")
	v.SetDefault("company.subtitle", "Sistema de Orçamentos")
	v.SetDefault("storage.backend", BackendPocketBase)
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("metrics.enabled", true)

	v.SetEnvPrefix("BUDGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case BackendPocketBase:
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return c, fmt.Errorf("storage backend %q requires postgres.dsn", BackendPostgres)
		}
	default:
		return c, fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return c, nil
}
