package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"separator-tco-backend/internal/catalog"
	"separator-tco-backend/internal/ranking"
	"separator-tco-backend/internal/tco"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Engine   EngineConfig   `yaml:"engine"`
	Refresh  RefreshConfig  `yaml:"refresh"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds"`
	CacheTTL        time.Duration `yaml:"-"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogSQL                 bool   `yaml:"log_sql"`
}

// CatalogConfig points at a catalog export. Path may be a file or an
// http(s) URL; an empty path selects the built-in catalog.
type CatalogConfig struct {
	Path      string            `yaml:"path"`
	HTTPProxy string            `yaml:"http_proxy"`
	Headers   map[string]string `yaml:"headers"`
}

// Source converts the section into a catalog source.
func (c CatalogConfig) Source() catalog.Source {
	return catalog.Source{Path: c.Path, HTTPProxy: c.HTTPProxy, Headers: c.Headers}
}

// EngineConfig overrides the cost engine's reference figures. Zero values
// keep the defaults.
type EngineConfig struct {
	EnergyRatePerKWh      float64  `yaml:"energy_rate_per_kwh"`
	AnnualHours           float64  `yaml:"annual_hours"`
	MaintenanceShare      float64  `yaml:"maintenance_share"`
	ShortlistSize         int      `yaml:"shortlist_size"`
	PreferredApplications []string `yaml:"preferred_applications"`

	TrainingFee          float64 `yaml:"training_fee"`
	CommissioningPerKg   float64 `yaml:"commissioning_per_kg"`
	DisposalPerKg        float64 `yaml:"disposal_per_kg"`
	ServiceIntervalHours float64 `yaml:"service_interval_hours"`
}

// RefreshConfig controls the background shortlist refresh.
type RefreshConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"` // Ignored by YAML parser
	Workers         int           `yaml:"workers"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second

	switch cfg.Database.Driver {
	case "":
		cfg.Database.Driver = "postgres"
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn must be set")
	}

	if cfg.Engine.ShortlistSize <= 0 {
		cfg.Engine.ShortlistSize = 3
	}

	if cfg.Refresh.IntervalSeconds <= 0 {
		cfg.Refresh.IntervalSeconds = 300
	}
	cfg.Refresh.Interval = time.Duration(cfg.Refresh.IntervalSeconds) * time.Second

	if cfg.Refresh.Workers <= 0 {
		log.Printf("refresh.workers is not set or invalid; defaulting to 1")
		cfg.Refresh.Workers = 1
	}
	return nil
}

// Rates returns the engine tariffs with the configured overrides applied.
func (cfg *Config) Rates() (tco.Rates, error) {
	r := tco.DefaultRates()
	e := cfg.Engine
	if e.TrainingFee > 0 {
		r.TrainingFee = e.TrainingFee
	}
	if e.CommissioningPerKg > 0 {
		r.CommissioningPerKg = e.CommissioningPerKg
	}
	if e.DisposalPerKg > 0 {
		r.DisposalPerKg = e.DisposalPerKg
	}
	if e.ServiceIntervalHours > 0 {
		r.ServiceIntervalHours = e.ServiceIntervalHours
	}
	if err := r.Validate(); err != nil {
		return tco.Rates{}, fmt.Errorf("invalid engine rates: %w", err)
	}
	return r, nil
}

// Heuristics returns the shortlist heuristics with the configured
// overrides applied.
func (cfg *Config) Heuristics() ranking.Heuristics {
	h := ranking.DefaultHeuristics()
	e := cfg.Engine
	if e.EnergyRatePerKWh > 0 {
		h.EnergyRatePerKWh = e.EnergyRatePerKWh
	}
	if e.AnnualHours > 0 {
		h.AnnualHours = e.AnnualHours
	}
	if e.MaintenanceShare > 0 {
		h.MaintenanceShare = e.MaintenanceShare
	}
	if len(e.PreferredApplications) > 0 {
		h.PreferredApplications = append([]string(nil), e.PreferredApplications...)
	}
	return h
}
