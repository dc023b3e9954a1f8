package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Backend holds FNOL backend API configuration. The base URL is the only
// environment-driven behavior the sync layer depends on.
type Backend struct {
	URL     string        `envconfig:"FNOLWATCH_API_URL" default:"http://localhost:8000"`
	Timeout time.Duration `envconfig:"FNOLWATCH_API_TIMEOUT" default:"10s"`
}

// Dashboard holds configuration for the web dashboard.
type Dashboard struct {
	Backend Backend

	Port int `envconfig:"FNOLWATCH_PORT" default:"8080"`

	// StaleAfter is the cache freshness window; reads inside it make no
	// network call.
	StaleAfter time.Duration `envconfig:"FNOLWATCH_STALE_AFTER" default:"30s"`

	// PollInterval drives background revalidation of the dashboard and
	// metrics views.
	PollInterval time.Duration `envconfig:"FNOLWATCH_POLL_INTERVAL" default:"5s"`

	PageSize int `envconfig:"FNOLWATCH_PAGE_SIZE" default:"20"`
}

// LoadDashboard loads dashboard configuration from environment variables.
func LoadDashboard() (*Dashboard, error) {
	var cfg Dashboard
	if err := envconfig.Process("", &cfg.Backend); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
