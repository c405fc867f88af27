package config

import (
	"sync"
	"time"

	"tripassistant.ucmerced.edu/internal/models"
)

// Config holds all the configuration settings for our application.
type Config struct {
	Port            int
	Env             string
	DefaultRoute    string
	GroundingModel  string
	AllowedOrigins  []string
	RefreshInterval time.Duration

	mu      sync.RWMutex
	catalog *models.RouteCatalog
}

// NewConfig creates a new instance of a Config struct.
func NewConfig(port int, env string, catalog *models.RouteCatalog) *Config {
	return &Config{
		Port:    port,
		Env:     env,
		catalog: catalog,
	}
}

// UpdateCatalog swaps in a freshly loaded route catalog. Queries already in
// flight keep the catalog they started with.
func (cfg *Config) UpdateCatalog(catalog *models.RouteCatalog) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.catalog = catalog
}

// GetCatalog returns the current route catalog. The catalog is immutable, so
// callers may hold on to it for the whole of a request.
func (cfg *Config) GetCatalog() *models.RouteCatalog {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.catalog
}

// ResolveDefaultRoute returns the route manual queries use when the caller
// names none: the configured default if it exists, otherwise the first
// route in the catalog.
func (cfg *Config) ResolveDefaultRoute() string {
	catalog := cfg.GetCatalog()
	if _, ok := catalog.Route(cfg.DefaultRoute); ok {
		return cfg.DefaultRoute
	}
	if ids := catalog.IDs(); len(ids) > 0 {
		return ids[0]
	}
	return ""
}
