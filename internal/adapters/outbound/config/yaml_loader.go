package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/brintopos/brintopos/internal/domain"
)

const (
	// FileName is the till configuration file looked up in the project directory.
	FileName = ".brintopos.yaml"
	envFile  = ".env"
)

// Environment overrides, applied after the file.
const (
	EnvPOSPassword   = "BRINTOPOS_POS_PASSWORD"
	EnvAdminPassword = "BRINTOPOS_ADMIN_PASSWORD"
	EnvVoidPassword  = "BRINTOPOS_VOID_PASSWORD"
	EnvTaxRate       = "BRINTOPOS_TAX_RATE"
	EnvTaxLabel      = "BRINTOPOS_TAX_LABEL"
	EnvCurrency      = "BRINTOPOS_CURRENCY"
	EnvHTTPAddr      = "BRINTOPOS_HTTP_ADDR"
)

// YAMLLoader implements domain.ConfigLoader by reading .brintopos.yaml and
// the environment.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .brintopos.yaml from projectPath, fills unset fields from
// DefaultConfig and applies environment overrides. A .env file next to the
// config is loaded first; it never replaces variables already set.
func (l *YAMLLoader) Load(projectPath string) (domain.POSConfig, error) {
	if err := godotenv.Load(filepath.Join(projectPath, envFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return domain.POSConfig{}, fmt.Errorf("reading %s: %w", envFile, err)
	}

	cfg := domain.DefaultConfig()
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return domain.POSConfig{}, err
	default:
		var fileCfg domain.POSConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return domain.POSConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
		}
		// Validate before merging so typos in the raw file surface.
		if err := fileCfg.Validate(); err != nil {
			return domain.POSConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	cfg = applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return domain.POSConfig{}, fmt.Errorf("invalid environment override: %w", err)
	}
	return cfg, nil
}

// mergeConfig overlays explicit values on defaults. Non-zero values win.
func mergeConfig(base, override domain.POSConfig) domain.POSConfig {
	result := base

	result.Restaurant.Name = pick(override.Restaurant.Name, base.Restaurant.Name)
	result.Restaurant.CurrencySymbol = pick(override.Restaurant.CurrencySymbol, base.Restaurant.CurrencySymbol)
	result.Restaurant.Footer = pick(override.Restaurant.Footer, base.Restaurant.Footer)

	result.Tax.Label = pick(override.Tax.Label, base.Tax.Label)
	result.Tax.Rate = pick(override.Tax.Rate, base.Tax.Rate)

	if override.Till.Node != 0 {
		result.Till.Node = override.Till.Node
	}
	if override.Till.DefaultTable != 0 {
		result.Till.DefaultTable = override.Till.DefaultTable
	}

	result.Credentials.POS = pick(override.Credentials.POS, base.Credentials.POS)
	result.Credentials.Admin = pick(override.Credentials.Admin, base.Credentials.Admin)
	result.Credentials.Void = pick(override.Credentials.Void, base.Credentials.Void)

	result.HTTP.Addr = pick(override.HTTP.Addr, base.HTTP.Addr)

	// An explicit menu replaces the house menu entirely.
	if len(override.Menu) > 0 {
		result.Menu = override.Menu
	}

	return result
}

func applyEnv(cfg domain.POSConfig) domain.POSConfig {
	cfg.Credentials.POS = getEnv(EnvPOSPassword, cfg.Credentials.POS)
	cfg.Credentials.Admin = getEnv(EnvAdminPassword, cfg.Credentials.Admin)
	cfg.Credentials.Void = getEnv(EnvVoidPassword, cfg.Credentials.Void)
	cfg.Tax.Rate = getEnv(EnvTaxRate, cfg.Tax.Rate)
	cfg.Tax.Label = getEnv(EnvTaxLabel, cfg.Tax.Label)
	cfg.Restaurant.CurrencySymbol = getEnv(EnvCurrency, cfg.Restaurant.CurrencySymbol)
	cfg.HTTP.Addr = getEnv(EnvHTTPAddr, cfg.HTTP.Addr)
	return cfg
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func pick(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
