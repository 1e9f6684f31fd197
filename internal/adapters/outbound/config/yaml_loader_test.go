package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/brintopos/brintopos/internal/adapters/outbound/config"
	"github.com/brintopos/brintopos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		appconfig.EnvPOSPassword, appconfig.EnvAdminPassword, appconfig.EnvVoidPassword,
		appconfig.EnvTaxRate, appconfig.EnvTaxLabel, appconfig.EnvCurrency, appconfig.EnvHTTPAddr,
	} {
		t.Setenv(k, "")
	}
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := appconfig.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, appconfig.FileName, `
restaurant:
  name: Dhaka Diner
tax:
  label: Tax
  rate: 0.08
till:
  node: 7
menu:
  - id: k1
    name: Kacchi Biryani
    price: 350
    category: MainCourses
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Dhaka Diner", cfg.Restaurant.Name)
	assert.Equal(t, "৳", cfg.Restaurant.CurrencySymbol)
	assert.Equal(t, "0.08", cfg.Tax.Rate)
	assert.Equal(t, "Tax", cfg.Tax.Label)
	assert.Equal(t, int64(7), cfg.Till.Node)
	assert.Equal(t, "admin123", cfg.Credentials.Admin)
	require.Len(t, cfg.Menu, 1)
	assert.Equal(t, "350", cfg.Menu[0].Price)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, appconfig.FileName, `{{{invalid yaml`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .brintopos.yaml")
}

func TestYAMLLoader_ValidationError(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, appconfig.FileName, "tax:\n  rate: 1.5\n")

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .brintopos.yaml")
}

func TestYAMLLoader_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(appconfig.EnvVoidPassword, "s3cret")
	t.Setenv(appconfig.EnvTaxRate, "0.08")
	dir := t.TempDir()
	writeFile(t, dir, appconfig.FileName, "tax:\n  rate: 0.05\n")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Credentials.Void)
	assert.Equal(t, "0.08", cfg.Tax.Rate)
}

func TestYAMLLoader_DotEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is present, even when empty.
	require.NoError(t, os.Unsetenv(appconfig.EnvAdminPassword))
	dir := t.TempDir()
	writeFile(t, dir, ".env", "BRINTOPOS_ADMIN_PASSWORD=from-dotenv\n")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Credentials.Admin)
}

func TestYAMLLoader_BadEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(appconfig.EnvTaxRate, "lots")

	_, err := appconfig.New().Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment override")
}
