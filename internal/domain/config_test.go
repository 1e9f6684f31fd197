package domain_test

import (
	"testing"

	"github.com/brintopos/brintopos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, "BrintoPOS", cfg.Restaurant.Name)
	assert.Equal(t, "VAT", cfg.Tax.Label)
	assert.Equal(t, "0.05", cfg.Tax.Rate)
	assert.Equal(t, int64(1), cfg.Till.Node)
	assert.Empty(t, cfg.Menu)
	assert.NoError(t, cfg.Validate())
}

func TestPOSConfig_PricingPolicy(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Tax = domain.TaxConfig{Label: "Tax", Rate: "0.08"}

	p, err := cfg.PricingPolicy()
	require.NoError(t, err)
	assert.Equal(t, "Tax", p.Label)
	assert.Equal(t, "0.08", p.Rate.String())
}

func TestPOSConfig_MenuItemsDefaultsToHouseMenu(t *testing.T) {
	items, err := domain.DefaultConfig().MenuItems()
	require.NoError(t, err)
	assert.Len(t, items, 12)

	counts := map[domain.Category]int{}
	for _, it := range items {
		counts[it.Category]++
	}
	assert.Equal(t, 3, counts[domain.CategoryAppetizers])
	assert.Equal(t, 4, counts[domain.CategoryMainCourses])
	assert.Equal(t, 2, counts[domain.CategoryDesserts])
	assert.Equal(t, 3, counts[domain.CategoryBeverages])
}

func TestPOSConfig_MenuItemsFromConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Menu = []domain.MenuItemConfig{
		{ID: "k1", Name: "Kacchi Biryani", Price: "350", Category: "MainCourses"},
	}
	items, err := cfg.MenuItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.CategoryMainCourses, items[0].Category)
	assert.Equal(t, "350", items[0].Price.String())
}

func TestPOSConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.POSConfig)
		wantErr string
	}{
		{"rate not a number", func(c *domain.POSConfig) { c.Tax.Rate = "five" }, "tax.rate"},
		{"rate above one", func(c *domain.POSConfig) { c.Tax.Rate = "5" }, "between 0 and 1"},
		{"negative rate", func(c *domain.POSConfig) { c.Tax.Rate = "-0.05" }, "between 0 and 1"},
		{"node out of range", func(c *domain.POSConfig) { c.Till.Node = 2048 }, "till.node"},
		{"negative table", func(c *domain.POSConfig) { c.Till.DefaultTable = -1 }, "till.default_table"},
		{"menu without name", func(c *domain.POSConfig) {
			c.Menu = []domain.MenuItemConfig{{Price: "1", Category: "Desserts"}}
		}, "name is required"},
		{"menu bad price", func(c *domain.POSConfig) {
			c.Menu = []domain.MenuItemConfig{{Name: "Tea", Price: "-1", Category: "Beverages"}}
		}, "must not be negative"},
		{"menu bad category", func(c *domain.POSConfig) {
			c.Menu = []domain.MenuItemConfig{{Name: "Tea", Price: "1", Category: "Sides"}}
		}, "unknown category"},
		{"menu duplicate id", func(c *domain.POSConfig) {
			c.Menu = []domain.MenuItemConfig{
				{ID: "a", Name: "Tea", Price: "1", Category: "Beverages"},
				{ID: "a", Name: "Coffee", Price: "2", Category: "Beverages"},
			}
		}, "duplicate id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPOSConfig_ValidateAllowsEmptyFields(t *testing.T) {
	assert.NoError(t, domain.POSConfig{}.Validate())
}
