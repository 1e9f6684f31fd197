package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// POSConfig holds settings from .brintopos.yaml.
type POSConfig struct {
	Restaurant  RestaurantConfig  `yaml:"restaurant" json:"restaurant"`
	Tax         TaxConfig         `yaml:"tax" json:"tax"`
	Till        TillConfig        `yaml:"till" json:"till"`
	Credentials CredentialsConfig `yaml:"credentials" json:"-"`
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Menu        []MenuItemConfig  `yaml:"menu,omitempty" json:"menu,omitempty"`
}

type RestaurantConfig struct {
	Name           string `yaml:"name" json:"name"`
	CurrencySymbol string `yaml:"currency_symbol" json:"currency_symbol"`
	Footer         string `yaml:"footer,omitempty" json:"footer,omitempty"`
}

// TaxConfig keeps the rate as text so YAML floats never leak into money math.
type TaxConfig struct {
	Label string `yaml:"label" json:"label"`
	Rate  string `yaml:"rate" json:"rate"`
}

type TillConfig struct {
	Node         int64 `yaml:"node" json:"node"`
	DefaultTable int   `yaml:"default_table" json:"default_table"`
}

// CredentialsConfig holds the plaintext gate credentials. They are UI access
// toggles, not a security boundary.
type CredentialsConfig struct {
	POS   string `yaml:"pos"`
	Admin string `yaml:"admin"`
	Void  string `yaml:"void"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type MenuItemConfig struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Price       string `yaml:"price" json:"price"`
	Category    string `yaml:"category" json:"category"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Image       string `yaml:"image,omitempty" json:"image,omitempty"`
}

// ToMenuItem converts the YAML form into a MenuItem.
func (m MenuItemConfig) ToMenuItem() (MenuItem, error) {
	price, err := ParseMoney("price", m.Price)
	if err != nil {
		return MenuItem{}, err
	}
	cat, err := ParseCategory(m.Category)
	if err != nil {
		return MenuItem{}, err
	}
	if cat == CategoryAll {
		return MenuItem{}, NewValidationError("category", "is required")
	}
	return MenuItem{
		ID:          m.ID,
		Name:        strings.TrimSpace(m.Name),
		Price:       price,
		Category:    cat,
		Description: m.Description,
		Image:       m.Image,
	}, nil
}

const (
	DefaultRestaurantName = "BrintoPOS"
	DefaultCurrencySymbol = "৳"
	DefaultFooter         = "Thank you for your business!"
	DefaultTaxLabel       = "VAT"
	DefaultTaxRate        = "0.05"
	DefaultHTTPAddr       = ":8080"
	maxTillNode           = 1023
)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() POSConfig {
	return POSConfig{
		Restaurant: RestaurantConfig{
			Name:           DefaultRestaurantName,
			CurrencySymbol: DefaultCurrencySymbol,
			Footer:         DefaultFooter,
		},
		Tax:  TaxConfig{Label: DefaultTaxLabel, Rate: DefaultTaxRate},
		Till: TillConfig{Node: 1, DefaultTable: 1},
		Credentials: CredentialsConfig{
			POS:   "pos123",
			Admin: "admin123",
			Void:  "void123",
		},
		HTTP: HTTPConfig{Addr: DefaultHTTPAddr},
	}
}

// TaxRate parses the configured rate. An empty rate means the default.
func (c POSConfig) TaxRate() (decimal.Decimal, error) {
	rate := c.Tax.Rate
	if rate == "" {
		rate = DefaultTaxRate
	}
	d, err := decimal.NewFromString(strings.TrimSpace(rate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("tax.rate %q is not a number", c.Tax.Rate)
	}
	return d, nil
}

// PricingPolicy builds the pricing policy described by the config.
func (c POSConfig) PricingPolicy() (PricingPolicy, error) {
	rate, err := c.TaxRate()
	if err != nil {
		return PricingPolicy{}, err
	}
	return NewPricingPolicy(c.Tax.Label, rate)
}

// MenuItems returns the configured menu, or the house menu when none is set.
func (c POSConfig) MenuItems() ([]MenuItem, error) {
	if len(c.Menu) == 0 {
		return HouseMenu(), nil
	}
	items := make([]MenuItem, 0, len(c.Menu))
	for i, m := range c.Menu {
		item, err := m.ToMenuItem()
		if err != nil {
			return nil, fmt.Errorf("menu[%d]: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Validate checks user-supplied values. Empty fields are allowed and filled
// from defaults afterwards.
func (c POSConfig) Validate() error {
	// 1. tax rate must parse and sit in [0, 1]
	if c.Tax.Rate != "" {
		rate, err := c.TaxRate()
		if err != nil {
			return err
		}
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("tax.rate %s must be between 0 and 1", c.Tax.Rate)
		}
	}

	// 2. till node must fit the id generator
	if c.Till.Node < 0 || c.Till.Node > maxTillNode {
		return fmt.Errorf("till.node %d out of range (0-%d)", c.Till.Node, maxTillNode)
	}

	// 3. default table is a positive table number when set
	if c.Till.DefaultTable < 0 {
		return fmt.Errorf("till.default_table %d must be positive", c.Till.DefaultTable)
	}

	// 4. menu entries must be complete and ids unique
	seen := make(map[string]bool)
	for i, m := range c.Menu {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("menu[%d]: name is required", i)
		}
		if _, err := m.ToMenuItem(); err != nil {
			return fmt.Errorf("menu[%d] %q: %w", i, m.Name, err)
		}
		if m.ID != "" {
			if seen[m.ID] {
				return fmt.Errorf("menu[%d]: duplicate id %q", i, m.ID)
			}
			seen[m.ID] = true
		}
	}

	return nil
}

// HouseMenu is the menu a fresh till starts with.
func HouseMenu() []MenuItem {
	return []MenuItem{
		{ID: "1", Name: "Bruschetta", Price: MustMoney("8.99"), Category: CategoryAppetizers, Description: "Toasted bread with tomatoes, garlic, and basil"},
		{ID: "2", Name: "Calamari Rings", Price: MustMoney("12.99"), Category: CategoryAppetizers, Description: "Crispy fried squid rings with marinara sauce"},
		{ID: "3", Name: "Caesar Salad", Price: MustMoney("9.99"), Category: CategoryAppetizers, Description: "Romaine lettuce with caesar dressing and croutons"},
		{ID: "4", Name: "Grilled Salmon", Price: MustMoney("24.99"), Category: CategoryMainCourses, Description: "Atlantic salmon with lemon butter sauce"},
		{ID: "5", Name: "Ribeye Steak", Price: MustMoney("32.99"), Category: CategoryMainCourses, Description: "12oz prime ribeye with garlic mashed potatoes"},
		{ID: "6", Name: "Chicken Parmesan", Price: MustMoney("19.99"), Category: CategoryMainCourses, Description: "Breaded chicken with marinara and mozzarella"},
		{ID: "7", Name: "Margherita Pizza", Price: MustMoney("16.99"), Category: CategoryMainCourses, Description: "Fresh mozzarella, tomatoes, and basil"},
		{ID: "8", Name: "Tiramisu", Price: MustMoney("7.99"), Category: CategoryDesserts, Description: "Classic Italian coffee-flavored dessert"},
		{ID: "9", Name: "Chocolate Lava Cake", Price: MustMoney("8.99"), Category: CategoryDesserts, Description: "Warm chocolate cake with molten center"},
		{ID: "10", Name: "House Wine", Price: MustMoney("6.99"), Category: CategoryBeverages, Description: "Red or white wine by the glass"},
		{ID: "11", Name: "Craft Beer", Price: MustMoney("5.99"), Category: CategoryBeverages, Description: "Local brewery selection"},
		{ID: "12", Name: "Fresh Juice", Price: MustMoney("3.99"), Category: CategoryBeverages, Description: "Orange, apple, or pineapple"},
	}
}
