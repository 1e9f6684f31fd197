package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brintopos/brintopos/internal/adapters/outbound/config"
	"github.com/brintopos/brintopos/internal/domain"
)

// taxPresets are the tax schemes init knows how to write.
var taxPresets = map[string]domain.TaxConfig{
	"vat":   {Label: "VAT", Rate: "0.05"},
	"sales": {Label: "Tax", Rate: "0.08"},
}

func newInitCmd() *cobra.Command {
	var (
		tax      string
		withMenu bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .brintopos.yaml configuration file",
		Long:  "Create a .brintopos.yaml with the house defaults for a new till.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			preset, ok := taxPresets[strings.ToLower(tax)]
			if !ok {
				return fmt.Errorf("unknown tax preset %q (valid: vat, sales)", tax)
			}

			content := generateConfig(preset, withMenu)

			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&tax, "tax", "vat", "Tax preset (vat: VAT 5%, sales: Tax 8%)")
	cmd.Flags().BoolVar(&withMenu, "with-menu", false, "Write the house menu into the file for editing")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .brintopos.yaml")

	return cmd
}

func generateConfig(tax domain.TaxConfig, withMenu bool) string {
	cfg := domain.DefaultConfig()

	var b strings.Builder
	b.WriteString("# BrintoPOS configuration\n\n")
	fmt.Fprintf(&b, "restaurant:\n  name: %s\n  currency_symbol: %q\n  footer: %q\n\n",
		cfg.Restaurant.Name, cfg.Restaurant.CurrencySymbol, cfg.Restaurant.Footer)
	fmt.Fprintf(&b, "tax:\n  label: %s\n  rate: %q\n\n", tax.Label, tax.Rate)
	fmt.Fprintf(&b, "till:\n  node: %d\n  default_table: %d\n\n", cfg.Till.Node, cfg.Till.DefaultTable)
	fmt.Fprintf(&b, "http:\n  addr: %q\n\n", cfg.HTTP.Addr)

	b.WriteString(`# Gate credentials are screen toggles, not security.
# Override with BRINTOPOS_POS_PASSWORD, BRINTOPOS_ADMIN_PASSWORD and
# BRINTOPOS_VOID_PASSWORD or a .env file.
# credentials:
#   pos: pos123
#   admin: admin123
#   void: void123
`)

	if !withMenu {
		b.WriteString("\n# menu: omit to use the house menu\n")
		return b.String()
	}

	b.WriteString("\nmenu:\n")
	for _, it := range domain.HouseMenu() {
		fmt.Fprintf(&b, "  - id: %q\n    name: %s\n    price: %q\n    category: %s\n",
			it.ID, it.Name, it.Price.StringFixed(2), it.Category)
		if it.Description != "" {
			fmt.Fprintf(&b, "    description: %q\n", it.Description)
		}
	}
	return b.String()
}
