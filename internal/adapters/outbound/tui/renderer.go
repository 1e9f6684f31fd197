package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/brintopos/brintopos/internal/domain"
)

// ── warm till palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(lineWidth + 4)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	totalStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", lineWidth))
)

const lineWidth = 48

// RenderMenu lists menu items grouped by category.
func RenderMenu(items []domain.MenuItem, symbol string) string {
	if len(items) == 0 {
		return "  " + dimStyle.Render("No menu items.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, cat := range domain.ValidCategories {
		var inCat []domain.MenuItem
		for _, it := range items {
			if it.Category == cat {
				inCat = append(inCat, it)
			}
		}
		if len(inCat) == 0 {
			continue
		}
		b.WriteString("  " + catNameStyle.Render(string(cat)) + "\n")
		for _, it := range inCat {
			fmt.Fprintf(&b, "    %s %s %s\n",
				faintStyle.Render(padRight(it.ID, 6)),
				padRight(it.Name, 28),
				amount(symbol, it.Price, 10),
			)
			if it.Description != "" {
				fmt.Fprintf(&b, "           %s\n", dimStyle.Render(it.Description))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderOrder shows the live order panel with its running totals.
func RenderOrder(table int, lines []domain.OrderLine, q domain.Quote, symbol string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render(fmt.Sprintf("Table #%d", table)) + "\n")
	b.WriteString("  " + separatorLine + "\n")

	if len(lines) == 0 {
		b.WriteString("  " + dimStyle.Render("No items in order") + "\n")
		return b.String()
	}

	writeLines(&b, lines, symbol)
	b.WriteString("  " + separatorLine + "\n")
	writeTotals(&b, q.Subtotal, q.Tax, q.Total, taxLine(q.Label, q.Rate), symbol)
	return b.String()
}

// RenderInvoice prints a receipt for inv.
func RenderInvoice(inv domain.Invoice, shop domain.RestaurantConfig) string {
	symbol := shop.CurrencySymbol
	var b strings.Builder

	title := headerStyle.Render(shop.Name)
	subtitle := dimStyle.Render(fmt.Sprintf("Invoice #%d  ·  Table #%d", inv.Number, inv.TableNumber))
	when := dimStyle.Render(inv.Timestamp.Format("2006-01-02 15:04"))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n" + when))
	b.WriteString("\n\n")

	if inv.Voided {
		b.WriteString("  " + failStyle.Bold(true).Render("VOIDED"))
		if inv.VoidReason != "" {
			b.WriteString("  " + dimStyle.Render(inv.VoidReason))
		}
		b.WriteString("\n\n")
	}

	writeLines(&b, inv.Items, symbol)
	b.WriteString("  " + separatorLine + "\n")
	writeTotals(&b, inv.Subtotal, inv.Tax, inv.Total, taxLine(inv.TaxLabel, inv.TaxRate), symbol)
	fmt.Fprintf(&b, "  %s %s\n", padRight("Payment", lineWidth-16), inv.PaymentMethod.DisplayName())
	fmt.Fprintf(&b, "  %s\n", faintStyle.Render("ID "+inv.ID))
	return b.String()
}

// RenderReceipt prints the invoice plus tendered cash and change.
func RenderReceipt(inv domain.Invoice, tendered, change decimal.Decimal, shop domain.RestaurantConfig) string {
	var b strings.Builder
	b.WriteString(RenderInvoice(inv, shop))
	if inv.PaymentMethod == domain.PaymentCash {
		fmt.Fprintf(&b, "  %s %s\n", padRight("Tendered", lineWidth-12), amount(shop.CurrencySymbol, tendered, 12))
		fmt.Fprintf(&b, "  %s %s\n", padRight("Change", lineWidth-12), passStyle.Render(amount(shop.CurrencySymbol, change, 12)))
	}
	if shop.Footer != "" {
		b.WriteString("\n  " + dimStyle.Render(shop.Footer) + "\n")
	}
	return b.String()
}

// RenderInvoiceList is the dashboard invoice table.
func RenderInvoiceList(invoices []domain.Invoice, symbol string) string {
	if len(invoices) == 0 {
		return "  " + dimStyle.Render("No invoices yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Invoices") + "\n")
	b.WriteString("  " + separatorLine + "\n")
	for _, inv := range invoices {
		status := passStyle.Render("paid  ")
		if inv.Voided {
			status = failStyle.Render("voided")
		}
		fmt.Fprintf(&b, "  %s  %s  %s  %s  %s\n",
			padRight(fmt.Sprintf("#%d", inv.Number), 5),
			dimStyle.Render(inv.Timestamp.Format("15:04")),
			padRight(fmt.Sprintf("T%d", inv.TableNumber), 4),
			amount(symbol, inv.Total, 12),
			status,
		)
	}
	return b.String()
}

func writeLines(b *strings.Builder, lines []domain.OrderLine, symbol string) {
	for _, l := range lines {
		name := fmt.Sprintf("%d × %s", l.Quantity, l.Name)
		fmt.Fprintf(b, "  %s %s\n", padRight(name, lineWidth-12), amount(symbol, l.LineTotal(), 12))
		if l.SpecialInstructions != "" {
			fmt.Fprintf(b, "      %s\n", warnStyle.Render("» "+l.SpecialInstructions))
		}
	}
}

func writeTotals(b *strings.Builder, subtotal, tax, total decimal.Decimal, taxLabel, symbol string) {
	fmt.Fprintf(b, "  %s %s\n", padRight("Subtotal", lineWidth-12), amount(symbol, subtotal, 12))
	fmt.Fprintf(b, "  %s %s\n", padRight(taxLabel, lineWidth-12), amount(symbol, tax, 12))
	fmt.Fprintf(b, "  %s %s\n", totalStyle.Render(padRight("Total", lineWidth-12)), totalStyle.Render(amount(symbol, total, 12)))
}

func taxLine(label string, rate decimal.Decimal) string {
	return domain.PricingPolicy{Label: label, Rate: rate}.TaxLine()
}

func amount(symbol string, d decimal.Decimal, width int) string {
	return padLeft(domain.FormatMoney(symbol, d), width)
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
