package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brintopos/brintopos/internal/domain"
)

// RenderSummary shows the dashboard cards.
func RenderSummary(s domain.LedgerSummary, symbol string) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(faint).
		Padding(0, 2).
		Width(18)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card.Render(dimStyle.Render("Revenue")+"\n"+totalStyle.Render(domain.FormatMoney(symbol, s.Revenue))),
		card.Render(dimStyle.Render("Tax")+"\n"+titleStyle.Render(domain.FormatMoney(symbol, s.Tax))),
		card.Render(dimStyle.Render("Invoices")+"\n"+titleStyle.Render(fmt.Sprintf("%d", s.ActiveCount))),
	)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(cards)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %s %s\n", padRight("Average ticket", 20), domain.FormatMoney(symbol, s.AverageTicket))

	methods := make([]string, 0, len(s.ByMethod))
	for m := range s.ByMethod {
		methods = append(methods, string(m))
	}
	sort.Strings(methods)
	for _, m := range methods {
		mt := s.ByMethod[domain.PaymentMethod(m)]
		fmt.Fprintf(&b, "  %s %s  %s\n",
			padRight(domain.PaymentMethod(m).DisplayName(), 20),
			domain.FormatMoney(symbol, mt.Total),
			dimStyle.Render(fmt.Sprintf("(%d)", mt.Count)),
		)
	}
	if s.VoidedCount > 0 {
		fmt.Fprintf(&b, "  %s %s  %s\n",
			failStyle.Render(padRight("Voided", 20)),
			domain.FormatMoney(symbol, s.VoidedTotal),
			dimStyle.Render(fmt.Sprintf("(%d)", s.VoidedCount)),
		)
	}
	return b.String()
}

// RenderReportHistory formats archived summaries for terminal output.
func RenderReportHistory(entries []domain.SummaryEntry, symbol string) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No archived reports found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Report History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		day := e.Timestamp
		if len(day) > 10 {
			day = day[:10]
		}
		rev := e.ConfigRevision
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if rev == "" {
			rev = "·······"
		}

		line := fmt.Sprintf("  %s  %s  %s  %s  %s",
			dimStyle.Render(day),
			faintStyle.Render(rev),
			faintStyle.Render(fmt.Sprintf("till %d", e.Till)),
			totalStyle.Render(padLeft(domain.FormatMoney(symbol, e.Summary.Revenue), 12)),
			dimStyle.Render(fmt.Sprintf("%d invoices", e.Summary.ActiveCount)),
		)

		if i > 0 {
			diff := e.Summary.Revenue.Sub(entries[i-1].Summary.Revenue)
			if diff.IsPositive() {
				line += "  " + passStyle.Render("↑"+domain.Round2(diff).StringFixed(2))
			} else if diff.IsNegative() {
				line += "  " + failStyle.Render("↓"+domain.Round2(diff.Neg()).StringFixed(2))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
