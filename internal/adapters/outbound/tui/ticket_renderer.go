package tui

import (
	"fmt"
	"strings"

	"github.com/brintopos/brintopos/internal/domain"
)

// RenderKitchenTicket prints the kitchen order ticket. No prices.
func RenderKitchenTicket(kt domain.KitchenTicket) string {
	var b strings.Builder

	title := headerStyle.Render("KITCHEN ORDER TICKET")
	sub := titleStyle.Render(fmt.Sprintf("Table #%d", kt.TableNumber)) + "  " +
		dimStyle.Render(fmt.Sprintf("Order #%d  ·  %s", kt.Number, kt.Time.Format("15:04")))
	b.WriteString(boxStyle.Render(title + "\n" + sub))
	b.WriteString("\n\n")

	for _, l := range kt.Lines {
		fmt.Fprintf(&b, "  %s  %s\n", totalStyle.Render(padLeft(fmt.Sprintf("%d×", l.Quantity), 4)), titleStyle.Render(l.Name))
		if l.SpecialInstructions != "" {
			fmt.Fprintf(&b, "        %s\n", warnStyle.Render("NOTE: "+l.SpecialInstructions))
		}
	}

	b.WriteString("  " + separatorLine + "\n")
	fmt.Fprintf(&b, "  %s %d\n", dimStyle.Render("Total items:"), kt.TotalItems)
	return b.String()
}
