// Package order builds the line items for the table being served.
package order

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/brintopos/brintopos/internal/domain"
)

// Builder owns the order lines for one table. It is not safe for
// concurrent use; the till serializes access.
type Builder struct {
	table int
	lines []domain.OrderLine
}

// NewBuilder starts an empty order. Tables below 1 become table 1.
func NewBuilder(table int) *Builder {
	if table < 1 {
		table = 1
	}
	return &Builder{table: table}
}

func (b *Builder) Table() int { return b.table }

func (b *Builder) SetTable(n int) error {
	if n < 1 {
		return domain.NewValidationError("table", "table number %d must be at least 1", n)
	}
	b.table = n
	return nil
}

// AddItem increments the line for item, or appends a new line at quantity 1.
// The line keeps the price the item had at this moment.
func (b *Builder) AddItem(item domain.MenuItem) domain.OrderLine {
	if i := b.indexOf(item.ID); i >= 0 {
		b.lines[i].Quantity++
		return b.lines[i]
	}
	line := domain.NewOrderLine(item)
	b.lines = append(b.lines, line)
	return line
}

// SetQuantity replaces a line's quantity. Zero removes the line.
func (b *Builder) SetQuantity(lineID string, quantity int) error {
	if quantity < 0 {
		return domain.NewValidationError("quantity", "must not be negative, got %d", quantity)
	}
	i := b.indexOf(lineID)
	if i < 0 {
		return domain.NewNotFoundError("order line", lineID)
	}
	if quantity == 0 {
		b.removeAt(i)
		return nil
	}
	b.lines[i].Quantity = quantity
	return nil
}

// RemoveLine drops a line. Unknown ids are ignored.
func (b *Builder) RemoveLine(lineID string) {
	if i := b.indexOf(lineID); i >= 0 {
		b.removeAt(i)
	}
}

// SetInstructions attaches kitchen notes to a line.
func (b *Builder) SetInstructions(lineID, text string) error {
	i := b.indexOf(lineID)
	if i < 0 {
		return domain.NewNotFoundError("order line", lineID)
	}
	b.lines[i].SpecialInstructions = strings.TrimSpace(text)
	return nil
}

// Clear empties the order. The table stays selected.
func (b *Builder) Clear() {
	b.lines = nil
}

// Subtotal is the exact Σ(price × quantity).
func (b *Builder) Subtotal() decimal.Decimal {
	return domain.SumLines(b.lines)
}

// Lines returns a copy of the current lines in insertion order.
func (b *Builder) Lines() []domain.OrderLine {
	out := make([]domain.OrderLine, len(b.lines))
	copy(out, b.lines)
	return out
}

func (b *Builder) ItemCount() int { return domain.CountItems(b.lines) }

func (b *Builder) IsEmpty() bool { return len(b.lines) == 0 }

func (b *Builder) indexOf(lineID string) int {
	for i, l := range b.lines {
		if l.ItemID == lineID {
			return i
		}
	}
	return -1
}

func (b *Builder) removeAt(i int) {
	b.lines = append(b.lines[:i:i], b.lines[i+1:]...)
}
