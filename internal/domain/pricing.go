package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PricingPolicy computes tax and totals from a subtotal at a fixed rate.
type PricingPolicy struct {
	Label string
	Rate  decimal.Decimal
}

// NewPricingPolicy rejects rates outside [0, 1].
func NewPricingPolicy(label string, rate decimal.Decimal) (PricingPolicy, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return PricingPolicy{}, NewValidationError("tax.rate", "rate %s must be between 0 and 1", rate.String())
	}
	if label == "" {
		label = "Tax"
	}
	return PricingPolicy{Label: label, Rate: rate}, nil
}

// Tax returns round2(subtotal × rate).
func (p PricingPolicy) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return Round2(subtotal.Mul(p.Rate))
}

// Total returns round2(subtotal) + Tax(subtotal).
func (p PricingPolicy) Total(subtotal decimal.Decimal) decimal.Decimal {
	return Round2(subtotal).Add(p.Tax(subtotal))
}

// Quote is a priced subtotal ready to display or finalize.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Label    string          `json:"tax_label"`
	Rate     decimal.Decimal `json:"tax_rate"`
}

func (p PricingPolicy) Quote(subtotal decimal.Decimal) Quote {
	return Quote{
		Subtotal: Round2(subtotal),
		Tax:      p.Tax(subtotal),
		Total:    p.Total(subtotal),
		Label:    p.Label,
		Rate:     p.Rate,
	}
}

// TaxLine renders the label with its percentage, e.g. "VAT (5%)".
func (p PricingPolicy) TaxLine() string {
	return fmt.Sprintf("%s (%s%%)", p.Label, p.Rate.Mul(decimal.NewFromInt(100)).String())
}

// Draft prices lines into an invoice draft for table.
func (p PricingPolicy) Draft(table int, lines []OrderLine) InvoiceDraft {
	q := p.Quote(SumLines(lines))
	return InvoiceDraft{
		TableNumber: table,
		Items:       copyLines(lines),
		Subtotal:    q.Subtotal,
		Tax:         q.Tax,
		TaxLabel:    q.Label,
		TaxRate:     q.Rate,
		Total:       q.Total,
	}
}
