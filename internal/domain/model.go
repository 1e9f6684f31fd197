package domain

import (
	"strings"
	"time"

	"github.com/fatih/camelcase"
	"github.com/shopspring/decimal"
)

// Category groups menu items on the POS screen.
type Category string

const (
	CategoryAll         Category = "All"
	CategoryAppetizers  Category = "Appetizers"
	CategoryMainCourses Category = "Main Courses"
	CategoryDesserts    Category = "Desserts"
	CategoryBeverages   Category = "Beverages"
)

// ValidCategories lists the categories a menu item may belong to, in menu order.
var ValidCategories = []Category{
	CategoryAppetizers,
	CategoryMainCourses,
	CategoryDesserts,
	CategoryBeverages,
}

// Valid reports whether c is one of the fixed item categories. "All" is a
// filter, not a category, so it is not valid here.
func (c Category) Valid() bool {
	for _, vc := range ValidCategories {
		if c == vc {
			return true
		}
	}
	return false
}

// ParseCategory resolves loosely written category names such as
// "MainCourses", "main-courses" or "main courses" to a Category.
// "all" and the empty string resolve to CategoryAll.
func ParseCategory(s string) (Category, error) {
	key := categoryKey(s)
	if key == "" || key == "all" {
		return CategoryAll, nil
	}
	for _, c := range ValidCategories {
		if categoryKey(string(c)) == key {
			return c, nil
		}
	}
	return "", NewValidationError("category", "unknown category %q", s)
}

func categoryKey(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	var words []string
	for _, field := range strings.Fields(s) {
		for _, w := range camelcase.Split(field) {
			words = append(words, strings.ToLower(w))
		}
	}
	return strings.Join(words, " ")
}

// MenuItem is a sellable item owned by the menu catalog.
type MenuItem struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Category    Category        `json:"category" yaml:"category"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string          `json:"image,omitempty" yaml:"image,omitempty"`
}

// OrderLine is a snapshot of a menu item taken when it was added to an order.
// ItemID doubles as the line id.
type OrderLine struct {
	ItemID              string          `json:"item_id"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	Category            Category        `json:"category"`
	Quantity            int             `json:"quantity"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

// NewOrderLine snapshots item with quantity 1.
func NewOrderLine(item MenuItem) OrderLine {
	return OrderLine{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Category: item.Category,
		Quantity: 1,
	}
}

// LineTotal returns price × quantity, unrounded.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SumLines returns the exact subtotal of lines.
func SumLines(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// CountItems returns the total quantity across lines.
func CountItems(lines []OrderLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func copyLines(lines []OrderLine) []OrderLine {
	if lines == nil {
		return nil
	}
	out := make([]OrderLine, len(lines))
	copy(out, lines)
	return out
}

// PaymentMethod is how an invoice was settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

var ValidPaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentMobile}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

// DisplayName is the label printed on receipts.
func (m PaymentMethod) DisplayName() string {
	switch m {
	case PaymentCash:
		return "Cash"
	case PaymentCard:
		return "Credit/Debit Card"
	case PaymentMobile:
		return "Mobile Payment"
	}
	return string(m)
}

// ParsePaymentMethod accepts the method name in any case.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", NewValidationError("payment_method", "unknown payment method %q (valid: cash, card, mobile)", s)
	}
	return m, nil
}

// InvoiceDraft is everything needed to finalize an invoice.
type InvoiceDraft struct {
	TableNumber   int             `json:"table_number"`
	Items         []OrderLine     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	TaxLabel      string          `json:"tax_label"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// Invoice is a finalized sale. Items and amounts never change after creation.
type Invoice struct {
	ID            string          `json:"id"`
	Number        int             `json:"number"`
	TableNumber   int             `json:"table_number"`
	Items         []OrderLine     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	TaxLabel      string          `json:"tax_label"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Timestamp     time.Time       `json:"timestamp"`
	Voided        bool            `json:"voided"`
	VoidedAt      *time.Time      `json:"voided_at,omitempty"`
	VoidReason    string          `json:"void_reason,omitempty"`
}

// Clone returns a deep copy of inv.
func (inv Invoice) Clone() Invoice {
	out := inv
	out.Items = copyLines(inv.Items)
	if inv.VoidedAt != nil {
		at := *inv.VoidedAt
		out.VoidedAt = &at
	}
	return out
}

// ItemCount returns the total quantity of items on the invoice.
func (inv Invoice) ItemCount() int { return CountItems(inv.Items) }

// InvoicePatch carries the fields that may be amended after finalization.
// Nil fields are left untouched.
type InvoicePatch struct {
	TableNumber   *int           `json:"table_number,omitempty"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
}

// KitchenTicket is the order slip sent to the kitchen for an invoice.
type KitchenTicket struct {
	InvoiceID   string       `json:"invoice_id"`
	Number      int          `json:"number"`
	TableNumber int          `json:"table_number"`
	Time        time.Time    `json:"time"`
	Lines       []TicketLine `json:"lines"`
	TotalItems  int          `json:"total_items"`
}

type TicketLine struct {
	Name                string `json:"name"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// NewKitchenTicket builds the kitchen slip for inv. Prices are left off.
func NewKitchenTicket(inv Invoice) KitchenTicket {
	kt := KitchenTicket{
		InvoiceID:   inv.ID,
		Number:      inv.Number,
		TableNumber: inv.TableNumber,
		Time:        inv.Timestamp,
		TotalItems:  inv.ItemCount(),
	}
	for _, l := range inv.Items {
		kt.Lines = append(kt.Lines, TicketLine{
			Name:                l.Name,
			Quantity:            l.Quantity,
			SpecialInstructions: l.SpecialInstructions,
		})
	}
	return kt
}

// MethodTotal aggregates settled invoices for one payment method.
type MethodTotal struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// LedgerSummary is the dashboard view over the ledger. Voided invoices are
// counted but never contribute to revenue or tax.
type LedgerSummary struct {
	InvoiceCount  int                           `json:"invoice_count"`
	ActiveCount   int                           `json:"active_count"`
	VoidedCount   int                           `json:"voided_count"`
	Revenue       decimal.Decimal               `json:"revenue"`
	Tax           decimal.Decimal               `json:"tax"`
	VoidedTotal   decimal.Decimal               `json:"voided_total"`
	AverageTicket decimal.Decimal               `json:"average_ticket"`
	ByMethod      map[PaymentMethod]MethodTotal `json:"by_method"`
}

// Summarize computes the ledger summary for invoices.
func Summarize(invoices []Invoice) LedgerSummary {
	s := LedgerSummary{
		Revenue:       decimal.Zero,
		Tax:           decimal.Zero,
		VoidedTotal:   decimal.Zero,
		AverageTicket: decimal.Zero,
		ByMethod:      make(map[PaymentMethod]MethodTotal),
	}
	for _, inv := range invoices {
		s.InvoiceCount++
		if inv.Voided {
			s.VoidedCount++
			s.VoidedTotal = s.VoidedTotal.Add(inv.Total)
			continue
		}
		s.ActiveCount++
		s.Revenue = s.Revenue.Add(inv.Total)
		s.Tax = s.Tax.Add(inv.Tax)
		mt := s.ByMethod[inv.PaymentMethod]
		mt.Count++
		mt.Total = mt.Total.Add(inv.Total)
		s.ByMethod[inv.PaymentMethod] = mt
	}
	if s.ActiveCount > 0 {
		s.AverageTicket = Round2(s.Revenue.Div(decimal.NewFromInt(int64(s.ActiveCount))))
	}
	return s
}

// SummaryEntry is one archived end-of-run summary.
type SummaryEntry struct {
	Timestamp string `json:"timestamp"`
	Till      int64  `json:"till"`
	// ConfigRevision is the git commit of the config directory, when known.
	ConfigRevision string        `json:"config_revision,omitempty"`
	Summary        LedgerSummary `json:"summary"`
}
