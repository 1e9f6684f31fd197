// Package ledger is the append-only store of finalized invoices.
package ledger

import (
	"strings"
	"sync"

	"github.com/brintopos/brintopos/internal/domain"
)

// Ledger is safe for concurrent use. Every invoice handed out is a deep copy.
type Ledger struct {
	mu       sync.RWMutex
	ids      domain.IDGenerator
	clock    domain.Clock
	voidGate domain.Authorizer
	invoices []domain.Invoice
	index    map[string]int
}

// New returns an empty ledger. voidGate guards Void.
func New(ids domain.IDGenerator, clock domain.Clock, voidGate domain.Authorizer) *Ledger {
	return &Ledger{
		ids:      ids,
		clock:    clock,
		voidGate: voidGate,
		index:    make(map[string]int),
	}
}

// Create finalizes draft into a new invoice.
func (l *Ledger) Create(draft domain.InvoiceDraft) (domain.Invoice, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Invoice{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	inv := domain.Invoice{
		ID:            l.ids.NextID(),
		Number:        len(l.invoices) + 1,
		TableNumber:   draft.TableNumber,
		Items:         append([]domain.OrderLine(nil), draft.Items...),
		Subtotal:      draft.Subtotal,
		Tax:           draft.Tax,
		TaxLabel:      draft.TaxLabel,
		TaxRate:       draft.TaxRate,
		Total:         draft.Total,
		PaymentMethod: draft.PaymentMethod,
		Timestamp:     l.clock.Now(),
	}
	if _, dup := l.index[inv.ID]; dup {
		return domain.Invoice{}, domain.NewValidationError("id", "duplicate invoice id %q", inv.ID)
	}
	l.index[inv.ID] = len(l.invoices)
	l.invoices = append(l.invoices, inv)
	return inv.Clone(), nil
}

// Update amends the table number and/or payment method. Voided invoices
// cannot be amended.
func (l *Ledger) Update(id string, patch domain.InvoicePatch) (domain.Invoice, error) {
	if patch.TableNumber != nil && *patch.TableNumber < 1 {
		return domain.Invoice{}, domain.NewValidationError("table_number", "table number %d must be at least 1", *patch.TableNumber)
	}
	if patch.PaymentMethod != nil && !patch.PaymentMethod.Valid() {
		return domain.Invoice{}, domain.NewValidationError("payment_method", "unknown payment method %q", *patch.PaymentMethod)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	inv, err := l.find(id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if inv.Voided {
		return domain.Invoice{}, domain.NewValidationError("", "invoice %s is voided", id)
	}
	if patch.TableNumber != nil {
		inv.TableNumber = *patch.TableNumber
	}
	if patch.PaymentMethod != nil {
		inv.PaymentMethod = *patch.PaymentMethod
	}
	return inv.Clone(), nil
}

// Void marks an invoice voided once the void gate accepts credential.
// A rejected credential leaves the ledger untouched.
func (l *Ledger) Void(id, credential, reason string) (domain.Invoice, error) {
	if err := l.voidGate.Check(credential); err != nil {
		return domain.Invoice{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	inv, err := l.find(id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if inv.Voided {
		return domain.Invoice{}, domain.NewValidationError("", "invoice %s is already voided", id)
	}
	at := l.clock.Now()
	inv.Voided = true
	inv.VoidedAt = &at
	inv.VoidReason = strings.TrimSpace(reason)
	return inv.Clone(), nil
}

func (l *Ledger) Get(id string) (domain.Invoice, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	inv, err := l.find(id)
	if err != nil {
		return domain.Invoice{}, err
	}
	return inv.Clone(), nil
}

// Last returns the most recent invoice.
func (l *Ledger) Last() (domain.Invoice, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.invoices) == 0 {
		return domain.Invoice{}, domain.NewNotFoundError("invoice", "last")
	}
	return l.invoices[len(l.invoices)-1].Clone(), nil
}

// List returns all invoices in creation order.
func (l *Ledger) List() []domain.Invoice {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Invoice, len(l.invoices))
	for i, inv := range l.invoices {
		out[i] = inv.Clone()
	}
	return out
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.invoices)
}

func (l *Ledger) Summary() domain.LedgerSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return domain.Summarize(l.invoices)
}

// find returns a pointer into the ledger. Callers hold the lock.
func (l *Ledger) find(id string) (*domain.Invoice, error) {
	i, ok := l.index[id]
	if !ok {
		return nil, domain.NewNotFoundError("invoice", id)
	}
	return &l.invoices[i], nil
}

func validateDraft(d domain.InvoiceDraft) error {
	if len(d.Items) == 0 {
		return domain.NewValidationError("items", "invoice has no items")
	}
	for _, it := range d.Items {
		if it.Quantity < 1 {
			return domain.NewValidationError("items", "line %q has quantity %d", it.ItemID, it.Quantity)
		}
	}
	if d.TableNumber < 1 {
		return domain.NewValidationError("table_number", "table number %d must be at least 1", d.TableNumber)
	}
	if !d.PaymentMethod.Valid() {
		return domain.NewValidationError("payment_method", "unknown payment method %q", d.PaymentMethod)
	}
	if !domain.Round2(domain.SumLines(d.Items)).Equal(d.Subtotal) {
		return domain.NewValidationError("subtotal", "subtotal %s does not match items", d.Subtotal.StringFixed(2))
	}
	if !d.Total.Equal(d.Subtotal.Add(d.Tax)) {
		return domain.NewValidationError("total", "total %s is not subtotal plus tax", d.Total.StringFixed(2))
	}
	return nil
}
