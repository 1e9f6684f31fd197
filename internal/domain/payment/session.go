// Package payment runs one checkout attempt from method choice to a
// finalized invoice.
package payment

import (
	"github.com/shopspring/decimal"

	"github.com/brintopos/brintopos/internal/domain"
)

// State is where a checkout attempt stands.
type State string

const (
	StateSelecting         State = "selecting"
	StateMethodChosen      State = "method_chosen"
	StateCashAmountPending State = "cash_amount_pending"
	StateValidated         State = "validated"
	StateCompleted         State = "completed"
)

// InvoiceCreator finalizes drafts. Implemented by the ledger.
type InvoiceCreator interface {
	Create(draft domain.InvoiceDraft) (domain.Invoice, error)
}

// Receipt is the outcome of a completed checkout.
type Receipt struct {
	Invoice  domain.Invoice  `json:"invoice"`
	Tendered decimal.Decimal `json:"tendered"`
	Change   decimal.Decimal `json:"change"`
}

// ValidateCash returns the change owed, or InsufficientFundsError when
// tendered is below total.
func ValidateCash(tendered, total decimal.Decimal) (decimal.Decimal, error) {
	if tendered.LessThan(total) {
		return decimal.Zero, &domain.InsufficientFundsError{Tendered: tendered, Total: total}
	}
	return tendered.Sub(total), nil
}

// Session is one checkout attempt. Rejected steps leave it where it was.
// Complete creates at most one invoice.
type Session struct {
	draft    domain.InvoiceDraft
	creator  InvoiceCreator
	state    State
	method   domain.PaymentMethod
	tendered decimal.Decimal
	change   decimal.Decimal
	receipt  *Receipt
}

// NewSession starts checkout for a priced draft.
func NewSession(draft domain.InvoiceDraft, creator InvoiceCreator) (*Session, error) {
	if len(draft.Items) == 0 {
		return nil, domain.NewValidationError("", "order is empty")
	}
	return &Session{
		draft:   draft,
		creator: creator,
		state:   StateSelecting,
	}, nil
}

func (s *Session) State() State { return s.state }

func (s *Session) Method() domain.PaymentMethod { return s.method }

func (s *Session) Total() decimal.Decimal { return s.draft.Total }

func (s *Session) Tendered() decimal.Decimal { return s.tendered }

func (s *Session) Change() decimal.Decimal { return s.change }

// ChooseMethod selects or re-selects the payment method.
func (s *Session) ChooseMethod(m domain.PaymentMethod) error {
	if s.state == StateCompleted {
		return domain.NewValidationError("", "checkout already completed")
	}
	if !m.Valid() {
		return domain.NewValidationError("payment_method", "unknown payment method %q", m)
	}
	s.method = m
	s.tendered = decimal.Zero
	s.change = decimal.Zero
	if m == domain.PaymentCash {
		s.state = StateCashAmountPending
	} else {
		s.state = StateMethodChosen
	}
	return nil
}

// TenderCash records the cash handed over and returns the change.
func (s *Session) TenderCash(amount decimal.Decimal) (decimal.Decimal, error) {
	if s.state != StateCashAmountPending && !(s.state == StateValidated && s.method == domain.PaymentCash) {
		return decimal.Zero, domain.NewValidationError("", "cash is not the chosen payment method")
	}
	change, err := ValidateCash(amount, s.draft.Total)
	if err != nil {
		return decimal.Zero, err
	}
	s.tendered = amount
	s.change = change
	s.state = StateValidated
	return change, nil
}

// Validate confirms a non-cash method is ready to complete.
func (s *Session) Validate() error {
	if err := s.ready(); err != nil {
		return err
	}
	if s.state == StateMethodChosen {
		s.state = StateValidated
	}
	return nil
}

// Complete finalizes the invoice. Later calls return the same receipt.
func (s *Session) Complete() (Receipt, error) {
	if s.state == StateCompleted {
		return s.receipt.clone(), nil
	}
	if err := s.ready(); err != nil {
		return Receipt{}, err
	}

	d := s.draft
	d.PaymentMethod = s.method
	inv, err := s.creator.Create(d)
	if err != nil {
		return Receipt{}, err
	}

	r := Receipt{Invoice: inv, Tendered: s.tendered, Change: s.change}
	if s.method != domain.PaymentCash {
		r.Tendered = inv.Total
	}
	s.receipt = &r
	s.state = StateCompleted
	return r.clone(), nil
}

func (s *Session) ready() error {
	switch s.state {
	case StateSelecting:
		return domain.NewValidationError("payment_method", "no payment method chosen")
	case StateCashAmountPending:
		return domain.NewValidationError("amount", "cash amount required")
	}
	return nil
}

func (r Receipt) clone() Receipt {
	r.Invoice = r.Invoice.Clone()
	return r
}
