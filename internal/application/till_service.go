package application

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/brintopos/brintopos/internal/domain"
	"github.com/brintopos/brintopos/internal/domain/order"
	"github.com/brintopos/brintopos/internal/domain/payment"
)

// OrderView is the live order panel: lines plus the running quote.
type OrderView struct {
	Table     int                `json:"table"`
	Lines     []domain.OrderLine `json:"lines"`
	ItemCount int                `json:"item_count"`
	Quote     domain.Quote       `json:"quote"`
	Checkout  payment.State      `json:"checkout,omitempty"`
}

// TillService drives the POS screen: table selection, the order being
// built, and checkout. All calls are serialized.
type TillService struct {
	mu      sync.Mutex
	rt      *Runtime
	order   *order.Builder
	session *payment.Session
	log     logrus.FieldLogger
}

func NewTillService(rt *Runtime) *TillService {
	return &TillService{
		rt:    rt,
		order: order.NewBuilder(rt.DefaultTable()),
		log:   rt.Log.WithField("component", "till"),
	}
}

// Unlock checks the POS gate.
func (s *TillService) Unlock(credential string) error {
	return s.rt.Gates.POS.Check(credential)
}

// Menu lists sellable items for a category tab.
func (s *TillService) Menu(category domain.Category) []domain.MenuItem {
	return s.rt.Catalog.List(category)
}

func (s *TillService) SelectTable(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.order.SetTable(n); err != nil {
		return err
	}
	s.resetCheckout()
	s.log.WithField("table", n).Debug("table selected")
	return nil
}

// AddItem adds one of the menu item to the order.
func (s *TillService) AddItem(itemID string) (domain.OrderLine, error) {
	item, err := s.rt.Catalog.Get(itemID)
	if err != nil {
		return domain.OrderLine{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.order.AddItem(item)
	s.resetCheckout()
	s.log.WithFields(logrus.Fields{"item_id": itemID, "quantity": line.Quantity}).Debug("item added")
	return line, nil
}

func (s *TillService) SetQuantity(itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.order.SetQuantity(itemID, quantity); err != nil {
		return err
	}
	s.resetCheckout()
	return nil
}

func (s *TillService) RemoveItem(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order.RemoveLine(itemID)
	s.resetCheckout()
}

func (s *TillService) SetInstructions(itemID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.order.SetInstructions(itemID, text); err != nil {
		return err
	}
	s.resetCheckout()
	return nil
}

func (s *TillService) ClearOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order.Clear()
	s.resetCheckout()
}

// Order returns the current order with its quote.
func (s *TillService) Order() OrderView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := OrderView{
		Table:     s.order.Table(),
		Lines:     s.order.Lines(),
		ItemCount: s.order.ItemCount(),
		Quote:     s.rt.Pricing.Quote(s.order.Subtotal()),
	}
	if s.session != nil {
		v.Checkout = s.session.State()
	}
	return v
}

// BeginCheckout freezes the current order into a payment session.
func (s *TillService) BeginCheckout() (domain.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.order.IsEmpty() {
		return domain.Quote{}, domain.NewValidationError("", "order is empty")
	}
	draft := s.rt.Pricing.Draft(s.order.Table(), s.order.Lines())
	session, err := payment.NewSession(draft, s.rt.Ledger)
	if err != nil {
		return domain.Quote{}, err
	}
	s.session = session
	return s.rt.Pricing.Quote(s.order.Subtotal()), nil
}

func (s *TillService) ChooseMethod(m domain.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return errNoCheckout()
	}
	return s.session.ChooseMethod(m)
}

// TenderCash records the cash handed over and returns the change due.
func (s *TillService) TenderCash(amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return decimal.Zero, errNoCheckout()
	}
	return s.session.TenderCash(amount)
}

// CompleteCheckout finalizes the invoice and resets the order. Repeating
// the call before the order changes returns the same receipt.
func (s *TillService) CompleteCheckout() (payment.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return payment.Receipt{}, errNoCheckout()
	}
	already := s.session.State() == payment.StateCompleted
	r, err := s.session.Complete()
	if err != nil {
		return payment.Receipt{}, err
	}
	if !already {
		s.order.Clear()
		s.log.WithFields(logrus.Fields{
			"invoice_id": r.Invoice.ID,
			"table":      r.Invoice.TableNumber,
			"method":     r.Invoice.PaymentMethod,
			"total":      r.Invoice.Total.StringFixed(2),
		}).Info("invoice finalized")
	}
	return r, nil
}

// Checkout runs a whole checkout in one call: begin, choose, tender, complete.
// tendered is ignored unless method is cash.
func (s *TillService) Checkout(method domain.PaymentMethod, tendered decimal.Decimal) (payment.Receipt, error) {
	if _, err := s.BeginCheckout(); err != nil {
		return payment.Receipt{}, err
	}
	if err := s.ChooseMethod(method); err != nil {
		return payment.Receipt{}, err
	}
	if method == domain.PaymentCash {
		if _, err := s.TenderCash(tendered); err != nil {
			return payment.Receipt{}, err
		}
	}
	return s.CompleteCheckout()
}

func (s *TillService) CancelCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// KitchenTicket builds the kitchen slip for a finalized invoice.
func (s *TillService) KitchenTicket(invoiceID string) (domain.KitchenTicket, error) {
	inv, err := s.rt.Ledger.Get(invoiceID)
	if err != nil {
		return domain.KitchenTicket{}, err
	}
	return domain.NewKitchenTicket(inv), nil
}

// resetCheckout drops a session once the order it priced has changed.
func (s *TillService) resetCheckout() {
	s.session = nil
}

func errNoCheckout() error {
	return domain.NewValidationError("", "no checkout in progress")
}
