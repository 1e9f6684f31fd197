package payment_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/brintopos/brintopos/internal/domain"
	"github.com/brintopos/brintopos/internal/domain/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCreator struct {
	drafts []domain.InvoiceDraft
	err    error
}

func (r *recordingCreator) Create(d domain.InvoiceDraft) (domain.Invoice, error) {
	if r.err != nil {
		return domain.Invoice{}, r.err
	}
	r.drafts = append(r.drafts, d)
	return domain.Invoice{
		ID:            fmt.Sprintf("inv-%d", len(r.drafts)),
		Number:        len(r.drafts),
		TableNumber:   d.TableNumber,
		Items:         d.Items,
		Subtotal:      d.Subtotal,
		Tax:           d.Tax,
		Total:         d.Total,
		PaymentMethod: d.PaymentMethod,
	}, nil
}

// 1000 subtotal at 5% VAT.
func newSession(t *testing.T, c payment.InvoiceCreator) *payment.Session {
	t.Helper()
	p, err := domain.NewPricingPolicy("VAT", domain.MustMoney("0.05"))
	require.NoError(t, err)
	d := p.Draft(3, []domain.OrderLine{{ItemID: "k", Name: "Kacchi", Price: decimal.NewFromInt(500), Quantity: 2}})
	s, err := payment.NewSession(d, c)
	require.NoError(t, err)
	return s
}

func TestValidateCash(t *testing.T) {
	total := domain.MustMoney("1050.00")

	change, err := payment.ValidateCash(domain.MustMoney("1100.00"), total)
	require.NoError(t, err)
	assert.Equal(t, "50.00", change.StringFixed(2))

	change, err = payment.ValidateCash(total, total)
	require.NoError(t, err)
	assert.True(t, change.IsZero())

	_, err = payment.ValidateCash(domain.MustMoney("900.00"), total)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestNewSession_EmptyOrder(t *testing.T) {
	_, err := payment.NewSession(domain.InvoiceDraft{}, &recordingCreator{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSession_CashFlow(t *testing.T) {
	c := &recordingCreator{}
	s := newSession(t, c)
	assert.Equal(t, payment.StateSelecting, s.State())

	require.NoError(t, s.ChooseMethod(domain.PaymentCash))
	assert.Equal(t, payment.StateCashAmountPending, s.State())

	_, err := s.TenderCash(domain.MustMoney("900.00"))
	var short *domain.InsufficientFundsError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, "150.00", short.Shortfall().StringFixed(2))
	assert.Equal(t, payment.StateCashAmountPending, s.State())

	change, err := s.TenderCash(domain.MustMoney("1100.00"))
	require.NoError(t, err)
	assert.Equal(t, "50.00", change.StringFixed(2))
	assert.Equal(t, payment.StateValidated, s.State())

	r, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, payment.StateCompleted, s.State())
	assert.Equal(t, domain.PaymentCash, r.Invoice.PaymentMethod)
	assert.Equal(t, "1100.00", r.Tendered.StringFixed(2))
	assert.Equal(t, "50.00", r.Change.StringFixed(2))
	require.Len(t, c.drafts, 1)
}

func TestSession_CardFlow(t *testing.T) {
	c := &recordingCreator{}
	s := newSession(t, c)

	require.NoError(t, s.ChooseMethod(domain.PaymentCard))
	assert.Equal(t, payment.StateMethodChosen, s.State())

	r, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCard, r.Invoice.PaymentMethod)
	assert.True(t, r.Change.IsZero())
	assert.Equal(t, "1050.00", r.Tendered.StringFixed(2))
}

func TestSession_CompleteTwiceCreatesOneInvoice(t *testing.T) {
	c := &recordingCreator{}
	s := newSession(t, c)
	require.NoError(t, s.ChooseMethod(domain.PaymentMobile))

	first, err := s.Complete()
	require.NoError(t, err)
	second, err := s.Complete()
	require.NoError(t, err)

	assert.Len(t, c.drafts, 1)
	assert.Equal(t, first.Invoice.ID, second.Invoice.ID)
}

func TestSession_CompleteBeforeReady(t *testing.T) {
	c := &recordingCreator{}
	s := newSession(t, c)

	_, err := s.Complete()
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, s.ChooseMethod(domain.PaymentCash))
	_, err = s.Complete()
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, payment.StateCashAmountPending, s.State())
	assert.Empty(t, c.drafts)
}

func TestSession_ChooseMethodInvalid(t *testing.T) {
	s := newSession(t, &recordingCreator{})
	assert.ErrorIs(t, s.ChooseMethod("cheque"), domain.ErrValidation)
	assert.Equal(t, payment.StateSelecting, s.State())
}

func TestSession_SwitchMethodClearsTender(t *testing.T) {
	s := newSession(t, &recordingCreator{})
	require.NoError(t, s.ChooseMethod(domain.PaymentCash))
	_, err := s.TenderCash(domain.MustMoney("2000"))
	require.NoError(t, err)

	require.NoError(t, s.ChooseMethod(domain.PaymentCard))
	assert.Equal(t, payment.StateMethodChosen, s.State())
	assert.True(t, s.Tendered().IsZero())
}

func TestSession_TenderCashRequiresCash(t *testing.T) {
	s := newSession(t, &recordingCreator{})
	require.NoError(t, s.ChooseMethod(domain.PaymentCard))
	_, err := s.TenderCash(domain.MustMoney("2000"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSession_Validate(t *testing.T) {
	s := newSession(t, &recordingCreator{})
	assert.ErrorIs(t, s.Validate(), domain.ErrValidation)
	require.NoError(t, s.ChooseMethod(domain.PaymentMobile))
	require.NoError(t, s.Validate())
	assert.Equal(t, payment.StateValidated, s.State())
}

func TestSession_CreatorFailureKeepsState(t *testing.T) {
	c := &recordingCreator{err: errors.New("ledger offline")}
	s := newSession(t, c)
	require.NoError(t, s.ChooseMethod(domain.PaymentCard))

	_, err := s.Complete()
	assert.Error(t, err)
	assert.Equal(t, payment.StateMethodChosen, s.State())

	c.err = nil
	_, err = s.Complete()
	require.NoError(t, err)
	assert.Len(t, c.drafts, 1)
}

func TestSession_NoChangesAfterCompletion(t *testing.T) {
	s := newSession(t, &recordingCreator{})
	require.NoError(t, s.ChooseMethod(domain.PaymentCard))
	_, err := s.Complete()
	require.NoError(t, err)

	assert.ErrorIs(t, s.ChooseMethod(domain.PaymentCash), domain.ErrValidation)
}
