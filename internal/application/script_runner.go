package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/brintopos/brintopos/internal/domain"
	"github.com/brintopos/brintopos/internal/domain/payment"
)

// Script is a recorded service session replayed against one till.
type Script struct {
	Name       string       `yaml:"name" json:"name"`
	Credential string       `yaml:"credential" json:"-"`
	Steps      []ScriptStep `yaml:"steps" json:"steps"`
}

// ScriptStep is one till action. Fields not used by the action are ignored.
type ScriptStep struct {
	Action     string `yaml:"action" json:"action"`
	Item       string `yaml:"item,omitempty" json:"item,omitempty"`
	Quantity   *int   `yaml:"quantity,omitempty" json:"quantity,omitempty"`
	Table      int    `yaml:"table,omitempty" json:"table,omitempty"`
	Text       string `yaml:"text,omitempty" json:"text,omitempty"`
	Method     string `yaml:"method,omitempty" json:"method,omitempty"`
	Tendered   string `yaml:"tendered,omitempty" json:"tendered,omitempty"`
	Invoice    string `yaml:"invoice,omitempty" json:"invoice,omitempty"`
	Credential string `yaml:"credential,omitempty" json:"-"`
	Reason     string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// Script actions.
const (
	ActionTable    = "table"
	ActionAdd      = "add"
	ActionQuantity = "quantity"
	ActionRemove   = "remove"
	ActionNote     = "note"
	ActionClear    = "clear"
	ActionCheckout = "checkout"
	ActionTicket   = "ticket"
	ActionAmend    = "amend"
	ActionVoid     = "void"
)

// lastInvoice refers to the most recent invoice in invoice fields.
const lastInvoice = "last"

// StepResult records what one step produced. Rejected steps carry Error and
// leave the till as it was.
type StepResult struct {
	Index   int                   `json:"index"`
	Action  string                `json:"action"`
	Receipt *payment.Receipt      `json:"receipt,omitempty"`
	Ticket  *domain.KitchenTicket `json:"ticket,omitempty"`
	Invoice *domain.Invoice       `json:"invoice,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// ScriptReport is the outcome of a replayed session.
type ScriptReport struct {
	Name    string               `json:"name"`
	Steps   []StepResult         `json:"steps"`
	Order   OrderView            `json:"order"`
	Summary domain.LedgerSummary `json:"summary"`
}

// Failed counts rejected steps.
func (r ScriptReport) Failed() int {
	n := 0
	for _, s := range r.Steps {
		if s.Error != "" {
			n++
		}
	}
	return n
}

// ScriptRunner replays scripts through the till and dashboard services.
type ScriptRunner struct {
	till *TillService
	dash *DashboardService
}

func NewScriptRunner(till *TillService, dash *DashboardService) *ScriptRunner {
	return &ScriptRunner{till: till, dash: dash}
}

// Run unlocks the POS with the script credential and applies each step in
// order. Domain rejections are recorded per step; a malformed step stops
// the run.
func (r *ScriptRunner) Run(ctx context.Context, script Script) (ScriptReport, error) {
	if err := r.till.Unlock(script.Credential); err != nil {
		return ScriptReport{}, err
	}

	report := ScriptReport{Name: script.Name}
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res := StepResult{Index: i + 1, Action: strings.ToLower(strings.TrimSpace(step.Action))}
		if err := r.apply(&res, step); err != nil {
			if IsDomainError(err) {
				res.Error = err.Error()
			} else {
				return report, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
			}
		}
		report.Steps = append(report.Steps, res)
	}
	report.Order = r.till.Order()
	report.Summary = r.dash.Summary()
	return report, nil
}

func (r *ScriptRunner) apply(res *StepResult, step ScriptStep) error {
	switch res.Action {
	case ActionTable:
		return r.till.SelectTable(step.Table)

	case ActionAdd:
		times := 1
		if step.Quantity != nil {
			times = *step.Quantity
		}
		if times < 1 {
			return domain.NewValidationError("quantity", "must be at least 1 to add")
		}
		line, err := r.till.AddItem(step.Item)
		if err != nil {
			return err
		}
		if times == 1 {
			return nil
		}
		return r.till.SetQuantity(step.Item, line.Quantity+times-1)

	case ActionQuantity:
		if step.Quantity == nil {
			return fmt.Errorf("quantity is required")
		}
		return r.till.SetQuantity(step.Item, *step.Quantity)

	case ActionRemove:
		r.till.RemoveItem(step.Item)
		return nil

	case ActionNote:
		return r.till.SetInstructions(step.Item, step.Text)

	case ActionClear:
		r.till.ClearOrder()
		return nil

	case ActionCheckout:
		return r.checkout(res, step)

	case ActionTicket:
		id, err := r.invoiceID(step.Invoice)
		if err != nil {
			return err
		}
		kt, err := r.till.KitchenTicket(id)
		if err != nil {
			return err
		}
		res.Ticket = &kt
		return nil

	case ActionAmend:
		return r.amend(res, step)

	case ActionVoid:
		id, err := r.invoiceID(step.Invoice)
		if err != nil {
			return err
		}
		inv, err := r.dash.VoidInvoice(id, step.Credential, step.Reason)
		if err != nil {
			return err
		}
		res.Invoice = &inv
		return nil
	}
	return fmt.Errorf("unknown action %q", step.Action)
}

func (r *ScriptRunner) checkout(res *StepResult, step ScriptStep) error {
	method, err := domain.ParsePaymentMethod(step.Method)
	if err != nil {
		return err
	}
	if _, err := r.till.BeginCheckout(); err != nil {
		return err
	}
	if err := r.till.ChooseMethod(method); err != nil {
		return err
	}
	if method == domain.PaymentCash {
		amount, err := domain.ParseMoney("tendered", step.Tendered)
		if err != nil {
			return err
		}
		if _, err := r.till.TenderCash(amount); err != nil {
			r.till.CancelCheckout()
			return err
		}
	}
	receipt, err := r.till.CompleteCheckout()
	if err != nil {
		return err
	}
	res.Receipt = &receipt
	return nil
}

func (r *ScriptRunner) amend(res *StepResult, step ScriptStep) error {
	id, err := r.invoiceID(step.Invoice)
	if err != nil {
		return err
	}
	var patch domain.InvoicePatch
	if step.Table != 0 {
		table := step.Table
		patch.TableNumber = &table
	}
	if step.Method != "" {
		m, err := domain.ParsePaymentMethod(step.Method)
		if err != nil {
			return err
		}
		patch.PaymentMethod = &m
	}
	inv, err := r.dash.UpdateInvoice(id, patch)
	if err != nil {
		return err
	}
	res.Invoice = &inv
	return nil
}

func (r *ScriptRunner) invoiceID(ref string) (string, error) {
	if ref != "" && ref != lastInvoice {
		return ref, nil
	}
	inv, err := r.till.rt.Ledger.Last()
	if err != nil {
		return "", err
	}
	return inv.ID, nil
}
