package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brintopos/brintopos/internal/application"
	"github.com/brintopos/brintopos/internal/domain"
)

func intp(n int) *int { return &n }

func dinnerScript() application.Script {
	return application.Script{
		Name:       "table four dinner",
		Credential: "pos123",
		Steps: []application.ScriptStep{
			{Action: "table", Table: 4},
			{Action: "add", Item: "kacchi", Quantity: intp(2)},
			{Action: "add", Item: "firni"},
			{Action: "note", Item: "kacchi", Text: "extra raita"},
			{Action: "checkout", Method: "cash", Tendered: "900"},
			{Action: "checkout", Method: "cash", Tendered: "1100"},
			{Action: "ticket", Invoice: "last"},
			{Action: "amend", Invoice: "last", Method: "card"},
			{Action: "void", Invoice: "last", Credential: "nope"},
		},
	}
}

func TestScriptRunner_Run(t *testing.T) {
	f := newFixture(t, bdtMenu)
	runner := application.NewScriptRunner(f.till, f.dash)

	report, err := runner.Run(context.Background(), dinnerScript())
	require.NoError(t, err)
	require.Len(t, report.Steps, 9)
	assert.Equal(t, 2, report.Failed())

	short := report.Steps[4]
	assert.Contains(t, short.Error, "insufficient funds")
	assert.Nil(t, short.Receipt)

	paid := report.Steps[5]
	require.NotNil(t, paid.Receipt)
	assert.Equal(t, "50.00", paid.Receipt.Change.StringFixed(2))
	assert.Equal(t, 4, paid.Receipt.Invoice.TableNumber)

	ticket := report.Steps[6].Ticket
	require.NotNil(t, ticket)
	assert.Equal(t, 3, ticket.TotalItems)
	assert.Equal(t, "extra raita", ticket.Lines[0].SpecialInstructions)

	require.NotNil(t, report.Steps[7].Invoice)
	assert.Equal(t, domain.PaymentCard, report.Steps[7].Invoice.PaymentMethod)

	assert.Contains(t, report.Steps[8].Error, "access denied")
	assert.Equal(t, 1, report.Summary.ActiveCount)
	assert.Empty(t, report.Order.Lines)
}

func TestScriptRunner_RequiresPOSCredential(t *testing.T) {
	f := newFixture(t, bdtMenu)
	script := dinnerScript()
	script.Credential = "admin123"

	_, err := application.NewScriptRunner(f.till, f.dash).Run(context.Background(), script)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, f.rt.Ledger.Len())
}

func TestScriptRunner_UnknownActionStops(t *testing.T) {
	f := newFixture(t, bdtMenu)
	script := application.Script{
		Credential: "pos123",
		Steps:      []application.ScriptStep{{Action: "dance"}},
	}
	_, err := application.NewScriptRunner(f.till, f.dash).Run(context.Background(), script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action")
}

func TestScriptRunner_CancelledContext(t *testing.T) {
	f := newFixture(t, bdtMenu)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := application.NewScriptRunner(f.till, f.dash).Run(ctx, dinnerScript())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScriptRunner_AddLargeQuantity(t *testing.T) {
	f := newFixture(t, bdtMenu)
	runner := application.NewScriptRunner(f.till, f.dash)

	report, err := runner.Run(context.Background(), application.Script{
		Credential: "pos123",
		Steps: []application.ScriptStep{
			{Action: "add", Item: "borhani"},
			{Action: "add", Item: "borhani", Quantity: intp(2000000000)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Failed())

	require.Len(t, report.Order.Lines, 1)
	assert.Equal(t, 2000000001, report.Order.Lines[0].Quantity)
}
