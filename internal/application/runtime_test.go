package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brintopos/brintopos/internal/application"
	"github.com/brintopos/brintopos/internal/domain"
)

func TestNewRuntime_Defaults(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 12, f.rt.Catalog.Len())
	assert.Equal(t, "VAT", f.rt.Pricing.Label)
	assert.Equal(t, 1, f.rt.DefaultTable())
	assert.NoError(t, f.rt.Gates.POS.Check("pos123"))
}

func TestNewRuntime_BadTaxRate(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Tax.Rate = "2"
	_, err := application.NewRuntime(cfg, &seqIDs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building pricing policy")
}

func TestNewRuntime_MissingCredential(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Credentials.Void = ""
	_, err := application.NewRuntime(cfg, &seqIDs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "void gate")
}

func TestNewRuntime_ConfiguredMenu(t *testing.T) {
	f := newFixture(t, bdtMenu)
	assert.Equal(t, 3, f.rt.Catalog.Len())
}
