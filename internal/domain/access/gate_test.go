package access_test

import (
	"testing"

	"github.com/brintopos/brintopos/internal/domain"
	"github.com/brintopos/brintopos/internal/domain/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGate_Check(t *testing.T) {
	g, err := access.NewGateWithCost(access.Void, "void123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, g.Check("void123"))

	err = g.Check("wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	var authErr *domain.AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "void", authErr.Gate)
}

func TestGate_EmptyCredentialRejected(t *testing.T) {
	g, err := access.NewGateWithCost(access.POS, "pos123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.ErrorIs(t, g.Check(""), domain.ErrUnauthorized)
}

func TestNewGate_RequiresSecret(t *testing.T) {
	_, err := access.NewGateWithCost(access.Admin, "", bcrypt.MinCost)
	assert.Error(t, err)
}

func TestNewSet(t *testing.T) {
	s, err := access.NewSet(domain.DefaultConfig().Credentials, bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, s.POS.Check("pos123"))
	assert.NoError(t, s.Admin.Check("admin123"))
	assert.NoError(t, s.Void.Check("void123"))
	assert.Error(t, s.Admin.Check("pos123"))
}
