// Package access holds the credential gates in front of the POS screen,
// the admin dashboard and invoice voiding. A gate is a UI capability toggle
// with a shared credential. It does not identify users and is not a
// security boundary.
package access

import (
	"errors"
	"fmt"

	"github.com/brintopos/brintopos/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Gate names.
const (
	POS   = "pos"
	Admin = "admin"
	Void  = "void"
)

// Gate keeps only a bcrypt hash of its credential.
type Gate struct {
	name string
	hash []byte
}

// NewGate hashes secret at bcrypt.DefaultCost.
func NewGate(name, secret string) (*Gate, error) {
	return NewGateWithCost(name, secret, bcrypt.DefaultCost)
}

// NewGateWithCost is NewGate with an explicit bcrypt cost.
func NewGateWithCost(name, secret string, cost int) (*Gate, error) {
	if secret == "" {
		return nil, fmt.Errorf("%s gate: credential is required", name)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return nil, fmt.Errorf("%s gate: hashing credential: %w", name, err)
	}
	return &Gate{name: name, hash: hash}, nil
}

func (g *Gate) Name() string { return g.name }

// Check returns an AuthorizationError unless credential matches.
func (g *Gate) Check(credential string) error {
	err := bcrypt.CompareHashAndPassword(g.hash, []byte(credential))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return &domain.AuthorizationError{Gate: g.name}
	}
	return fmt.Errorf("%s gate: %w", g.name, err)
}

// Set is the three gates a till runs with.
type Set struct {
	POS   *Gate
	Admin *Gate
	Void  *Gate
}

// NewSet builds the gates from configured credentials.
func NewSet(creds domain.CredentialsConfig, cost int) (Set, error) {
	var (
		s   Set
		err error
	)
	if s.POS, err = NewGateWithCost(POS, creds.POS, cost); err != nil {
		return Set{}, err
	}
	if s.Admin, err = NewGateWithCost(Admin, creds.Admin, cost); err != nil {
		return Set{}, err
	}
	if s.Void, err = NewGateWithCost(Void, creds.Void, cost); err != nil {
		return Set{}, err
	}
	return s, nil
}
