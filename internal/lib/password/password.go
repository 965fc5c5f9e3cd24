// Package password stores and checks account passwords and judges their
// strength for the registration form.
package password

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	HasherPlain  = "plain"
	HasherBcrypt = "bcrypt"
)

type Hasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
}

// Plain keeps the password as is.
type Plain struct{}

func (Plain) Hash(password string) (string, error) {
	return password, nil
}

func (Plain) Compare(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	const op = "password.Bcrypt.Hash"

	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(hash), nil
}

func (Bcrypt) Compare(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

func New(kind string, cost int) (Hasher, error) {
	switch kind {
	case "", HasherPlain:
		return Plain{}, nil
	case HasherBcrypt:
		if cost != 0 && (cost < bcrypt.MinCost || cost > bcrypt.MaxCost) {
			return nil, fmt.Errorf("password: bcrypt cost %d out of range", cost)
		}
		return Bcrypt{Cost: cost}, nil
	default:
		return nil, fmt.Errorf("password: unknown hasher %q", kind)
	}
}
