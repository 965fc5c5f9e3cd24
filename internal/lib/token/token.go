// Package token mints the bearer tokens handed out on login and resolves
// them back to account ids.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"secureid/internal/domain/models"
	"secureid/internal/lib/jwt"
)

const (
	SchemeMock = "mock"
	SchemeJWT  = "jwt"

	DefaultPrefix = "mock-jwt-token-"
)

var ErrMalformedToken = errors.New("malformed token")

type Codec interface {
	Mint(account models.Account) (string, error)
	Parse(token string) (int64, error)
}

// Mock is the unsigned prefix+id scheme. Anyone who knows an id can build a
// valid token for it.
type Mock struct {
	Prefix string
}

func NewMock(prefix string) *Mock {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Mock{Prefix: prefix}
}

func (m *Mock) Mint(account models.Account) (string, error) {
	return m.Prefix + strconv.FormatInt(account.ID, 10), nil
}

func (m *Mock) Parse(token string) (int64, error) {
	const op = "token.Mock.Parse"

	rest, ok := strings.CutPrefix(token, m.Prefix)
	if !ok || rest == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrMalformedToken)
	}

	// digits only: ParseInt would also take a sign
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%s: %w", op, ErrMalformedToken)
		}
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, ErrMalformedToken)
	}

	return id, nil
}

// JWT signs tokens with HS256 using the shared secret.
type JWT struct {
	Secret string
	TTL    time.Duration
}

func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{Secret: secret, TTL: ttl}
}

func (j *JWT) Mint(account models.Account) (string, error) {
	const op = "token.JWT.Mint"

	t, err := jwt.NewToken(account, j.Secret, j.TTL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}

func (j *JWT) Parse(token string) (int64, error) {
	const op = "token.JWT.Parse"

	claims, err := jwt.ParseToken(token, j.Secret)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %v", op, ErrMalformedToken, err)
	}

	return claims.UserID, nil
}

// New picks a codec by scheme name.
func New(scheme, prefix, secret string, ttl time.Duration) (Codec, error) {
	switch scheme {
	case "", SchemeMock:
		return NewMock(prefix), nil
	case SchemeJWT:
		if secret == "" {
			return nil, errors.New("token: jwt scheme requires a secret")
		}
		return NewJWT(secret, ttl), nil
	default:
		return nil, fmt.Errorf("token: unknown scheme %q", scheme)
	}
}
