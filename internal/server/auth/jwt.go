// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/libauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is what a session token asserts about its bearer.
type Identity struct {
	ID    string
	Email string
}

// Claims is the JWT payload: registered claims plus the user identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Issuer signs and verifies HS256 session tokens with a process-wide secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer builds an Issuer. The secret must not be empty.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("empty signing secret")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("non-positive token ttl %s", ttl)
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL is the lifetime of every issued token.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue returns a signed token for id valid from now until now+TTL.
func (i *Issuer) Issue(id Identity) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID: id.ID,
		Email:  id.Email,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature and expiry of tokenString and returns the identity
// it carries. Expired tokens yield common.ErrTokenExpired; every other
// failure yields common.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{ID: claims.UserID, Email: claims.Email}, nil
}
