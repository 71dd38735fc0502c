package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chainsafe/kilt-attester/pkg/did"
)

// TokenTTL is the lifetime of an access token. Tokens are not refreshed.
const TokenTTL = 15 * time.Minute

// ErrInvalidToken is returned for expired, tampered or malformed tokens.
var ErrInvalidToken = errors.New("invalid token")

// ErrInsufficientRole is returned when an authenticated caller lacks the required role.
var ErrInsufficientRole = errors.New("insufficient role")

// Claims are the access token claims.
type Claims struct {
	DID  string `json:"did"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer issues and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer creates an issuer signing with secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// WithClock replaces the issuer's clock. Used by tests.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	cp := *i
	cp.now = now
	return &cp
}

// Issue returns a signed token for a full DID and role, and its claims.
func (i *TokenIssuer) Issue(id did.Identifier, role string) (string, *Claims, error) {
	if id.IsZero() || id.IsLight() {
		return "", nil, did.ErrLightDidNotAllowed
	}

	iat := i.now().Truncate(time.Second)
	claims := &Claims{
		DID:  id.String(),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, claims, nil
}

// Verify parses and validates a token.
func (i *TokenIssuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := did.ParseFull(claims.DID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
