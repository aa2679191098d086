package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpiry is used when no token lifetime is configured.
const DefaultTokenExpiry = 7 * 24 * time.Hour

// ErrNoSigningSecret is returned when token issuance is attempted without a
// configured signing secret. Issuing an unsigned or weakly-signed token is
// never an option.
var ErrNoSigningSecret = errors.New("jwt signing secret is not set")

// ErrInvalidToken covers every verification failure: bad signature, malformed
// structure, or expiry. Callers cannot distinguish which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity claim set embedded in a token: id, email and an
// optional role. No other user fields are ever embedded.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies signed, time-bounded tokens with a single
// process-wide secret.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager creates a JWT manager with the given secret and token
// lifetime. A non-positive expiry falls back to DefaultTokenExpiry.
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &JWTManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// HasSecret reports whether a signing secret is configured.
func (m *JWTManager) HasSecret() bool {
	return len(m.secret) > 0
}

// GenerateToken creates a signed HS256 token over the given identity claims,
// stamping issued-at and expiry. It fails fast when no secret is configured.
func (m *JWTManager) GenerateToken(userID, email, role string) (string, error) {
	if !m.HasSecret() {
		return "", ErrNoSigningSecret
	}

	now := time.Now().UTC()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			Issuer:    "fitforge",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken parses and validates a token, returning the decoded claims.
// Any failure collapses into ErrInvalidToken.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	// HMAC verification against an empty key would accept tokens signed with
	// an empty key. With no secret configured, nothing may validate.
	if !m.HasSecret() {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
