package jwt

import (
	"errors"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "grievance-portal"

var (
	ErrTokenExpired = domain.ErrTokenExpired
	ErrTokenInvalid = domain.ErrTokenInvalid
)

// Claims represents the identity token claims.
// The token is the authoritative proof of identity for its validity window:
// the embedded role is what the authorization gate consults, so a role change
// only takes effect once the account logs in again.
type Claims struct {
	AccountID uint        `json:"account_id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Generate mints a signed identity token for a verified account.
func Generate(accountID uint, email, name string, role domain.Role, secret string, expiryDays int) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: accountID,
		Email:     email,
		Name:      name,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiryDays) * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   email,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Validate checks signature and expiry and returns the embedded claims.
// No database round-trip happens here; the authorization gate re-checks the
// account's active status separately.
func Validate(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if !claims.Role.IsValid() {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ExpiryTime returns the expiry timestamp for a token issued now.
func ExpiryTime(days int) time.Time {
	return time.Now().Add(time.Duration(days) * 24 * time.Hour)
}
