package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims includes the registered JWT claims plus the storefront's own fields.
// IsAdmin is carried so middleware can authorize admin routes without a DB lookup.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	IsAdmin   bool   `json:"is_admin"`
}

// Generate signs a session token carrying the account id and admin flag.
func Generate(secret, accountID string, isAdmin bool, issuer string, expHours int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expHours) * time.Hour)),
		},
		AccountID: accountID,
		IsAdmin:   isAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates the token and returns the account id and admin flag.
// Returns an error if the token is invalid, expired or has a bad signature.
func Parse(secret, tokenString string) (accountID string, isAdmin bool, err error) {
	if secret == "" {
		return "", false, fmt.Errorf("jwt: empty secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", false, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", false, fmt.Errorf("invalid claims")
	}
	return claims.AccountID, claims.IsAdmin, nil
}
