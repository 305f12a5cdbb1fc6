package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenTTL is the only invalidation mechanism: there is no revocation list,
// logout is client-side token deletion.
const TokenTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// GenerateToken signs a bearer token binding the user id with a fixed expiry.
func GenerateToken(userID uint, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": float64(userID),
		"iat": now.Unix(),
		"exp": now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the embedded user id.
func ParseToken(tokenString, secret string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(sub), nil
}
