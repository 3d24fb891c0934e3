// internal/lib/jwt/jwt.go
package jwt

import (
	"fmt"
	"time"

	"papertrade/internal/domain"

	"github.com/golang-jwt/jwt/v4"
)

// NewToken issues an HS256 token carrying the user's id and username.
func NewToken(user *domain.User, secret string, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["uid"] = user.ID
	claims["username"] = user.Username
	claims["exp"] = time.Now().Add(duration).Unix()

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseUserID validates a token and extracts the user id claim.
func ParseUserID(tokenString, secret string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	uid, ok := claims["uid"].(float64) // JSON numbers decode as float64
	if !ok {
		return 0, fmt.Errorf("invalid token: missing uid claim")
	}

	return int64(uid), nil
}
