package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rogerio-castellano/kiosco-pos/internal/models"
)

var jwtSecret = []byte("super-secret-key")

// SetSecret replaces the signing secret; main calls it with the configured value.
func SetSecret(secret []byte) {
	if len(secret) > 0 {
		jwtSecret = secret
	}
}

const tokenTTL = 15 * time.Minute

func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	})
}

// TokenClaims parses the claims out of an Authorization header value.
func TokenClaims(authorization string) (*jwt.Token, jwt.MapClaims, error) {
	tokenStr := strings.TrimPrefix(authorization, "Bearer ")
	token, err := ParseToken(tokenStr)
	if err != nil {
		return nil, nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, nil, errors.New("invalid token claims")
	}
	return token, claims, nil
}
