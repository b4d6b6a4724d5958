package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hotelbook/internal/domain"
)

// JWT claims carried by every issued token.
type Claims struct {
	Pseudo string `json:"pseudo"`
	Role   int    `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Issue(id domain.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Pseudo: id.Pseudo,
		Role:   int(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates the token. Any failure (bad signature,
// expiry, malformed role) maps to ErrUnauthorized.
func (m *TokenManager) Verify(token string) (domain.Identity, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !t.Valid || claims.Subject == "" {
		return domain.Identity{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.Identity{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	return domain.Identity{UserID: claims.Subject, Pseudo: claims.Pseudo, Role: role}, nil
}
