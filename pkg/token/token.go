package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingUser  = errors.New("token does not carry a user id")
)

type Claims struct {
	UserId string `json:"user_id"`
	jwt.RegisteredClaims
}

// Issued is a freshly signed token together with the claims it carries.
type Issued struct {
	Token     string
	TokenId   string
	ExpiresAt time.Time
}

type Manager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

func (m *Manager) Issue(userId uuid.UUID) (*Issued, error) {
	now := m.now()
	expiresAt := now.Add(m.expiry)
	tokenId := uuid.NewString()

	claims := Claims{
		UserId: userId.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenId,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &Issued{Token: signed, TokenId: tokenId, ExpiresAt: expiresAt}, nil
}

// Parse verifies signature, algorithm and expiry. Every failure wraps ErrInvalidToken.
func (m *Manager) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserId == "" {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, ErrMissingUser)
	}
	return claims, nil
}
