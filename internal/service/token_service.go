package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kadcom/pphc/internal/domain"
)

const tokenAudience = "pphc-api"

// Claims are the JWT claims accepted by the API guard.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens for the API.
type TokenService interface {
	Issue(subject string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type tokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenService creates a new TokenService implementation.
func NewTokenService(secret, issuer string) TokenService {
	return &tokenService{secret: []byte(secret), issuer: issuer, now: time.Now}
}

func (s *tokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("%w: signing secret is empty", domain.ErrInvalidInput)
	}
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{tokenAudience},
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithAudience(tokenAudience),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing token: %w", domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
