package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenLifetime is fixed; clients log in again after it passes.
const TokenLifetime = time.Hour

// Identity is what a verified token proves about the caller.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// TokenVerifier is the part of TokenService the auth middleware needs.
type TokenVerifier interface {
	Verify(tokenString string) (*Identity, error)
}

type tokenClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	signingKey []byte
	timeFunc   func() time.Time // injectable for tests
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &TokenService{signingKey: []byte(secret), timeFunc: time.Now}, nil
}

// Issue signs a token carrying the user's id and email, valid for TokenLifetime.
func (s *TokenService) Issue(userID uuid.UUID, email string) (string, error) {
	now := s.timeFunc()
	claims := tokenClaims{
		ID:    userID.String(),
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded identity.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: id, Email: claims.Email}, nil
}
