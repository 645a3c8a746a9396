package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "storeapi/internal/errors"
)

// Claims represents JWT claims carried by both access and refresh tokens.
//
// Access and refresh tokens share the signing key and claim shape, differing
// only by lifetime, so within its validity window a refresh token verifies
// like an access token.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies signed, time-limited bearer tokens. Tokens
// are stateless: validity is purely a function of signature and expiry, with
// no server-side store.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a token service with the given secret and lifetimes.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccessToken generates a short-lived access token for the user.
func (s *TokenService) IssueAccessToken(userID uuid.UUID) (string, error) {
	return s.issue(userID, s.accessTTL)
}

// IssueRefreshToken generates a longer-lived refresh token for the user.
func (s *TokenService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	return s.issue(userID, s.refreshTTL)
}

func (s *TokenService) issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature integrity and expiry, returning the claims.
// An expired token fails with ErrExpiredToken so callers can suggest a
// refresh; every other failure collapses to ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrExpiredToken
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// SubjectID parses the user id embedded in verified claims.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidToken
	}
	return id, nil
}
