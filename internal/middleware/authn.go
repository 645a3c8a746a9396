// Package middleware implements the authentication and authorization gates
// every protected route passes through.
package middleware

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storeapi/internal/auth"
	apperrors "storeapi/internal/errors"
	"storeapi/internal/repository"
)

// identityContextKey is where the resolved identity lives on the echo context.
const identityContextKey = "identity"

// IdentityFrom returns the identity attached by Authenticate, if any.
func IdentityFrom(c echo.Context) (*auth.Identity, bool) {
	ident, ok := c.Get(identityContextKey).(*auth.Identity)
	return ident, ok
}

// Authenticate intercepts protected requests: it extracts the bearer token
// from the Authorization header, verifies it, resolves the subject against
// the credential store, and attaches a typed Identity to the context.
// Failures terminate the pipeline before any handler runs.
func Authenticate(tokens *auth.TokenService, users repository.UserRepository) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := tokens.Verify(token)
			if err != nil {
				return nil, err
			}
			userID, err := claims.SubjectID()
			if err != nil {
				return nil, err
			}
			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// stale token for a deleted user must not grant access
					return nil, apperrors.ErrInvalidToken
				}
				return nil, echo.NewHTTPError(http.StatusInternalServerError, "credential lookup failed").SetInternal(err)
			}
			return &auth.Identity{
				ID:       user.ID,
				Username: user.Username,
				Role:     user.Role,
			}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			switch {
			case errors.Is(err, apperrors.ErrExpiredToken):
				return apperrors.ErrExpiredToken
			case errors.Is(err, apperrors.ErrInvalidToken):
				return apperrors.ErrInvalidToken
			}
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}
			// no token was extracted: missing or malformed Authorization
			// header, reported without ever reaching verification
			return apperrors.ErrNoCredential
		},
	})
}
