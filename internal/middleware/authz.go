package middleware

import (
	"github.com/labstack/echo/v4"

	apperrors "storeapi/internal/errors"
	"storeapi/internal/rbac"
)

// RequirePermission gates a route behind a single permission, fixed at
// setup time. Requests without an identity are checked as the anonymous
// role, which holds no permissions in the default table. The check is a
// pure lookup against the immutable table, safe under concurrency.
func RequirePermission(table *rbac.Table, permission rbac.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := rbac.RoleAnonymous
			if ident, ok := IdentityFrom(c); ok {
				role = ident.Role
			}
			if !table.HasPermission(role, permission) {
				return apperrors.ErrPermissionDenied
			}
			return next(c)
		}
	}
}
