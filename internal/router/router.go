package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storeapi/internal/auth"
	"storeapi/internal/config"
	apperrors "storeapi/internal/errors"
	"storeapi/internal/handler"
	"storeapi/internal/middleware"
	"storeapi/internal/rbac"
	"storeapi/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	roles *rbac.Table,
	tokens *auth.TokenService,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	categoryHandler *handler.CategoryHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// Category routes pass the authentication gate first, then a
	// per-route permission gate fixed at setup time.
	authn := middleware.Authenticate(tokens, users)
	categories := api.Group("/categories", authn)
	categories.GET("", categoryHandler.List, middleware.RequirePermission(roles, rbac.PermReadRecord))
	categories.GET("/:id", categoryHandler.GetByID, middleware.RequirePermission(roles, rbac.PermReadRecord))
	categories.GET("/name/:name", categoryHandler.GetByName, middleware.RequirePermission(roles, rbac.PermReadRecord))
	categories.POST("", categoryHandler.Create, middleware.RequirePermission(roles, rbac.PermCreateRecord))
	categories.PUT("/:id", categoryHandler.Update, middleware.RequirePermission(roles, rbac.PermUpdateRecord))
	categories.DELETE("/:id", categoryHandler.Delete, middleware.RequirePermission(roles, rbac.PermDeleteRecord))
}

// NewHTTPErrorHandler maps domain errors to structured responses at the
// boundary. Unexpected errors become 500 with diagnostics withheld in
// production.
func NewHTTPErrorHandler(cfg *config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *apperrors.HTTPError
		if !errors.As(err, &httpErr) {
			var echoErr *echo.HTTPError
			if errors.As(err, &echoErr) {
				httpErr = apperrors.NewHTTPError(echoErr.Code, fmt.Sprintf("%v", echoErr.Message), codeForStatus(echoErr.Code))
			} else {
				httpErr = apperrors.MapErrorToHTTP(err)
			}
		}

		if httpErr.StatusCode == http.StatusInternalServerError {
			if cfg.IsProduction() {
				httpErr = apperrors.NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
			} else if httpErr.Details == nil {
				httpErr = httpErr.WithDetails(err.Error())
			}
			c.Logger().Error(err)
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(httpErr.StatusCode)
		} else {
			sendErr = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		if sendErr != nil {
			c.Logger().Error(sendErr)
		}
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
