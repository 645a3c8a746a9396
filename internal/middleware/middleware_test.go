package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storeapi/internal/auth"
	"storeapi/internal/config"
	apperrors "storeapi/internal/errors"
	"storeapi/internal/middleware"
	"storeapi/internal/model"
	"storeapi/internal/rbac"
	"storeapi/internal/router"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = router.NewHTTPErrorHandler(&config.Config{Env: "test"})
	return e
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Code
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 10*time.Minute, 24*time.Hour)
	userID := uuid.New()

	validToken, err := tokens.IssueAccessToken(userID)
	require.NoError(t, err)

	expiredToken, err := auth.NewTokenService("test-secret", -time.Minute, 24*time.Hour).IssueAccessToken(userID)
	require.NoError(t, err)

	foreignToken, err := auth.NewTokenService("other-secret", 10*time.Minute, 24*time.Hour).IssueAccessToken(userID)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authorization  string
		setupMock      func(*MockUserRepository)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:          "valid token resolves identity",
			authorization: "Bearer " + validToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:       userID,
					Username: "alice",
					Role:     "employee",
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing token fails before verification",
			authorization:  "",
			setupMock:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "NO_CREDENTIAL",
		},
		{
			name:           "token without bearer scheme is not extracted",
			authorization:  validToken,
			setupMock:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "NO_CREDENTIAL",
		},
		{
			name:           "expired token reported distinctly",
			authorization:  "Bearer " + expiredToken,
			setupMock:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "TOKEN_EXPIRED",
		},
		{
			name:           "token signed with another key",
			authorization:  "Bearer " + foreignToken,
			setupMock:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
		{
			name:           "garbage token",
			authorization:  "Bearer not-a-jwt",
			setupMock:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
		{
			name:          "token for deleted user",
			authorization: "Bearer " + validToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			e := newTestEcho()
			e.GET("/protected", func(c echo.Context) error {
				ident, ok := middleware.IdentityFrom(c)
				require.True(t, ok)
				return c.JSON(http.StatusOK, map[string]string{"username": ident.Username, "role": ident.Role})
			}, middleware.Authenticate(tokens, repo))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authorization != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.authorization)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, rec))
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	table := rbac.Default()

	identityFor := func(role string) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set("identity", &auth.Identity{ID: uuid.New(), Username: "u", Role: role})
				return next(c)
			}
		}
	}

	tests := []struct {
		name           string
		pre            echo.MiddlewareFunc
		permission     rbac.Permission
		expectedStatus int
	}{
		{"employee may read", identityFor("employee"), rbac.PermReadRecord, http.StatusOK},
		{"employee may not update", identityFor("employee"), rbac.PermUpdateRecord, http.StatusForbidden},
		{"manager may update", identityFor("manager"), rbac.PermUpdateRecord, http.StatusOK},
		{"manager may not delete", identityFor("manager"), rbac.PermDeleteRecord, http.StatusForbidden},
		{"admin may delete", identityFor("admin"), rbac.PermDeleteRecord, http.StatusOK},
		{"unknown role denied", identityFor("ghost"), rbac.PermReadRecord, http.StatusForbidden},
		{"anonymous denied every permission", nil, rbac.PermReadRecord, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
			mws := []echo.MiddlewareFunc{}
			if tt.pre != nil {
				mws = append(mws, tt.pre)
			}
			mws = append(mws, middleware.RequirePermission(table, tt.permission))
			e.GET("/resource", handler, mws...)

			req := httptest.NewRequest(http.MethodGet, "/resource", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusForbidden {
				assert.Equal(t, "PERMISSION_DENIED", errorCode(t, rec))
			}
		})
	}
}
