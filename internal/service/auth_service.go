package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storeapi/internal/auth"
	apperrors "storeapi/internal/errors"
	"storeapi/internal/model"
	"storeapi/internal/rbac"
	"storeapi/internal/repository"
)

const bcryptCost = 10

// DefaultRole is assigned when registration does not name a role.
const DefaultRole = "employee"

// AuthService handles registration, login, and token refresh.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*model.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	roles  *rbac.Table
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, roles *rbac.Table) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		roles:  roles,
	}
}

// Register creates a new user with a hashed password. There is no
// existence pre-check: the unique index on username is the single
// arbiter, so the duplicate error here is race-free.
func (s *authService) Register(ctx context.Context, username, password, role string) (*model.User, error) {
	if role == "" {
		role = DefaultRole
	}
	if _, ok := s.roles.Lookup(role); !ok {
		return nil, apperrors.ErrUnknownRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens. An
// unknown username and a wrong password produce the same error so callers
// cannot probe which of the two was wrong.
func (s *authService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err = s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken, err = s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// Refresh validates a refresh token and returns a new access token for the
// same subject. A token whose subject was deleted after issuance is invalid.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return "", err
	}

	userID, err := claims.SubjectID()
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrInvalidToken
		}
		return "", fmt.Errorf("resolve refresh subject: %w", err)
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}

	return accessToken, nil
}
