package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "storeapi/internal/errors"
	"storeapi/internal/model"
)

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func TestCategoryService_GetByID_NotFound(t *testing.T) {
	repo := new(MockCategoryRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	svc := NewCategoryService(repo, nil)

	_, err := svc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCategoryService_Update(t *testing.T) {
	repo := new(MockCategoryRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&model.Category{ID: id, Name: "old"}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)

	svc := NewCategoryService(repo, nil)

	updated, err := svc.Update(context.Background(), id, "new", "a note")
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Name)
	assert.Equal(t, "a note", updated.Note)
	repo.AssertExpectations(t)
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	repo := new(MockCategoryRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	svc := NewCategoryService(repo, nil)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCategoryService_List(t *testing.T) {
	repo := new(MockCategoryRepository)
	repo.On("List", mock.Anything).Return([]model.Category{
		{ID: uuid.New(), Name: "beverages"},
		{ID: uuid.New(), Name: "snacks"},
	}, nil)

	svc := NewCategoryService(repo, nil)

	categories, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}
