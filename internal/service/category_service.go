package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storeapi/internal/cache"
	apperrors "storeapi/internal/errors"
	"storeapi/internal/model"
	"storeapi/internal/repository"
)

const categoryCacheTTL = 5 * time.Minute

const categoryListCacheKey = "categories:all"

// CategoryService handles category operations.
type CategoryService interface {
	Create(ctx context.Context, name, note string) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, name, note string) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{
		repo:  repo,
		cache: cache,
	}
}

func (s *categoryService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("category:%s", id.String())
}

func (s *categoryService) Create(ctx context.Context, name, note string) (*model.Category, error) {
	category := &model.Category{
		Name: name,
		Note: note,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	_ = s.cache.Delete(ctx, categoryListCacheKey)
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, name, note string) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	category.Name = name
	category.Note = note
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	_ = s.cache.Delete(ctx, categoryListCacheKey)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	_ = s.cache.Delete(ctx, categoryListCacheKey)
	return nil
}

// GetByID retrieves a category by ID with caching.
func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Category
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(category); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, categoryCacheTTL)
	}

	return category, nil
}

func (s *categoryService) GetByName(ctx context.Context, name string) (*model.Category, error) {
	category, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

// List retrieves all categories with caching.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	if data, _ := s.cache.Get(ctx, categoryListCacheKey); data != nil {
		var cached []model.Category
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(categories); err == nil {
		_ = s.cache.Set(ctx, categoryListCacheKey, payload, categoryCacheTTL)
	}

	return categories, nil
}
