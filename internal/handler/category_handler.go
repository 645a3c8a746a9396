package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storeapi/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents a category create/update payload.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Note string `json:"note" validate:"max=1024"`
}

// List godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Category
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// GetByID godoc
// @Summary Get a category by id
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} model.Category
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid category id")
	}
	category, err := h.categoryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// GetByName godoc
// @Summary Get a category by name
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param name path string true "Category name"
// @Success 200 {object} model.Category
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/name/{name} [get]
func (h *CategoryHandler) GetByName(c echo.Context) error {
	category, err := h.categoryService.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "Category payload"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	category, err := h.categoryService.Create(c.Request().Context(), req.Name, req.Note)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "create category failed").SetInternal(err)
	}
	return c.JSON(http.StatusCreated, category)
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body CategoryRequest true "Category payload"
// @Success 200 {object} model.Category
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid category id")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	category, err := h.categoryService.Update(c.Request().Context(), id, req.Name, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid category id")
	}
	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "category deleted successfully",
	})
}
