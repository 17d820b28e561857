package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tyremart/internal/common"
	"tyremart/internal/models"
	"tyremart/internal/repositories"
)

// BrandHandlers is plain collection CRUD over the brand catalog.
type BrandHandlers struct {
	brandRepo repositories.BrandRepository
}

func NewBrandHandlers(brandRepo repositories.BrandRepository) *BrandHandlers {
	return &BrandHandlers{brandRepo: brandRepo}
}

func (h *BrandHandlers) ListBrands(c echo.Context) error {
	limit, offset := queryPagination(c)
	brands, err := h.brandRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return handleServiceError(c, err, "Brands")
	}
	if brands == nil {
		brands = []*models.Brand{}
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *BrandHandlers) GetBrand(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	brand, err := h.brandRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "Brand")
	}
	return c.JSON(http.StatusOK, brand)
}

type BrandRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (h *BrandHandlers) CreateBrand(c echo.Context) error {
	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Code, "code"); err != nil {
		return common.SendValidationError(c, "code", err.Error())
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	brand := &models.Brand{
		ID:        uuid.New(),
		Code:      req.Code,
		Name:      req.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.brandRepo.Create(c.Request().Context(), brand); err != nil {
		return handleServiceError(c, err, "Brand")
	}
	return c.JSON(http.StatusCreated, brand)
}

func (h *BrandHandlers) UpdateBrand(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	brand, err := h.brandRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "Brand")
	}

	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Code != "" {
		brand.Code = req.Code
	}
	if req.Name != "" {
		brand.Name = req.Name
	}

	if err := h.brandRepo.Update(c.Request().Context(), brand); err != nil {
		return handleServiceError(c, err, "Brand")
	}
	return c.JSON(http.StatusOK, brand)
}

func (h *BrandHandlers) DeleteBrand(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.brandRepo.Delete(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err, "Brand")
	}
	return c.NoContent(http.StatusNoContent)
}
