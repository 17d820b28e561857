package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tyremart/internal/common"
	"tyremart/internal/models"
	"tyremart/internal/services"
)

// PatternHandlers serves the priced pattern catalog. Reads are public with
// optional bearer identity; a resolved subuser session gets discounted final
// prices. Writes require an authenticated session.
type PatternHandlers struct {
	catalogService services.CatalogService
}

func NewPatternHandlers(catalogService services.CatalogService) *PatternHandlers {
	return &PatternHandlers{catalogService: catalogService}
}

// ListPatterns handles GET /patterns with width/ratio/rim size filters and
// the distributor_id/subuser_id storefront scoping parameters.
func (h *PatternHandlers) ListPatterns(c echo.Context) error {
	distributorID, err := queryUUID(c, "distributor_id")
	if err != nil {
		return common.SendValidationError(c, "distributor_id", err.Error())
	}
	subuserID, err := queryUUID(c, "subuser_id")
	if err != nil {
		return common.SendValidationError(c, "subuser_id", err.Error())
	}
	limit, offset := queryPagination(c)

	identity := common.IdentityFromContext(c.Request().Context())
	views, err := h.catalogService.ListPatterns(c.Request().Context(), identity, services.CatalogQuery{
		Width:         c.QueryParam("width"),
		Ratio:         c.QueryParam("ratio"),
		Rim:           c.QueryParam("rim"),
		DistributorID: distributorID,
		SubUserID:     subuserID,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return handleServiceError(c, err, "Patterns")
	}
	if views == nil {
		views = []models.PatternView{}
	}
	return c.JSON(http.StatusOK, views)
}

// GetPattern handles GET /patterns/:id.
func (h *PatternHandlers) GetPattern(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	identity := common.IdentityFromContext(c.Request().Context())
	view, err := h.catalogService.GetPattern(c.Request().Context(), identity, id)
	if err != nil {
		return handleServiceError(c, err, "Pattern")
	}
	return c.JSON(http.StatusOK, view)
}

type PatternRequest struct {
	TyreModelID uuid.UUID       `json:"tyre_model_id"`
	BrandID     *uuid.UUID      `json:"brand_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// CreatePattern handles POST /patterns.
func (h *PatternHandlers) CreatePattern(c echo.Context) error {
	var req PatternRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if req.TyreModelID == uuid.Nil {
		return common.SendValidationError(c, "tyre_model_id", "tyre_model_id is required")
	}
	if req.Price.IsNegative() {
		return common.SendValidationError(c, "price", "price must not be negative")
	}

	identity := common.IdentityFromContext(c.Request().Context())
	pattern := &models.TyrePattern{
		ID:          uuid.New(),
		TyreModelID: req.TyreModelID,
		BrandID:     req.BrandID,
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := h.catalogService.CreatePattern(c.Request().Context(), identity, pattern); err != nil {
		if err == common.ErrConflict || err == common.ErrNotFound {
			return handleServiceError(c, err, "Pattern")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, pattern)
}

// UpdatePattern handles PUT /patterns/:id.
func (h *PatternHandlers) UpdatePattern(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	identity := common.IdentityFromContext(c.Request().Context())
	view, err := h.catalogService.GetPattern(c.Request().Context(), identity, id)
	if err != nil {
		return handleServiceError(c, err, "Pattern")
	}

	var req PatternRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	pattern := &models.TyrePattern{
		ID:          id,
		TyreModelID: view.TyreModelID,
		BrandID:     view.BrandID,
		Name:        view.Name,
		Price:       view.Price,
		Stock:       view.Stock,
	}
	if req.TyreModelID != uuid.Nil {
		pattern.TyreModelID = req.TyreModelID
	}
	if req.BrandID != nil {
		pattern.BrandID = req.BrandID
	}
	if req.Name != "" {
		pattern.Name = req.Name
	}
	if !req.Price.IsZero() {
		if req.Price.IsNegative() {
			return common.SendValidationError(c, "price", "price must not be negative")
		}
		pattern.Price = req.Price
	}
	if req.Stock != 0 {
		pattern.Stock = req.Stock
	}

	if err := h.catalogService.UpdatePattern(c.Request().Context(), pattern); err != nil {
		if err == common.ErrConflict || err == common.ErrNotFound {
			return handleServiceError(c, err, "Pattern")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, pattern)
}

// DeletePattern handles DELETE /patterns/:id.
func (h *PatternHandlers) DeletePattern(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.catalogService.DeletePattern(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err, "Pattern")
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage handles POST /patterns/:id/image (multipart form, field "image").
func (h *PatternHandlers) UploadImage(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.catalogService.AttachImage(c.Request().Context(), id, fileHeader.Filename, contentType, file, fileHeader.Size); err != nil {
		return handleServiceError(c, err, "Pattern")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Image uploaded"})
}
