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

// TyreModelHandlers is plain collection CRUD over tyre size models.
type TyreModelHandlers struct {
	tyreModelRepo repositories.TyreModelRepository
}

func NewTyreModelHandlers(tyreModelRepo repositories.TyreModelRepository) *TyreModelHandlers {
	return &TyreModelHandlers{tyreModelRepo: tyreModelRepo}
}

func (h *TyreModelHandlers) ListTyreModels(c echo.Context) error {
	limit, offset := queryPagination(c)
	tyreModels, err := h.tyreModelRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return handleServiceError(c, err, "Tyre models")
	}
	if tyreModels == nil {
		tyreModels = []*models.TyreModel{}
	}
	return c.JSON(http.StatusOK, tyreModels)
}

func (h *TyreModelHandlers) GetTyreModel(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	tyreModel, err := h.tyreModelRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "Tyre model")
	}
	return c.JSON(http.StatusOK, tyreModel)
}

type TyreModelRequest struct {
	Width    string `json:"width"`
	Ratio    string `json:"ratio"`
	Rim      string `json:"rim"`
	TyreType string `json:"tyre_type"`
}

func (h *TyreModelHandlers) CreateTyreModel(c echo.Context) error {
	var req TyreModelRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.TyreType == "" {
		req.TyreType = models.TyreTypeNotSelected
	}
	if !models.ValidTyreType(req.TyreType) {
		return common.SendValidationError(c, "tyre_type", "tyre_type must be one of: radial, nylon, not_selected")
	}

	tyreModel := &models.TyreModel{
		ID:        uuid.New(),
		Width:     req.Width,
		Ratio:     req.Ratio,
		Rim:       req.Rim,
		TyreType:  req.TyreType,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.tyreModelRepo.Create(c.Request().Context(), tyreModel); err != nil {
		return handleServiceError(c, err, "Tyre model")
	}
	return c.JSON(http.StatusCreated, tyreModel)
}

func (h *TyreModelHandlers) UpdateTyreModel(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	tyreModel, err := h.tyreModelRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "Tyre model")
	}

	var req TyreModelRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Width != "" {
		tyreModel.Width = req.Width
	}
	if req.Ratio != "" {
		tyreModel.Ratio = req.Ratio
	}
	if req.Rim != "" {
		tyreModel.Rim = req.Rim
	}
	if req.TyreType != "" {
		if !models.ValidTyreType(req.TyreType) {
			return common.SendValidationError(c, "tyre_type", "tyre_type must be one of: radial, nylon, not_selected")
		}
		tyreModel.TyreType = req.TyreType
	}

	if err := h.tyreModelRepo.Update(c.Request().Context(), tyreModel); err != nil {
		return handleServiceError(c, err, "Tyre model")
	}
	return c.JSON(http.StatusOK, tyreModel)
}

func (h *TyreModelHandlers) DeleteTyreModel(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.tyreModelRepo.Delete(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err, "Tyre model")
	}
	return c.NoContent(http.StatusNoContent)
}
