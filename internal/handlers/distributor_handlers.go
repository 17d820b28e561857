package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tyremart/internal/common"
	"tyremart/internal/services"
)

// DistributorHandlers covers the authenticated profile surface (/distributor/me)
// plus admin CRUD over distributor accounts and the nested subuser collection.
type DistributorHandlers struct {
	distributorService services.DistributorService
	subUserService     services.SubUserService
}

func NewDistributorHandlers(distributorService services.DistributorService, subUserService services.SubUserService) *DistributorHandlers {
	return &DistributorHandlers{
		distributorService: distributorService,
		subUserService:     subUserService,
	}
}

// Me handles GET /distributor/me.
func (h *DistributorHandlers) Me(c echo.Context) error {
	identity := common.IdentityFromContext(c.Request().Context())
	if !identity.IsDistributor() {
		return common.SendUnauthorizedError(c, "Distributor session required")
	}

	profile, err := h.distributorService.GetProfile(c.Request().Context(), identity.Distributor.ID)
	if err != nil {
		return handleServiceError(c, err, "Distributor")
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateMe handles PATCH /distributor/me with partial fields.
func (h *DistributorHandlers) UpdateMe(c echo.Context) error {
	identity := common.IdentityFromContext(c.Request().Context())
	if !identity.IsDistributor() {
		return common.SendUnauthorizedError(c, "Distributor session required")
	}

	var patch services.DistributorPatch
	if err := c.Bind(&patch); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	profile, err := h.distributorService.UpdateProfile(c.Request().Context(), identity.Distributor.ID, &patch)
	if err != nil {
		if common.IsAuthError(err) {
			return handleServiceError(c, err, "Distributor")
		}
		switch err {
		case common.ErrNotFound, common.ErrConflict:
			return handleServiceError(c, err, "Distributor")
		default:
			return common.SendClientError(c, err.Error())
		}
	}
	return c.JSON(http.StatusOK, profile)
}

type CreateDistributorRequest struct {
	ShopName string      `json:"shop_name"`
	Address  string      `json:"address"`
	Email    *string     `json:"email"`
	MobileNo string      `json:"mobile_no"`
	EndDate  time.Time   `json:"end_date"`
	BrandIDs []uuid.UUID `json:"brand_ids"`
}

// CreateDistributor handles POST /distributors.
func (h *DistributorHandlers) CreateDistributor(c echo.Context) error {
	var req CreateDistributorRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	distributor, err := h.distributorService.Create(c.Request().Context(), &services.CreateDistributorRequest{
		ShopName: req.ShopName,
		Address:  req.Address,
		Email:    req.Email,
		MobileNo: req.MobileNo,
		EndDate:  req.EndDate,
		BrandIDs: req.BrandIDs,
	})
	if err != nil {
		if err == common.ErrConflict {
			return common.SendConflictError(c, "Distributor with this shop name, email, or mobile already exists")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, distributor)
}

// ListDistributors handles GET /distributors.
func (h *DistributorHandlers) ListDistributors(c echo.Context) error {
	limit, offset := queryPagination(c)
	distributors, err := h.distributorService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return handleServiceError(c, err, "Distributors")
	}
	return c.JSON(http.StatusOK, distributors)
}

// GetDistributor handles GET /distributors/:id.
func (h *DistributorHandlers) GetDistributor(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	distributor, err := h.distributorService.GetProfile(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "Distributor")
	}
	return c.JSON(http.StatusOK, distributor)
}

// UpdateDistributor handles PUT /distributors/:id (admin partial update using
// the same patch shape as /me).
func (h *DistributorHandlers) UpdateDistributor(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var patch services.DistributorPatch
	if err := c.Bind(&patch); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	distributor, err := h.distributorService.UpdateProfile(c.Request().Context(), id, &patch)
	if err != nil {
		return handleServiceError(c, err, "Distributor")
	}
	return c.JSON(http.StatusOK, distributor)
}

// DeleteDistributor handles DELETE /distributors/:id. Subusers cascade.
func (h *DistributorHandlers) DeleteDistributor(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.distributorService.Delete(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err, "Distributor")
	}
	return c.NoContent(http.StatusNoContent)
}

type AssignBrandsRequest struct {
	BrandIDs []uuid.UUID `json:"brand_ids"`
}

// AssignBrands handles PUT /distributors/:id/brands, replacing the allowed
// brand set.
func (h *DistributorHandlers) AssignBrands(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req AssignBrandsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.distributorService.AssignBrands(c.Request().Context(), id, req.BrandIDs); err != nil {
		return handleServiceError(c, err, "Distributor")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Brands assigned"})
}

// distributorScope checks that the session distributor matches the :id path
// segment so a distributor can only manage its own subusers.
func distributorScope(c echo.Context) (uuid.UUID, error) {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return uuid.Nil, common.SendValidationError(c, "id", err.Error())
	}
	identity := common.IdentityFromContext(c.Request().Context())
	if !identity.IsDistributor() || identity.Distributor.ID != id {
		return uuid.Nil, common.SendUnauthorizedError(c, "You may only manage your own subusers")
	}
	return id, nil
}

// ListSubUsers handles GET /distributors/:id/subusers.
func (h *DistributorHandlers) ListSubUsers(c echo.Context) error {
	id, err := distributorScope(c)
	if err != nil {
		return err
	}

	subusers, err := h.subUserService.ListByDistributor(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "SubUsers")
	}
	return c.JSON(http.StatusOK, subusers)
}

type CreateSubUserRequest struct {
	ShopName           string  `json:"shop_name"`
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	MobileNo           string  `json:"mobile_no"`
	DiscountPercentage float64 `json:"discount_percentage"`
	City               *string `json:"city"`
}

// CreateSubUser handles POST /distributors/:id/subusers.
func (h *DistributorHandlers) CreateSubUser(c echo.Context) error {
	id, err := distributorScope(c)
	if err != nil {
		return err
	}

	var req CreateSubUserRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" || req.ShopName == "" {
		return common.SendClientError(c, "shop_name, email, and password are required")
	}

	subuser, err := h.subUserService.Create(c.Request().Context(), &services.CreateSubUserRequest{
		ShopName:           req.ShopName,
		Email:              req.Email,
		Password:           req.Password,
		MobileNo:           req.MobileNo,
		DiscountPercentage: req.DiscountPercentage,
		City:               req.City,
		DistributorID:      &id,
	})
	if err != nil {
		if err == common.ErrConflict {
			return common.SendConflictError(c, "SubUser with this shop name or email already exists")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, subuser)
}

type UpdateSubUserRequest struct {
	ShopName           *string  `json:"shop_name"`
	Email              *string  `json:"email"`
	Password           *string  `json:"password"`
	MobileNo           *string  `json:"mobile_no"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	City               *string  `json:"city"`
	IsActive           *bool    `json:"is_active"`
}

// UpdateSubUser handles PUT /distributors/:id/subusers/:subuserId.
func (h *DistributorHandlers) UpdateSubUser(c echo.Context) error {
	id, err := distributorScope(c)
	if err != nil {
		return err
	}
	subuserID, err := common.ValidateUUID(c.Param("subuserId"), "subuserId")
	if err != nil {
		return common.SendValidationError(c, "subuserId", err.Error())
	}

	subuser, err := h.subUserService.GetByID(c.Request().Context(), subuserID)
	if err != nil {
		return handleServiceError(c, err, "SubUser")
	}
	if subuser.DistributorID == nil || *subuser.DistributorID != id {
		return common.SendNotFoundError(c, "SubUser")
	}

	var req UpdateSubUserRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.ShopName != nil {
		subuser.ShopName = *req.ShopName
	}
	if req.Email != nil {
		subuser.Email = *req.Email
	}
	if req.MobileNo != nil {
		subuser.MobileNo = *req.MobileNo
	}
	if req.DiscountPercentage != nil {
		subuser.DiscountPercentage = *req.DiscountPercentage
	}
	if req.City != nil {
		subuser.City = req.City
	}
	if req.IsActive != nil {
		subuser.IsActive = *req.IsActive
	}

	newPassword := ""
	if req.Password != nil {
		newPassword = *req.Password
	}
	if err := h.subUserService.Update(c.Request().Context(), subuser, newPassword); err != nil {
		if err == common.ErrConflict {
			return common.SendConflictError(c, "SubUser with this shop name or email already exists")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, subuser)
}

// DeleteSubUser handles DELETE /distributors/:id/subusers/:subuserId.
func (h *DistributorHandlers) DeleteSubUser(c echo.Context) error {
	id, err := distributorScope(c)
	if err != nil {
		return err
	}
	subuserID, err := common.ValidateUUID(c.Param("subuserId"), "subuserId")
	if err != nil {
		return common.SendValidationError(c, "subuserId", err.Error())
	}

	subuser, err := h.subUserService.GetByID(c.Request().Context(), subuserID)
	if err != nil {
		return handleServiceError(c, err, "SubUser")
	}
	if subuser.DistributorID == nil || *subuser.DistributorID != id {
		return common.SendNotFoundError(c, "SubUser")
	}

	if err := h.subUserService.Delete(c.Request().Context(), subuserID); err != nil {
		return handleServiceError(c, err, "SubUser")
	}
	return c.NoContent(http.StatusNoContent)
}
