package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"tyremart/internal/caching"
	"tyremart/internal/common"
	"tyremart/internal/models"
	"tyremart/internal/repositories"
)

// DistributorService manages distributor shop accounts and their brand
// assignments.
type DistributorService interface {
	Create(ctx context.Context, req *CreateDistributorRequest) (*models.Distributor, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Distributor, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch *DistributorPatch) (*models.Distributor, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Distributor, error)
	AssignBrands(ctx context.Context, id uuid.UUID, brandIDs []uuid.UUID) error
}

type CreateDistributorRequest struct {
	ShopName string
	Address  string
	Email    *string
	MobileNo string
	EndDate  time.Time
	BrandIDs []uuid.UUID
}

// DistributorPatch holds the partial fields of a PATCH /distributor/me
// request; nil means unchanged.
type DistributorPatch struct {
	ShopName *string    `json:"shop_name"`
	Address  *string    `json:"address"`
	Email    *string    `json:"email"`
	MobileNo *string    `json:"mobile_no"`
	EndDate  *time.Time `json:"end_date"`
}

type distributorService struct {
	distributors repositories.DistributorRepository
	cache        caching.CacheService
}

func NewDistributorService(distributors repositories.DistributorRepository, cache caching.CacheService) DistributorService {
	return &distributorService{distributors: distributors, cache: cache}
}

func (s *distributorService) Create(ctx context.Context, req *CreateDistributorRequest) (*models.Distributor, error) {
	if err := common.ValidateRequiredString(req.ShopName, "shop_name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.MobileNo, "mobile_no"); err != nil {
		return nil, err
	}

	distributor := &models.Distributor{
		ID:       uuid.New(),
		ShopName: req.ShopName,
		Address:  req.Address,
		Email:    req.Email,
		MobileNo: req.MobileNo,
		EndDate:  req.EndDate,
	}
	if err := s.distributors.Create(ctx, distributor); err != nil {
		return nil, err
	}
	if len(req.BrandIDs) > 0 {
		if err := s.AssignBrands(ctx, distributor.ID, req.BrandIDs); err != nil {
			return nil, err
		}
	}
	return s.GetProfile(ctx, distributor.ID)
}

// GetProfile loads the distributor with its allowed brand set attached.
func (s *distributorService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Distributor, error) {
	distributor, err := s.distributors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	brands, err := s.distributors.ListBrands(ctx, id)
	if err != nil {
		return nil, err
	}
	distributor.Brands = brands
	return distributor, nil
}

func (s *distributorService) UpdateProfile(ctx context.Context, id uuid.UUID, patch *DistributorPatch) (*models.Distributor, error) {
	distributor, err := s.distributors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ShopName != nil {
		if err := common.ValidateRequiredString(*patch.ShopName, "shop_name"); err != nil {
			return nil, err
		}
		distributor.ShopName = *patch.ShopName
	}
	if patch.Address != nil {
		distributor.Address = *patch.Address
	}
	if patch.Email != nil {
		distributor.Email = patch.Email
	}
	if patch.MobileNo != nil {
		if err := common.ValidateRequiredString(*patch.MobileNo, "mobile_no"); err != nil {
			return nil, err
		}
		distributor.MobileNo = *patch.MobileNo
	}
	if patch.EndDate != nil {
		distributor.EndDate = *patch.EndDate
	}

	if err := s.distributors.Update(ctx, distributor); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

// Delete removes the account; its subusers go with it via the schema's
// cascade rule.
func (s *distributorService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.distributors.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateBrands(ctx, id)
	return nil
}

func (s *distributorService) List(ctx context.Context, limit, offset int) ([]*models.Distributor, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.distributors.List(ctx, limit, offset)
}

func (s *distributorService) AssignBrands(ctx context.Context, id uuid.UUID, brandIDs []uuid.UUID) error {
	if err := s.distributors.AssignBrands(ctx, id, brandIDs); err != nil {
		return err
	}
	s.invalidateBrands(ctx, id)
	return nil
}

func (s *distributorService) invalidateBrands(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDistributorBrands(ctx, id); err != nil {
		log.Printf("WARN: brand set cache invalidation failed: %v", err)
	}
}
