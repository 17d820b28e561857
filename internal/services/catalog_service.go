package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tyremart/internal/caching"
	"tyremart/internal/common"
	"tyremart/internal/models"
	"tyremart/internal/repositories"
)

const (
	patternCacheTTL  = 5 * time.Minute
	brandSetCacheTTL = 2 * time.Minute
	imageURLExpiry   = 1 * time.Hour
)

var oneHundred = decimal.NewFromInt(100)

// CatalogQuery is the browse request for the pattern catalog: size dropdown
// filters plus the optional shop-front party identifiers used by
// unauthenticated storefront clients.
type CatalogQuery struct {
	Width         string
	Ratio         string
	Rim           string
	DistributorID *uuid.UUID
	SubUserID     *uuid.UUID
	Limit         int
	Offset        int
}

// CatalogService scopes catalog reads to the caller's allowed brand set and
// computes per-caller prices. Pattern writes also live here so brand-ownership
// rules and cache invalidation stay in one place.
type CatalogService interface {
	AllowedBrands(ctx context.Context, identity *common.CallerIdentity) ([]models.Brand, error)
	AllowedBrandsForParty(ctx context.Context, distributorID, subuserID *uuid.UUID) ([]models.Brand, error)
	PriceFor(pattern *models.TyrePattern, identity *common.CallerIdentity) decimal.Decimal

	ListPatterns(ctx context.Context, identity *common.CallerIdentity, query CatalogQuery) ([]models.PatternView, error)
	GetPattern(ctx context.Context, identity *common.CallerIdentity, id uuid.UUID) (*models.PatternView, error)
	CreatePattern(ctx context.Context, identity *common.CallerIdentity, pattern *models.TyrePattern) error
	UpdatePattern(ctx context.Context, pattern *models.TyrePattern) error
	DeletePattern(ctx context.Context, id uuid.UUID) error
	AttachImage(ctx context.Context, id uuid.UUID, filename, contentType string, reader io.Reader, size int64) error
}

type catalogService struct {
	patterns     repositories.TyrePatternRepository
	distributors repositories.DistributorRepository
	subusers     repositories.SubUserRepository
	cache        caching.CacheService
	storage      MinioService
}

func NewCatalogService(patterns repositories.TyrePatternRepository, distributors repositories.DistributorRepository, subusers repositories.SubUserRepository, cache caching.CacheService, storage MinioService) CatalogService {
	return &catalogService{
		patterns:     patterns,
		distributors: distributors,
		subusers:     subusers,
		cache:        cache,
		storage:      storage,
	}
}

// AllowedBrands returns the caller's visible brand set: a distributor's own
// assignments, or for a subuser its owning distributor's assignments. An
// orphaned subuser has no distributor and therefore sees no brands. Anonymous
// callers get nil, meaning no brand scoping applies.
func (s *catalogService) AllowedBrands(ctx context.Context, identity *common.CallerIdentity) ([]models.Brand, error) {
	switch {
	case identity.IsDistributor():
		return s.brandsOf(ctx, identity.Distributor.ID)
	case identity.IsSubUser():
		if identity.SubUser.DistributorID == nil {
			return []models.Brand{}, nil
		}
		return s.brandsOf(ctx, *identity.SubUser.DistributorID)
	default:
		return nil, nil
	}
}

// AllowedBrandsForParty resolves a brand set from caller-supplied identifiers.
// This path exists for anonymous shop-front browsing only; it filters catalog
// visibility but never feeds discount computation.
func (s *catalogService) AllowedBrandsForParty(ctx context.Context, distributorID, subuserID *uuid.UUID) ([]models.Brand, error) {
	if distributorID != nil {
		if _, err := s.distributors.GetByID(ctx, *distributorID); err != nil {
			return nil, err
		}
		return s.brandsOf(ctx, *distributorID)
	}
	if subuserID != nil {
		subuser, err := s.subusers.GetByID(ctx, *subuserID)
		if err != nil {
			return nil, err
		}
		if subuser.DistributorID == nil {
			return []models.Brand{}, nil
		}
		return s.brandsOf(ctx, *subuser.DistributorID)
	}
	return nil, nil
}

func (s *catalogService) brandsOf(ctx context.Context, distributorID uuid.UUID) ([]models.Brand, error) {
	if s.cache != nil {
		if brands, err := s.cache.GetDistributorBrands(ctx, distributorID); err == nil && brands != nil {
			return brands, nil
		}
	}
	brands, err := s.distributors.ListBrands(ctx, distributorID)
	if err != nil {
		return nil, err
	}
	if brands == nil {
		brands = []models.Brand{}
	}
	if s.cache != nil {
		if err := s.cache.SetDistributorBrands(ctx, distributorID, brands, brandSetCacheTTL); err != nil {
			log.Printf("WARN: brand set cache write failed: %v", err)
		}
	}
	return brands, nil
}

// PriceFor computes the caller's price at currency precision. Only a resolved
// active subuser gets its discount, read from the live record rather than
// token claims so rate changes apply on the next request. Rounding is
// half-away-from-zero at two decimal places.
func (s *catalogService) PriceFor(pattern *models.TyrePattern, identity *common.CallerIdentity) decimal.Decimal {
	price := pattern.Price.Round(2)
	if identity.IsSubUser() && identity.SubUser.IsActive {
		discount := decimal.NewFromFloat(identity.SubUser.DiscountPercentage)
		price = price.Sub(price.Mul(discount).Div(oneHundred)).Round(2)
	}
	return price
}

func (s *catalogService) ListPatterns(ctx context.Context, identity *common.CallerIdentity, query CatalogQuery) ([]models.PatternView, error) {
	filter := repositories.PatternFilter{
		Width:  query.Width,
		Ratio:  query.Ratio,
		Rim:    query.Rim,
		Limit:  query.Limit,
		Offset: query.Offset,
	}

	// Session identity wins over query-parameter scoping; the parameter path
	// only serves anonymous storefront reads.
	var brands []models.Brand
	var err error
	if !identity.IsAnonymous() {
		brands, err = s.AllowedBrands(ctx, identity)
	} else {
		brands, err = s.AllowedBrandsForParty(ctx, query.DistributorID, query.SubUserID)
	}
	if err != nil {
		return nil, err
	}
	if brands != nil {
		filter.ScopeToBrands = true
		filter.BrandIDs = brandIDs(brands)
	}

	patterns, err := s.patterns.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]models.PatternView, 0, len(patterns))
	for _, pattern := range patterns {
		views = append(views, s.view(ctx, pattern, identity))
	}
	return views, nil
}

func (s *catalogService) GetPattern(ctx context.Context, identity *common.CallerIdentity, id uuid.UUID) (*models.PatternView, error) {
	pattern, err := s.cachedPattern(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.view(ctx, pattern, identity)
	return &view, nil
}

func (s *catalogService) cachedPattern(ctx context.Context, id uuid.UUID) (*models.TyrePattern, error) {
	if s.cache != nil {
		if pattern, err := s.cache.GetPattern(ctx, id); err == nil && pattern != nil {
			return pattern, nil
		}
	}
	pattern, err := s.patterns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetPattern(ctx, pattern, patternCacheTTL); err != nil {
			log.Printf("WARN: pattern cache write failed: %v", err)
		}
	}
	return pattern, nil
}

// CreatePattern enforces the brand-ownership rule: a distributor may only
// create patterns under brands assigned to it.
func (s *catalogService) CreatePattern(ctx context.Context, identity *common.CallerIdentity, pattern *models.TyrePattern) error {
	if pattern.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	if identity.IsDistributor() && pattern.BrandID != nil {
		allowed, err := s.brandsOf(ctx, identity.Distributor.ID)
		if err != nil {
			return err
		}
		if !containsBrand(allowed, *pattern.BrandID) {
			return fmt.Errorf("selected brand is not assigned to your distributor")
		}
	}
	if pattern.ID == uuid.Nil {
		pattern.ID = uuid.New()
	}
	return s.patterns.Create(ctx, pattern)
}

func (s *catalogService) UpdatePattern(ctx context.Context, pattern *models.TyrePattern) error {
	if pattern.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	if err := s.patterns.Update(ctx, pattern); err != nil {
		return err
	}
	s.invalidatePattern(ctx, pattern.ID)
	return nil
}

func (s *catalogService) DeletePattern(ctx context.Context, id uuid.UUID) error {
	pattern, err := s.patterns.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.patterns.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePattern(ctx, id)
	if pattern.ImageObject != nil && s.storage != nil {
		if err := s.storage.DeleteImage(ctx, PatternImageBucket, *pattern.ImageObject); err != nil {
			log.Printf("WARN: failed to delete pattern image %s: %v", *pattern.ImageObject, err)
		}
	}
	return nil
}

// AttachImage uploads the photo to object storage and records the object key
// on the pattern.
func (s *catalogService) AttachImage(ctx context.Context, id uuid.UUID, filename, contentType string, reader io.Reader, size int64) error {
	if s.storage == nil {
		return errors.New("image storage is not configured")
	}
	if _, err := s.patterns.GetByID(ctx, id); err != nil {
		return err
	}

	objectName := fmt.Sprintf("patterns/%s/%s", id.String(), filename)
	if err := s.storage.UploadImage(ctx, PatternImageBucket, objectName, contentType, reader, size); err != nil {
		return fmt.Errorf("image upload failed: %w", err)
	}
	if err := s.patterns.SetImageObject(ctx, id, objectName); err != nil {
		return err
	}
	s.invalidatePattern(ctx, id)
	return nil
}

func (s *catalogService) invalidatePattern(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, id); err != nil {
		log.Printf("WARN: pattern cache invalidation failed: %v", err)
	}
}

func (s *catalogService) view(ctx context.Context, pattern *models.TyrePattern, identity *common.CallerIdentity) models.PatternView {
	view := models.PatternView{
		ID:          pattern.ID,
		TyreModelID: pattern.TyreModelID,
		BrandID:     pattern.BrandID,
		Name:        pattern.Name,
		Price:       pattern.Price.Round(2),
		FinalPrice:  s.PriceFor(pattern, identity),
		Stock:       pattern.Stock,
	}
	if pattern.ImageObject != nil && s.storage != nil {
		url, err := s.storage.GetPresignedURL(ctx, PatternImageBucket, *pattern.ImageObject, imageURLExpiry)
		if err != nil {
			log.Printf("WARN: presigned URL for %s failed: %v", *pattern.ImageObject, err)
		} else {
			view.ImageURL = &url
		}
	}
	return view
}

func brandIDs(brands []models.Brand) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(brands))
	for _, brand := range brands {
		ids = append(ids, brand.ID)
	}
	return ids
}

func containsBrand(brands []models.Brand, id uuid.UUID) bool {
	for _, brand := range brands {
		if brand.ID == id {
			return true
		}
	}
	return false
}
