package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"tyremart/internal/common"
	"tyremart/internal/models"
	"tyremart/internal/repositories"
)

// IdentityService turns an inbound bearer credential into a typed caller
// identity. An absent credential is not a failure; public endpoints see the
// anonymous identity.
type IdentityService interface {
	Resolve(ctx context.Context, bearer string) (*common.CallerIdentity, error)
}

type identityService struct {
	tokens       TokenService
	distributors repositories.DistributorRepository
	subusers     repositories.SubUserRepository
}

func NewIdentityService(tokens TokenService, distributors repositories.DistributorRepository, subusers repositories.SubUserRepository) IdentityService {
	return &identityService{
		tokens:       tokens,
		distributors: distributors,
		subusers:     subusers,
	}
}

func (s *identityService) Resolve(ctx context.Context, bearer string) (*common.CallerIdentity, error) {
	if bearer == "" {
		return common.AnonymousIdentity(), nil
	}

	claims, err := s.tokens.Parse(bearer)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, common.ErrMalformedClaims
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, common.ErrMalformedClaims
	}

	switch claims.Role {
	case models.RoleDistributor:
		distributor, err := s.distributors.GetByID(ctx, subjectID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.ErrUnknownSubject
			}
			return nil, err
		}
		return common.DistributorIdentity(distributor), nil
	case models.RoleSubUser:
		subuser, err := s.subusers.GetByID(ctx, subjectID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.ErrUnknownSubject
			}
			return nil, err
		}
		return common.SubUserIdentity(subuser), nil
	default:
		return nil, common.ErrUnknownRole
	}
}
