package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tyremart/internal/common"
	"tyremart/internal/models"
	"tyremart/internal/repositories"
)

// SubUserService owns the password contract and subuser lifecycle. Raw
// passwords are hashed immediately and never persisted or logged.
type SubUserService interface {
	Login(ctx context.Context, email, password string) (*models.AuthSession, error)
	Create(ctx context.Context, req *CreateSubUserRequest) (*models.SubUser, error)
	Update(ctx context.Context, subuser *models.SubUser, newPassword string) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SubUser, error)
	ListByDistributor(ctx context.Context, distributorID uuid.UUID) ([]*models.SubUser, error)
	SetPassword(ctx context.Context, id uuid.UUID, rawPassword string) error
	CheckPassword(subuser *models.SubUser, rawPassword string) bool
}

// CreateSubUserRequest carries the fields for a new staff account under a
// distributor.
type CreateSubUserRequest struct {
	ShopName           string
	Email              string
	Password           string
	MobileNo           string
	DiscountPercentage float64
	City               *string
	DistributorID      *uuid.UUID
}

type subUserService struct {
	subusers repositories.SubUserRepository
	tokens   TokenService
}

func NewSubUserService(subusers repositories.SubUserRepository, tokens TokenService) SubUserService {
	return &subUserService{subusers: subusers, tokens: tokens}
}

// Login authenticates a subuser by email and password and mints a session
// carrying the owning distributor id for catalog scoping.
func (s *subUserService) Login(ctx context.Context, email, password string) (*models.AuthSession, error) {
	subuser, err := s.subusers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !subuser.IsActive {
		return nil, common.ErrInactiveAccount
	}
	if !s.CheckPassword(subuser, password) {
		return nil, common.ErrInvalidPassword
	}

	tokens, err := s.tokens.Issue(subuser.ID, models.RoleSubUser, subuser.DistributorID)
	if err != nil {
		return nil, err
	}

	return &models.AuthSession{
		Message:  "Login successful",
		ShopName: subuser.ShopName,
		Email:    subuser.Email,
		Tokens:   tokens,
	}, nil
}

func (s *subUserService) Create(ctx context.Context, req *CreateSubUserRequest) (*models.SubUser, error) {
	if req.Password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if err := common.ValidateDiscount(req.DiscountPercentage); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	subuser := &models.SubUser{
		ID:                 uuid.New(),
		ShopName:           req.ShopName,
		Email:              req.Email,
		PasswordHash:       hash,
		MobileNo:           req.MobileNo,
		DiscountPercentage: req.DiscountPercentage,
		City:               req.City,
		IsActive:           true,
		DistributorID:      req.DistributorID,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	if err := s.subusers.Create(ctx, subuser); err != nil {
		return nil, err
	}
	return subuser, nil
}

// Update saves field changes; a non-empty newPassword is re-hashed through the
// password contract.
func (s *subUserService) Update(ctx context.Context, subuser *models.SubUser, newPassword string) error {
	if err := common.ValidateDiscount(subuser.DiscountPercentage); err != nil {
		return err
	}
	if err := s.subusers.Update(ctx, subuser); err != nil {
		return err
	}
	if newPassword != "" {
		return s.SetPassword(ctx, subuser.ID, newPassword)
	}
	return nil
}

func (s *subUserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.subusers.Delete(ctx, id)
}

func (s *subUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.SubUser, error) {
	return s.subusers.GetByID(ctx, id)
}

func (s *subUserService) ListByDistributor(ctx context.Context, distributorID uuid.UUID) ([]*models.SubUser, error) {
	return s.subusers.ListByDistributor(ctx, distributorID)
}

func (s *subUserService) SetPassword(ctx context.Context, id uuid.UUID, rawPassword string) error {
	if rawPassword == "" {
		return errors.New("password must not be empty")
	}
	hash, err := hashPassword(rawPassword)
	if err != nil {
		return err
	}
	return s.subusers.SetPasswordHash(ctx, id, hash)
}

// CheckPassword compares against the stored hash. bcrypt's comparison is
// constant-time.
func (s *subUserService) CheckPassword(subuser *models.SubUser, rawPassword string) bool {
	if subuser.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(subuser.PasswordHash), []byte(rawPassword)) == nil
}

func hashPassword(rawPassword string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
