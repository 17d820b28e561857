package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tyremart/internal/models"
	"tyremart/internal/services"
)

type MockOTPService struct {
	mock.Mock
}

func (m *MockOTPService) RequestOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockOTPService) VerifyOTP(ctx context.Context, email, code string) (*models.AuthSession, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthSession), args.Error(1)
}

type MockSubUserService struct {
	mock.Mock
}

func (m *MockSubUserService) Login(ctx context.Context, email, password string) (*models.AuthSession, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthSession), args.Error(1)
}

func (m *MockSubUserService) Create(ctx context.Context, req *services.CreateSubUserRequest) (*models.SubUser, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubUser), args.Error(1)
}

func (m *MockSubUserService) Update(ctx context.Context, subuser *models.SubUser, newPassword string) error {
	args := m.Called(ctx, subuser, newPassword)
	return args.Error(0)
}

func (m *MockSubUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.SubUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubUser), args.Error(1)
}

func (m *MockSubUserService) ListByDistributor(ctx context.Context, distributorID uuid.UUID) ([]*models.SubUser, error) {
	args := m.Called(ctx, distributorID)
	return args.Get(0).([]*models.SubUser), args.Error(1)
}

func (m *MockSubUserService) SetPassword(ctx context.Context, id uuid.UUID, rawPassword string) error {
	args := m.Called(ctx, id, rawPassword)
	return args.Error(0)
}

func (m *MockSubUserService) CheckPassword(subuser *models.SubUser, rawPassword string) bool {
	args := m.Called(subuser, rawPassword)
	return args.Bool(0)
}
