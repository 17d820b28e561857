package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tyremart/internal/models"
	"tyremart/internal/repositories"
)

type MockDistributorRepository struct {
	mock.Mock
}

func (m *MockDistributorRepository) Create(ctx context.Context, distributor *models.Distributor) error {
	args := m.Called(ctx, distributor)
	return args.Error(0)
}

func (m *MockDistributorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Distributor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Distributor), args.Error(1)
}

func (m *MockDistributorRepository) GetByEmail(ctx context.Context, email string) (*models.Distributor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Distributor), args.Error(1)
}

func (m *MockDistributorRepository) GetByMobile(ctx context.Context, mobileNo string) (*models.Distributor, error) {
	args := m.Called(ctx, mobileNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Distributor), args.Error(1)
}

func (m *MockDistributorRepository) Update(ctx context.Context, distributor *models.Distributor) error {
	args := m.Called(ctx, distributor)
	return args.Error(0)
}

func (m *MockDistributorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDistributorRepository) List(ctx context.Context, limit, offset int) ([]*models.Distributor, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Distributor), args.Error(1)
}

func (m *MockDistributorRepository) SetOTP(ctx context.Context, id uuid.UUID, code string, issuedAt time.Time) error {
	args := m.Called(ctx, id, code, issuedAt)
	return args.Error(0)
}

func (m *MockDistributorRepository) ClearOTP(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDistributorRepository) ListBrands(ctx context.Context, distributorID uuid.UUID) ([]models.Brand, error) {
	args := m.Called(ctx, distributorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Brand), args.Error(1)
}

func (m *MockDistributorRepository) AssignBrands(ctx context.Context, distributorID uuid.UUID, brandIDs []uuid.UUID) error {
	args := m.Called(ctx, distributorID, brandIDs)
	return args.Error(0)
}

type MockSubUserRepository struct {
	mock.Mock
}

func (m *MockSubUserRepository) Create(ctx context.Context, subuser *models.SubUser) error {
	args := m.Called(ctx, subuser)
	return args.Error(0)
}

func (m *MockSubUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SubUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubUser), args.Error(1)
}

func (m *MockSubUserRepository) GetByEmail(ctx context.Context, email string) (*models.SubUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubUser), args.Error(1)
}

func (m *MockSubUserRepository) Update(ctx context.Context, subuser *models.SubUser) error {
	args := m.Called(ctx, subuser)
	return args.Error(0)
}

func (m *MockSubUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubUserRepository) ListByDistributor(ctx context.Context, distributorID uuid.UUID) ([]*models.SubUser, error) {
	args := m.Called(ctx, distributorID)
	return args.Get(0).([]*models.SubUser), args.Error(1)
}

func (m *MockSubUserRepository) SetPasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

type MockTyrePatternRepository struct {
	mock.Mock
}

func (m *MockTyrePatternRepository) Create(ctx context.Context, pattern *models.TyrePattern) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockTyrePatternRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TyrePattern, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TyrePattern), args.Error(1)
}

func (m *MockTyrePatternRepository) Update(ctx context.Context, pattern *models.TyrePattern) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockTyrePatternRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTyrePatternRepository) List(ctx context.Context, filter repositories.PatternFilter) ([]*models.TyrePattern, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TyrePattern), args.Error(1)
}

func (m *MockTyrePatternRepository) SetImageObject(ctx context.Context, id uuid.UUID, objectName string) error {
	args := m.Called(ctx, id, objectName)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendEmail(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func (m *MockNotificationService) SendSMS(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadImage(ctx context.Context, bucketName, objectName, contentType string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, contentType, reader, objectSize)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) DeleteImage(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}
