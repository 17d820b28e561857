package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"tyremart/internal/common"
	"tyremart/internal/models"
)

type DistributorRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    DistributorRepository
	id      uuid.UUID
	context context.Context
}

func (suite *DistributorRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewDistributorRepository(mock)
	suite.id = uuid.New()
	suite.context = context.Background()
}

func (suite *DistributorRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestDistributorRepoTestSuite(t *testing.T) {
	suite.Run(t, new(DistributorRepoTestSuite))
}

func (suite *DistributorRepoTestSuite) distributorRows(d *models.Distributor) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "shop_name", "address", "email", "mobile_no", "otp_code", "otp_created_at", "end_date", "created_at", "updated_at"}).
		AddRow(d.ID, d.ShopName, d.Address, d.Email, d.MobileNo, d.OTPCode, d.OTPCreatedAt, d.EndDate, d.CreatedAt, d.UpdatedAt)
}

func (suite *DistributorRepoTestSuite) TestCreate_Success() {
	email := "shop@example.com"
	d := &models.Distributor{
		ID:       suite.id,
		ShopName: "Apex Tyres",
		Address:  "14 Ring Road",
		Email:    &email,
		MobileNo: "9876543210",
		EndDate:  time.Now().AddDate(1, 0, 0),
	}

	suite.mock.ExpectExec(`INSERT INTO distributors`).
		WithArgs(d.ID, d.ShopName, d.Address, d.Email, d.MobileNo, d.EndDate).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, d)
	assert.NoError(suite.T(), err)
}

func (suite *DistributorRepoTestSuite) TestCreate_DuplicateMobile() {
	email := "shop@example.com"
	d := &models.Distributor{
		ID:       suite.id,
		ShopName: "Apex Tyres",
		Email:    &email,
		MobileNo: "9876543210",
	}

	suite.mock.ExpectExec(`INSERT INTO distributors`).
		WithArgs(d.ID, d.ShopName, d.Address, d.Email, d.MobileNo, d.EndDate).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := suite.repo.Create(suite.context, d)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
}

func (suite *DistributorRepoTestSuite) TestGetByID_Success() {
	email := "shop@example.com"
	now := time.Now()
	d := &models.Distributor{
		ID:        suite.id,
		ShopName:  "Apex Tyres",
		Address:   "14 Ring Road",
		Email:     &email,
		MobileNo:  "9876543210",
		EndDate:   now.AddDate(1, 0, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}

	suite.mock.ExpectQuery(`SELECT .+ FROM distributors WHERE id = \$1`).
		WithArgs(suite.id).
		WillReturnRows(suite.distributorRows(d))

	got, err := suite.repo.GetByID(suite.context, suite.id)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), d.ID, got.ID)
	assert.Equal(suite.T(), d.ShopName, got.ShopName)
	assert.Nil(suite.T(), got.OTPCode)
}

func (suite *DistributorRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT .+ FROM distributors WHERE id = \$1`).
		WithArgs(suite.id).
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.GetByID(suite.context, suite.id)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *DistributorRepoTestSuite) TestGetByEmail_Success() {
	email := "shop@example.com"
	now := time.Now()
	d := &models.Distributor{
		ID:        suite.id,
		ShopName:  "Apex Tyres",
		Email:     &email,
		MobileNo:  "9876543210",
		EndDate:   now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	suite.mock.ExpectQuery(`SELECT .+ FROM distributors WHERE email = \$1`).
		WithArgs(email).
		WillReturnRows(suite.distributorRows(d))

	got, err := suite.repo.GetByEmail(suite.context, email)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), d.ID, got.ID)
}

func (suite *DistributorRepoTestSuite) TestSetOTP() {
	issuedAt := time.Now()

	suite.mock.ExpectExec(`UPDATE distributors`).
		WithArgs("483920", issuedAt, suite.id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.SetOTP(suite.context, suite.id, "483920", issuedAt)
	assert.NoError(suite.T(), err)
}

func (suite *DistributorRepoTestSuite) TestClearOTP() {
	suite.mock.ExpectExec(`UPDATE distributors`).
		WithArgs(suite.id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.ClearOTP(suite.context, suite.id)
	assert.NoError(suite.T(), err)
}

func (suite *DistributorRepoTestSuite) TestListBrands() {
	now := time.Now()
	brandID := uuid.New()

	suite.mock.ExpectQuery(`SELECT b.id, b.code, b.name, .+ FROM brands b`).
		WithArgs(suite.id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "code", "name", "created_at", "updated_at"}).
			AddRow(brandID, "APL", "Apollo", now, now))

	brands, err := suite.repo.ListBrands(suite.context, suite.id)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), brands, 1)
	assert.Equal(suite.T(), "Apollo", brands[0].Name)
}

func (suite *DistributorRepoTestSuite) TestListBrands_EmptySet() {
	suite.mock.ExpectQuery(`SELECT b.id, b.code, b.name, .+ FROM brands b`).
		WithArgs(suite.id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "code", "name", "created_at", "updated_at"}))

	brands, err := suite.repo.ListBrands(suite.context, suite.id)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), brands)
}

func (suite *DistributorRepoTestSuite) TestAssignBrands_ReplacesSet() {
	brand1 := uuid.New()
	brand2 := uuid.New()

	suite.mock.ExpectExec(`DELETE FROM distributor_brands WHERE distributor_id = \$1`).
		WithArgs(suite.id).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	suite.mock.ExpectExec(`INSERT INTO distributor_brands`).
		WithArgs(suite.id, brand1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO distributor_brands`).
		WithArgs(suite.id, brand2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.AssignBrands(suite.context, suite.id, []uuid.UUID{brand1, brand2})
	assert.NoError(suite.T(), err)
}

func (suite *DistributorRepoTestSuite) TestAssignBrands_EmptyClearsSet() {
	suite.mock.ExpectExec(`DELETE FROM distributor_brands WHERE distributor_id = \$1`).
		WithArgs(suite.id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.AssignBrands(suite.context, suite.id, nil)
	assert.NoError(suite.T(), err)
}

func (suite *DistributorRepoTestSuite) TestDelete() {
	suite.mock.ExpectExec(`DELETE FROM distributors WHERE id = \$1`).
		WithArgs(suite.id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.id)
	assert.NoError(suite.T(), err)
}

func (suite *DistributorRepoTestSuite) TestList() {
	email := "shop@example.com"
	now := time.Now()
	d := &models.Distributor{
		ID:        suite.id,
		ShopName:  "Apex Tyres",
		Email:     &email,
		MobileNo:  "9876543210",
		EndDate:   now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	suite.mock.ExpectQuery(`SELECT .+ FROM distributors ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(suite.distributorRows(d))

	distributors, err := suite.repo.List(suite.context, 20, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), distributors, 1)
}
