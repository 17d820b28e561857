package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"tyremart/internal/common"
	"tyremart/internal/models"
)

type IdentityServiceTestSuite struct {
	suite.Suite
	tokens       TokenService
	distributors *MockDistributorRepository
	subusers     *MockSubUserRepository
	service      IdentityService
	ctx          context.Context
}

func (suite *IdentityServiceTestSuite) SetupTest() {
	suite.tokens = NewTokenService("test-secret")
	suite.distributors = new(MockDistributorRepository)
	suite.subusers = new(MockSubUserRepository)
	suite.service = NewIdentityService(suite.tokens, suite.distributors, suite.subusers)
	suite.ctx = context.Background()
}

func (suite *IdentityServiceTestSuite) TestResolve_EmptyBearerIsAnonymous() {
	identity, err := suite.service.Resolve(suite.ctx, "")

	suite.NoError(err)
	suite.True(identity.IsAnonymous())
	suite.Nil(identity.Distributor)
	suite.Nil(identity.SubUser)
}

func (suite *IdentityServiceTestSuite) TestResolve_GarbageBearerRejected() {
	_, err := suite.service.Resolve(suite.ctx, "garbage")

	suite.ErrorIs(err, common.ErrInvalidToken)
}

func (suite *IdentityServiceTestSuite) TestResolve_Distributor() {
	distributor := &models.Distributor{ID: uuid.New(), ShopName: "Apex Tyres"}
	pair, err := suite.tokens.Issue(distributor.ID, models.RoleDistributor, nil)
	suite.Require().NoError(err)
	suite.distributors.On("GetByID", suite.ctx, distributor.ID).Return(distributor, nil)

	identity, err := suite.service.Resolve(suite.ctx, pair.AccessToken)

	suite.NoError(err)
	suite.True(identity.IsDistributor())
	suite.Equal(distributor.ID, identity.Distributor.ID)
	suite.distributors.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestResolve_SubUser() {
	ownerID := uuid.New()
	subuser := &models.SubUser{ID: uuid.New(), Email: "staff@shop.example", DistributorID: &ownerID, IsActive: true}
	pair, err := suite.tokens.Issue(subuser.ID, models.RoleSubUser, &ownerID)
	suite.Require().NoError(err)
	suite.subusers.On("GetByID", suite.ctx, subuser.ID).Return(subuser, nil)

	identity, err := suite.service.Resolve(suite.ctx, pair.AccessToken)

	suite.NoError(err)
	suite.True(identity.IsSubUser())
	suite.Equal(subuser.ID, identity.SubUser.ID)
}

func (suite *IdentityServiceTestSuite) TestResolve_DeletedSubjectRejected() {
	subjectID := uuid.New()
	pair, err := suite.tokens.Issue(subjectID, models.RoleDistributor, nil)
	suite.Require().NoError(err)
	suite.distributors.On("GetByID", suite.ctx, subjectID).Return(nil, common.ErrNotFound)

	_, err = suite.service.Resolve(suite.ctx, pair.AccessToken)

	suite.ErrorIs(err, common.ErrUnknownSubject)
}

func (suite *IdentityServiceTestSuite) TestResolve_UnknownRoleRejected() {
	pair, err := suite.tokens.Issue(uuid.New(), "admin", nil)
	suite.Require().NoError(err)

	_, err = suite.service.Resolve(suite.ctx, pair.AccessToken)

	suite.ErrorIs(err, common.ErrUnknownRole)
	suite.distributors.AssertNotCalled(suite.T(), "GetByID")
	suite.subusers.AssertNotCalled(suite.T(), "GetByID")
}

func (suite *IdentityServiceTestSuite) TestResolve_NonUUIDSubjectRejected() {
	// Issue never produces a non-UUID subject, so sign one directly against
	// the same secret.
	raw, err := signTestToken("test-secret", "not-a-uuid", models.RoleDistributor)
	suite.Require().NoError(err)

	_, err = suite.service.Resolve(suite.ctx, raw)

	suite.ErrorIs(err, common.ErrMalformedClaims)
}

func (suite *IdentityServiceTestSuite) TestResolve_MissingRoleRejected() {
	raw, err := signTestToken("test-secret", uuid.NewString(), "")
	suite.Require().NoError(err)

	_, err = suite.service.Resolve(suite.ctx, raw)

	suite.ErrorIs(err, common.ErrMalformedClaims)
}

func signTestToken(secret, subject, role string) (string, error) {
	claims := &Claims{
		Role:     role,
		TokenUse: tokenUseAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func TestIdentityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IdentityServiceTestSuite))
}
