package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"tyremart/internal/common"
	"tyremart/internal/models"
	"tyremart/internal/services"
)

type AuthHandlersTestSuite struct {
	suite.Suite
	otp      *MockOTPService
	subusers *MockSubUserService
	handlers *AuthHandlers
	echo     *echo.Echo
}

func (suite *AuthHandlersTestSuite) SetupTest() {
	suite.otp = new(MockOTPService)
	suite.subusers = new(MockSubUserService)
	suite.handlers = NewAuthHandlers(suite.otp, suite.subusers, services.NewTokenService("test-secret"))
	suite.echo = echo.New()
}

func TestAuthHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlersTestSuite))
}

func (suite *AuthHandlersTestSuite) postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return suite.echo.NewContext(req, rec), rec
}

func (suite *AuthHandlersTestSuite) errorBody(rec *httptest.ResponseRecorder) common.ErrorResponse {
	var body common.ErrorResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (suite *AuthHandlersTestSuite) TestSendOTP_Success() {
	suite.otp.On("RequestOTP", mock.Anything, "shop@example.com").Return(nil)
	c, rec := suite.postJSON("/distributor/send-otp", `{"email":"shop@example.com"}`)

	err := suite.handlers.SendOTP(c)

	suite.NoError(err)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "OTP sent successfully")
}

func (suite *AuthHandlersTestSuite) TestSendOTP_MissingEmail() {
	c, rec := suite.postJSON("/distributor/send-otp", `{}`)

	err := suite.handlers.SendOTP(c)

	suite.NoError(err)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.otp.AssertNotCalled(suite.T(), "RequestOTP")
}

func (suite *AuthHandlersTestSuite) TestSendOTP_UnknownEmail() {
	suite.otp.On("RequestOTP", mock.Anything, "nobody@example.com").Return(common.ErrNotFound)
	c, rec := suite.postJSON("/distributor/send-otp", `{"email":"nobody@example.com"}`)

	err := suite.handlers.SendOTP(c)

	suite.NoError(err)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *AuthHandlersTestSuite) TestSendOTP_Throttled() {
	suite.otp.On("RequestOTP", mock.Anything, "shop@example.com").Return(common.ErrOTPThrottled)
	c, rec := suite.postJSON("/distributor/send-otp", `{"email":"shop@example.com"}`)

	err := suite.handlers.SendOTP(c)

	suite.NoError(err)
	suite.Equal(http.StatusTooManyRequests, rec.Code)
}

func (suite *AuthHandlersTestSuite) TestSendOTP_DeliveryFailure() {
	suite.otp.On("RequestOTP", mock.Anything, "shop@example.com").Return(common.ErrNotificationFailed)
	c, rec := suite.postJSON("/distributor/send-otp", `{"email":"shop@example.com"}`)

	err := suite.handlers.SendOTP(c)

	suite.NoError(err)
	suite.Equal(http.StatusInternalServerError, rec.Code)
}

func (suite *AuthHandlersTestSuite) TestVerifyOTP_Success() {
	session := &models.AuthSession{
		Message:  "Login successful",
		ShopName: "Apex Tyres",
		Email:    "shop@example.com",
		Tokens:   &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
	}
	suite.otp.On("VerifyOTP", mock.Anything, "shop@example.com", "483920").Return(session, nil)
	c, rec := suite.postJSON("/distributor/verify-otp", `{"email":"shop@example.com","otp":"483920"}`)

	err := suite.handlers.VerifyOTP(c)

	suite.NoError(err)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"access"`)
	suite.Contains(rec.Body.String(), `"refresh"`)
}

func (suite *AuthHandlersTestSuite) TestVerifyOTP_MissingFields() {
	c, rec := suite.postJSON("/distributor/verify-otp", `{"email":"shop@example.com"}`)

	err := suite.handlers.VerifyOTP(c)

	suite.NoError(err)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.otp.AssertNotCalled(suite.T(), "VerifyOTP")
}

func (suite *AuthHandlersTestSuite) TestVerifyOTP_WrongCode() {
	suite.otp.On("VerifyOTP", mock.Anything, "shop@example.com", "000000").Return(nil, common.ErrInvalidOTP)
	c, rec := suite.postJSON("/distributor/verify-otp", `{"email":"shop@example.com","otp":"000000"}`)

	err := suite.handlers.VerifyOTP(c)

	suite.NoError(err)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("invalid OTP", suite.errorBody(rec).Error)
}

func (suite *AuthHandlersTestSuite) TestVerifyOTP_ExpiredCode() {
	suite.otp.On("VerifyOTP", mock.Anything, "shop@example.com", "483920").Return(nil, common.ErrExpiredOTP)
	c, rec := suite.postJSON("/distributor/verify-otp", `{"email":"shop@example.com","otp":"483920"}`)

	err := suite.handlers.VerifyOTP(c)

	suite.NoError(err)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("OTP expired", suite.errorBody(rec).Error)
}

func (suite *AuthHandlersTestSuite) TestSubUserLogin_Success() {
	session := &models.AuthSession{
		Message:  "Login successful",
		ShopName: "Corner Tyres",
		Email:    "corner@shop.example",
		Tokens:   &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
	}
	suite.subusers.On("Login", mock.Anything, "corner@shop.example", "hunter2").Return(session, nil)
	c, rec := suite.postJSON("/subuser/login", `{"email":"corner@shop.example","password":"hunter2"}`)

	err := suite.handlers.SubUserLogin(c)

	suite.NoError(err)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "Corner Tyres")
}

func (suite *AuthHandlersTestSuite) TestSubUserLogin_WrongPassword() {
	suite.subusers.On("Login", mock.Anything, "corner@shop.example", "wrong").Return(nil, common.ErrInvalidPassword)
	c, rec := suite.postJSON("/subuser/login", `{"email":"corner@shop.example","password":"wrong"}`)

	err := suite.handlers.SubUserLogin(c)

	suite.NoError(err)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *AuthHandlersTestSuite) TestSubUserLogin_InactiveAccount() {
	suite.subusers.On("Login", mock.Anything, "corner@shop.example", "hunter2").Return(nil, common.ErrInactiveAccount)
	c, rec := suite.postJSON("/subuser/login", `{"email":"corner@shop.example","password":"hunter2"}`)

	err := suite.handlers.SubUserLogin(c)

	suite.NoError(err)
	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func (suite *AuthHandlersTestSuite) TestSubUserLogin_MissingPassword() {
	c, rec := suite.postJSON("/subuser/login", `{"email":"corner@shop.example"}`)

	err := suite.handlers.SubUserLogin(c)

	suite.NoError(err)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.subusers.AssertNotCalled(suite.T(), "Login")
}

func (suite *AuthHandlersTestSuite) TestRefresh_Success() {
	tokens := services.NewTokenService("test-secret")
	pair, err := tokens.Issue(uuid.New(), models.RoleDistributor, nil)
	suite.Require().NoError(err)

	c, rec := suite.postJSON("/auth/refresh", `{"refresh_token":"`+pair.RefreshToken+`"}`)

	err = suite.handlers.Refresh(c)

	suite.NoError(err)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "tokens")
}

func (suite *AuthHandlersTestSuite) TestRefresh_RejectsAccessToken() {
	tokens := services.NewTokenService("test-secret")
	pair, err := tokens.Issue(uuid.New(), models.RoleDistributor, nil)
	suite.Require().NoError(err)

	c, rec := suite.postJSON("/auth/refresh", `{"refresh_token":"`+pair.AccessToken+`"}`)

	err = suite.handlers.Refresh(c)

	suite.NoError(err)
	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func (suite *AuthHandlersTestSuite) TestRefresh_MissingToken() {
	c, rec := suite.postJSON("/auth/refresh", `{}`)

	err := suite.handlers.Refresh(c)

	suite.NoError(err)
	suite.Equal(http.StatusBadRequest, rec.Code)
}
