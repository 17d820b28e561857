package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tyremart/internal/common"
	"tyremart/internal/services"
)

// AuthHandlers exposes the three login flows: distributor OTP request/verify,
// subuser password login, and token refresh.
type AuthHandlers struct {
	otpService     services.OTPService
	subUserService services.SubUserService
	tokenService   services.TokenService
}

func NewAuthHandlers(otpService services.OTPService, subUserService services.SubUserService, tokenService services.TokenService) *AuthHandlers {
	return &AuthHandlers{
		otpService:     otpService,
		subUserService: subUserService,
		tokenService:   tokenService,
	}
}

type SendOTPRequest struct {
	Email string `json:"email"`
}

// SendOTP handles POST /distributor/send-otp.
func (h *AuthHandlers) SendOTP(c echo.Context) error {
	var req SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Email == "" {
		return common.SendValidationError(c, "email", "email is required")
	}

	if err := h.otpService.RequestOTP(c.Request().Context(), req.Email); err != nil {
		return handleServiceError(c, err, "Distributor")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "OTP sent successfully"})
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP handles POST /distributor/verify-otp.
func (h *AuthHandlers) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Email == "" || req.OTP == "" {
		return common.SendClientError(c, "Email and OTP are required")
	}

	session, err := h.otpService.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return handleServiceError(c, err, "Distributor")
	}
	return c.JSON(http.StatusOK, session)
}

type SubUserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SubUserLogin handles POST /subuser/login.
func (h *AuthHandlers) SubUserLogin(c echo.Context) error {
	var req SubUserLoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return common.SendClientError(c, "Email and password are required")
	}

	session, err := h.subUserService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return handleServiceError(c, err, "SubUser")
	}
	return c.JSON(http.StatusOK, session)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.RefreshToken == "" {
		return common.SendValidationError(c, "refresh_token", "refresh_token is required")
	}

	tokens, err := h.tokenService.Refresh(req.RefreshToken)
	if err != nil {
		return handleServiceError(c, err, "Token")
	}
	return c.JSON(http.StatusOK, map[string]any{"tokens": tokens})
}
