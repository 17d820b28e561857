package common

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON envelope every failure is reported in.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// SendValidationError sends a 400 with per-field details.
func SendValidationError(c echo.Context, field, message string) error {
	return c.JSON(http.StatusBadRequest, &ErrorResponse{
		Error:   "Validation failed",
		Details: map[string]string{field: message},
	})
}

// SendClientError sends a 400 with a plain message.
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, &ErrorResponse{Error: message})
}

// SendNotFoundError sends a 404 for a missing resource.
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, &ErrorResponse{Error: fmt.Sprintf("%s not found", resource)})
}

// SendConflictError sends a 409 for a uniqueness violation.
func SendConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, &ErrorResponse{Error: message})
}

// SendUnauthorizedError sends a 401.
func SendUnauthorizedError(c echo.Context, message string) error {
	if message == "" {
		message = "Unauthorized"
	}
	return c.JSON(http.StatusUnauthorized, &ErrorResponse{Error: message})
}

// SendServerError sends a 500.
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, &ErrorResponse{Error: message})
}

// SendTooManyRequests sends a 429, used by the OTP resend throttle.
func SendTooManyRequests(c echo.Context, message string) error {
	return c.JSON(http.StatusTooManyRequests, &ErrorResponse{Error: message})
}

// ValidateUUID parses a path or query identifier.
func ValidateUUID(idStr, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID", fieldName)
	}
	return id, nil
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateDiscount checks a subuser discount percentage.
func ValidateDiscount(value float64) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("discount_percentage must be between 0 and 100")
	}
	return nil
}

// ValidatePaginationParams clamps limit/offset to sane bounds.
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// SafeString safely handles string pointer operations.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
