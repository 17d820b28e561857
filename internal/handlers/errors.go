package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"tyremart/internal/common"
)

// handleServiceError maps service sentinels onto the HTTP error taxonomy.
func handleServiceError(c echo.Context, err error, resource string) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return common.SendNotFoundError(c, resource)
	case errors.Is(err, common.ErrConflict):
		return common.SendConflictError(c, resource+" already exists")
	case errors.Is(err, common.ErrInvalidOTP), errors.Is(err, common.ErrExpiredOTP):
		return common.SendClientError(c, err.Error())
	case errors.Is(err, common.ErrOTPThrottled):
		return common.SendTooManyRequests(c, err.Error())
	case errors.Is(err, common.ErrInvalidPassword):
		// Wrong password on a login attempt is a request error, not a
		// rejected session.
		return common.SendClientError(c, err.Error())
	case common.IsAuthError(err):
		return common.SendUnauthorizedError(c, err.Error())
	case errors.Is(err, common.ErrNotificationFailed):
		return common.SendServerError(c, err.Error())
	default:
		return common.SendServerError(c, "Operation failed")
	}
}
