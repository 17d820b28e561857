package handlers

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tyremart/internal/common"
)

func queryPagination(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	return common.ValidatePaginationParams(limit, offset)
}

// queryUUID parses an optional UUID query parameter; absent returns nil.
func queryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	value := c.QueryParam(name)
	if value == "" {
		return nil, nil
	}
	id, err := common.ValidateUUID(value, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
