package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"operations-api/internal/dto"
	"operations-api/internal/models"
	"operations-api/internal/validation"

	"github.com/labstack/echo/v4"
)

// pagingRules describes how one endpoint reads its pagination parameters
type pagingRules struct {
	required     bool
	defaultSize  int
	maxSize      int
	defaultOrder string
}

// parsePageParams reads page, size, sortedBy and sortedOrder from the query
// string. Field errors are returned keyed by parameter name.
func parsePageParams(c echo.Context, rules pagingRules) (dto.PageParams, map[string]string) {
	params := dto.PageParams{
		Size:        rules.defaultSize,
		SortedBy:    strings.TrimSpace(c.QueryParam("sortedBy")),
		SortedOrder: strings.ToUpper(strings.TrimSpace(c.QueryParam("sortedOrder"))),
	}
	if params.SortedOrder == "" {
		params.SortedOrder = rules.defaultOrder
	}

	fieldErrors := make(map[string]string)

	page, err := getIntParam(c, "page", 0, rules.required)
	if err != nil {
		fieldErrors["page"] = err.Error()
	}
	params.Page = page

	size, err := getIntParam(c, "size", rules.defaultSize, rules.required)
	if err != nil {
		fieldErrors["size"] = err.Error()
	}
	params.Size = size

	if len(fieldErrors) > 0 {
		return params, fieldErrors
	}

	if err := c.Validate(&params); err != nil {
		return params, validation.FieldErrors(err)
	}

	if rules.maxSize > 0 && params.Size > rules.maxSize {
		params.Size = rules.maxSize
	}

	return params, nil
}

// toPageRequest converts validated page parameters
func toPageRequest(params dto.PageParams) models.PageRequest {
	direction, ok := models.ParseSortDirection(params.SortedOrder)
	if !ok {
		direction = models.SortDesc
	}

	return models.PageRequest{
		Page:          params.Page,
		Size:          params.Size,
		SortField:     params.SortedBy,
		SortDirection: direction,
	}
}

func getIntParam(c echo.Context, name string, defaultValue int, required bool) (int, error) {
	param := strings.TrimSpace(c.QueryParam(name))
	if param == "" {
		if required {
			return defaultValue, fmt.Errorf("is required")
		}
		return defaultValue, nil
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return defaultValue, fmt.Errorf("must be an integer")
	}

	return value, nil
}
