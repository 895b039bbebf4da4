package webapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{"data": data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, echo.Map{"error": errorBody{
		Code:    code,
		Message: message,
		Detail:  detail,
	}})
}

func paged(c echo.Context, rows interface{}, total, page, pageSize int) error {
	return c.JSON(http.StatusOK, echo.Map{
		"data":    rows,
		"total":   total,
		"page":    page,
		"perPage": pageSize,
	})
}

// parsePagination reads page/perPage query params with sane bounds.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = 20
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

// parseLimit reads a limit query param, falling back to def.
func parseLimit(c echo.Context, def int) int {
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 {
		return l
	}
	return def
}
