package web

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tiss/tiss/internal/apperr"
)

// PathID parses the named route parameter as a positive integer id.
func PathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("%s inválido", name)
	}
	return id, nil
}

// Filters returns the query parameters minus the pagination controls, for
// handing to a repository search. Returns nil when no filter was sent.
func Filters(c echo.Context) map[string]string {
	params := c.QueryParams()
	var filters map[string]string
	for key, values := range params {
		if key == "page" || key == "per_page" || len(values) == 0 {
			continue
		}
		if filters == nil {
			filters = make(map[string]string)
		}
		filters[key] = values[0]
	}
	return filters
}
