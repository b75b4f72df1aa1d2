package v1

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	listIDParam = "list_id"
	itemIDParam = "item_id"
)

const (
	pageQuery    = "page"
	perPageQuery = "per_page"

	defaultPage    = 0
	defaultPerPage = 10
	maxPerPage     = 50
)

func pathID(c *gin.Context, name string) (int64, *apiError) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		apiErr := newMalformedInputError("invalid path parameter", fieldError{
			Field: name,
			Rule:  "int",
		})
		return 0, &apiErr
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, def int) (int, *apiError) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		apiErr := newMalformedInputError("invalid query parameter", fieldError{
			Field: name,
			Rule:  "int",
		})
		return 0, &apiErr
	}
	return v, nil
}

// pagination reads page and per_page and returns the row window they select.
// Pages are numbered from zero, so page n starts at row n*per_page.
func pagination(c *gin.Context) (offset, limit int, apiErr *apiError) {
	page, apiErr := queryInt(c, pageQuery, defaultPage)
	if apiErr != nil {
		return 0, 0, apiErr
	}
	perPage, apiErr := queryInt(c, perPageQuery, defaultPerPage)
	if apiErr != nil {
		return 0, 0, apiErr
	}

	var fields []fieldError
	if page < 0 {
		fields = append(fields, fieldError{Field: pageQuery, Rule: "min", Param: "0"})
	}
	if perPage < 1 {
		fields = append(fields, fieldError{Field: perPageQuery, Rule: "min", Param: "1"})
	} else if perPage > maxPerPage {
		fields = append(fields, fieldError{Field: perPageQuery, Rule: "max", Param: strconv.Itoa(maxPerPage)})
	}
	// A page whose first row can't be addressed would wrap the offset.
	if len(fields) == 0 && page > math.MaxInt/perPage {
		fields = append(fields, fieldError{Field: pageQuery, Rule: "max", Param: strconv.Itoa(math.MaxInt / perPage)})
	}
	if len(fields) > 0 {
		err := newMalformedInputError("invalid pagination", fields...)
		return 0, 0, &err
	}

	return page * perPage, perPage, nil
}
