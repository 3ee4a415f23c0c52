package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/interfaces/http/dto"
)

const dateLayout = "2006-01-02"

// parseUUIDParam parses a UUID path parameter
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// parseOptionalUUIDQuery parses an optional UUID query parameter.
// Returns nil when the parameter is absent
func parseOptionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseDateQuery parses a required YYYY-MM-DD query parameter
func parseDateQuery(c *gin.Context, name string) (time.Time, error) {
	return time.Parse(dateLayout, c.Query(name))
}

// bindFilter binds common list parameters into a domain filter
func bindFilter(c *gin.Context) (shared.Filter, error) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  make(map[string]interface{}),
	}
	filter.Normalize()
	return filter, nil
}
