// Package handler exposes the catalog aggregates over HTTP. Each aggregate
// gets its own handler; shared request parsing and error mapping live here.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/shared/response"
	"bookmarketplace-backend/pkg/logger"
)

const maxPageSize = 100

// pageRequest parses page, size and sort query parameters with the usual
// listing defaults.
func pageRequest(c *gin.Context) catalog.PageRequest {
	page := 0
	if raw := c.Query("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p >= 0 {
			page = p
		}
	}
	size := 20
	if raw := c.Query("size"); raw != "" {
		if s, err := strconv.Atoi(raw); err == nil && s > 0 {
			if s > maxPageSize {
				s = maxPageSize
			}
			size = s
		}
	}
	return catalog.PageRequest{Page: page, Size: size, Sort: c.Query("sort")}
}

func pageMeta[T any](page catalog.Page[T]) *response.Meta {
	return &response.Meta{Page: page.Page, Limit: page.Size, Total: page.Total}
}

// pathID parses the :id path parameter. A malformed id is reported to the
// client directly; ok tells the caller to stop.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case catalog.IsNotFound(err):
		response.NotFound(c, err.Error())
	case catalog.IsConflict(err):
		response.Conflict(c, err.Error())
	case catalog.IsValidation(err):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("request failed", err)
		response.InternalServerError(c, "internal server error")
	}
}

func created(c *gin.Context, data interface{}) {
	response.Success(c, http.StatusCreated, data)
}

func ok(c *gin.Context, data interface{}) {
	response.Success(c, http.StatusOK, data)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
