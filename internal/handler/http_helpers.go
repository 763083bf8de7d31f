package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
	"go.uber.org/zap"
)

// envelope is the body of every JSON response.
type envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Error: message})
}

// respondServiceError maps the service error taxonomy onto status codes.
// Storage failures are logged and reported without detail.
func (a *API) respondServiceError(c *gin.Context, err error, action string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, envelope{
			Success: false,
			Error:   "validation failed: " + verr.Fields.Error(),
			Fields:  verr.Fields.Map(),
		})
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		a.log(c).Error(action, zap.Error(err))
		respondError(c, http.StatusInternalServerError, action+" failed")
	}
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	return parseUint(c.Param(key), key)
}

func parseUint(raw, key string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// parseOptionalBool returns nil for an empty or unrecognised value.
func parseOptionalBool(raw string) *bool {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &value
}

func isAuthenticated(c *gin.Context) bool {
	return sessions.Default(c).Get(sessionUserIDKey) != nil
}
