package http

import (
	"errors"
	"net/http"

	"github.com/aq2208/oms-api/internal/logging"
	"github.com/aq2208/oms-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

// writeError maps business-layer failures to the response contract:
// malformed slash date → 400 with a single top-level message, validation
// failures → 400 with a field-keyed map, unknown ids → 404, duplicate
// idempotency key → 409.
func writeError(c *gin.Context, err error) {
	var ferr usecase.FieldErrors
	switch {
	case errors.Is(err, usecase.ErrBadDateFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": usecase.MsgBadDateFormat})
	case errors.As(err, &ferr):
		c.JSON(http.StatusBadRequest, ferr)
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, usecase.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logging.From(c).Error("request failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
