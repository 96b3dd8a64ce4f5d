package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError aborts the request with {"error": message}. Server faults are
// logged at error level, everything else at warn.
func WriteError(c *gin.Context, logger *zap.Logger, status int, err error, fields ...zap.Field) {
	if err == nil {
		err = fmt.Errorf("%s", http.StatusText(status))
	}

	fields = append(fields,
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", RequestID(c)),
	)
	message := fmt.Sprintf("%d %s", status, http.StatusText(status))

	if status >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Warn(message, fields...)
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}
