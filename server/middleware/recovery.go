package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/restsense/errors"
	"github.com/kbukum/restsense/logger"
	"github.com/kbukum/restsense/server/results"
)

// Recovery returns a Gin middleware that recovers from panics, logs the
// stack and renders a 500 Internal Server Error result.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.WithContext(c.Request.Context()).Error("Panic recovered", map[string]interface{}{
					"error":     fmt.Sprintf("%v", err),
					"stack":     string(debug.Stack()),
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
					"client_ip": c.ClientIP(),
				})
				if c.Writer.Written() {
					c.Abort()
					return
				}
				results.InternalServerError(apperrors.Internal(nil).ToResponse()).Render(c)
				c.Abort()
			}
		}()
		c.Next()
	}
}
