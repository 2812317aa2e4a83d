package endpoint

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restsense/observability"
	"github.com/kbukum/restsense/server/results"
	"github.com/kbukum/restsense/version"
)

// checkTimeout bounds each component check.
const checkTimeout = 5 * time.Second

// Health returns a handler that reports service health including component
// statuses. A component that is down renders 503 Service Unavailable.
func Health(serviceName string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return results.Handle(func(c *gin.Context) results.Result {
		sh := observability.NewServiceHealth(serviceName, version.Short())
		for _, checker := range checkers {
			ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
			sh.AddComponent(checker.CheckHealth(ctx))
			cancel()
		}

		if sh.Status == observability.HealthStatusDown {
			return results.ServiceUnavailable(sh)
		}
		return results.OK(sh)
	})
}
