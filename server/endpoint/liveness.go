package endpoint

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restsense/server/results"
)

// Liveness returns a handler for K8s liveness checks.
// It simply confirms the process is alive and able to serve HTTP.
func Liveness(serviceName string) gin.HandlerFunc {
	return results.Handle(func(*gin.Context) results.Result {
		return results.OK(gin.H{
			"status":    "alive",
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
