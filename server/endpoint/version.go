package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/restsense/server/results"
	"github.com/kbukum/restsense/version"
)

// Version returns a handler that reports build version information.
func Version() gin.HandlerFunc {
	return results.Handle(func(*gin.Context) results.Result {
		return results.OK(version.Get())
	})
}
