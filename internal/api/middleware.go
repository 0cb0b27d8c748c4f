// Package api wires up the Gin HTTP router for both node roles: the
// master's write/read/health endpoints and a secondary's
// replicate/read/health endpoints.
package api

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger is a Gin middleware that logs every request with method, path,
// status code, and latency, tagged with the component that handled it
// (e.g. "master", "secondary") so a mixed log stream from both node
// roles stays attributable.
func Logger(component string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s: [%s] %s | %d | %s",
			component,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// Recovery recovers from a handler panic, logs it tagged with component
// like Logger, and answers 500 with a JSON error body. It replaces Gin's
// default recovery rather than wrapping it.
func Recovery(component string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("%s: PANIC recovered: %v", component, err)
				c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}
