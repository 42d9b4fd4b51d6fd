package observability

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// HeaderKind carries the EPP message detail of a gateway reply.
	HeaderKind = "X-EPP-Kind"
	// ContextClass is the gin context key a handler sets to the error class of
	// a rejected document.
	ContextClass = "epp.class"
)

// RequestLogger logs one line per gateway request with the EPP message kind
// or, for rejected documents, the error class.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}

		if kind := c.Writer.Header().Get(HeaderKind); kind != "" {
			event = event.Str("kind", kind)
		}
		if class := c.GetString(ContextClass); class != "" {
			event = event.Str("class", class)
		}
		if err := c.Errors.Last(); err != nil {
			event = event.Err(err.Err)
		}
		event.
			Str("method", c.Request.Method).
			Str("path", routePath(c)).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int64("request_bytes", c.Request.ContentLength).
			Int("bytes", c.Writer.Size()).
			Msg("gateway request")
	}
}

func RequestMetrics(gateway string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		RecordHTTPRequest(gateway, c.Request.Method, routePath(c), c.Writer.Status(), time.Since(start))
	}
}

// routePath prefers the matched route so path labels stay bounded.
func routePath(c *gin.Context) string {
	if path := c.FullPath(); path != "" {
		return path
	}
	return "unmatched"
}
