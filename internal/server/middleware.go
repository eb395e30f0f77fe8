package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"option-tool/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware tags every request with an ID and a scoped logger.
func requestIDMiddleware(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		logger := logging.WithRequestID(base, id)
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), logger))
		c.Next()
	}
}

func accessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger := logging.FromContext(c.Request.Context())
		logging.LogRequest(logger, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
