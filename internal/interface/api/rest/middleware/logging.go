package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const tokenPrefixLen = 16

// tokenPrefix truncates a bearer token for logging. Full tokens are
// capability secrets and must never reach the log stream.
func tokenPrefix(authHeader string) string {
	tok := strings.TrimPrefix(authHeader, "Bearer ")
	if tok == authHeader || tok == "" {
		return "NONE"
	}
	if len(tok) > tokenPrefixLen {
		tok = tok[:tokenPrefixLen]
	}
	return tok + "…"
}

func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		if mCounter != nil {
			mCounter.WithLabelValues("app_requests_total").Inc()
		}

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("token", tokenPrefix(c.GetHeader("Authorization"))),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}
