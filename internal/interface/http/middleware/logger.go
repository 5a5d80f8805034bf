package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/locallibrary/pkg/tracing"
)

// HeaderRequestID 请求ID响应头
const HeaderRequestID = "X-Request-ID"

const (
	keyRequestID = "request_id"

	// 超过该耗时的请求记warn
	slowRequestThreshold = 3 * time.Second
)

// RequestID 生成或透传请求ID
// 上游已带X-Request-ID时沿用，否则生成UUID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(keyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID 读取当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(keyRequestID)
}

// Logger 请求日志
// 记录：方法、路径、状态码、耗时、客户端IP、请求ID、TraceID
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400, latency > slowRequestThreshold:
			event = log.Warn()
		}

		event.
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Int("size", c.Writer.Size())
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			event.Str("trace_id", traceID)
		}
		if len(c.Errors) > 0 {
			event.Str("errors", c.Errors.String())
		}
		event.Msg("http request")
	}
}
