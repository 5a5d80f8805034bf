package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"github.com/xiebiao/locallibrary/pkg/tracing"
)

const tracerName = "http"

// Tracing 每个请求一个根Span，上游带traceparent时接续
// 未初始化TracerProvider时otel使用noop实现
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		name := c.FullPath()
		if name == "" {
			name = c.Request.URL.Path
		}
		ctx, span := tracing.StartSpan(ctx, tracerName, c.Request.Method+" "+name)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
			attribute.Int("http.status_code", c.Writer.Status()),
		)
		var err error
		if last := c.Errors.Last(); last != nil {
			err = last
		}
		tracing.End(span, err)
	}
}
