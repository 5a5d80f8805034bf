package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Recovery 捕获panic，记录堆栈后交给onPanic渲染500页面
// onPanic为nil时只返回状态码
func Recovery(onPanic func(c *gin.Context, err error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}

			log.Error().
				Err(err).
				Str("request_id", GetRequestID(c)).
				Str("path", c.Request.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			c.Header("Connection", "close")
			if onPanic == nil || c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			onPanic(c, err)
			c.Abort()
		}()
		c.Next()
	}
}
