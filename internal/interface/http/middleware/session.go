package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookie 会话Cookie名，只用于关联一次性提示(flash)
	SessionCookie = "library_sid"

	keySessionID  = "session_id"
	sessionMaxAge = 7 * 24 * 3600
)

// Session 保证每个客户端有一个会话ID
// 会话里不存任何数据，只作为flash提示在Redis中的key
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sid, sessionMaxAge, "/", "", false, true)
		}
		c.Set(keySessionID, sid)
		c.Next()
	}
}

// GetSessionID 读取当前会话ID，未经过Session中间件时为空
func GetSessionID(c *gin.Context) string {
	return c.GetString(keySessionID)
}
