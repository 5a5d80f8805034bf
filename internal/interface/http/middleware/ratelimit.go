package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// 超过该时间没有请求的客户端被清理
	clientIdleTTL = 3 * time.Minute
	sweepInterval = time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 按客户端IP的令牌桶限流，只作用于表单提交(POST)
// 设计说明：
// 1. 每个IP一个rate.Limiter，每秒补充rps个令牌，桶容量burst
// 2. 读页面(GET)不限流
// 3. 请求路径上顺带清理空闲客户端，不起后台goroutine
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter 创建限流器
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow 消耗ip的一个令牌
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > sweepInterval {
		l.sweep(now)
	}

	cl, ok := l.clients[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

func (l *RateLimiter) sweep(now time.Time) {
	for ip, cl := range l.clients {
		if now.Sub(cl.lastSeen) > clientIdleTTL {
			delete(l.clients, ip)
		}
	}
	l.lastSweep = now
}

// Middleware 返回gin中间件，被限流时调用onLimited(为nil时直接返回429)
func (l *RateLimiter) Middleware(onLimited func(c *gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if l.Allow(ip) {
			c.Next()
			return
		}

		log.Warn().Str("client_ip", ip).Str("path", c.Request.URL.Path).Msg("rate limit exceeded")
		c.Header("Retry-After", "1")
		if onLimited == nil {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		onLimited(c)
		c.Abort()
	}
}
