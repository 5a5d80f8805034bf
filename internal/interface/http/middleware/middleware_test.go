package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/locallibrary/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "10.0.0.1:5555"
	for _, m := range mutate {
		m(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	t.Run("生成请求ID", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/x")
		id := w.Header().Get(HeaderRequestID)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("透传上游请求ID", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/x", func(req *http.Request) { req.Header.Set(HeaderRequestID, "upstream-1") })
		assert.Equal(t, "upstream-1", w.Header().Get(HeaderRequestID))
	})
}

func TestSession(t *testing.T) {
	r := gin.New()
	r.Use(Session())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetSessionID(c)) })

	t.Run("首次访问下发Cookie", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/x")
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookie, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, cookies[0].Value, w.Body.String())
	})

	t.Run("已有Cookie沿用", func(t *testing.T) {
		sid := "5b7c3a4e-9a3f-4c55-8f0e-4a51e4f7f0a1"
		w := serve(r, http.MethodGet, "/x", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sid})
		})
		assert.Equal(t, sid, w.Body.String())
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("非法Cookie重新生成", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/x", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../../etc"})
		})
		assert.NotEqual(t, "../../etc", w.Body.String())
		assert.Len(t, w.Result().Cookies(), 1)
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("超过突发容量被拒绝", func(t *testing.T) {
		l := NewRateLimiter(1, 2)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		assert.True(t, l.Allow("1.1.1.1"))
		assert.True(t, l.Allow("1.1.1.1"))
		assert.False(t, l.Allow("1.1.1.1"))
		assert.True(t, l.Allow("2.2.2.2"), "按IP隔离")

		now = now.Add(time.Second)
		assert.True(t, l.Allow("1.1.1.1"), "令牌补充")
	})

	t.Run("清理空闲客户端", func(t *testing.T) {
		l := NewRateLimiter(1, 1)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		l.Allow("1.1.1.1")
		now = now.Add(clientIdleTTL + time.Minute)
		l.Allow("2.2.2.2")

		l.mu.Lock()
		defer l.mu.Unlock()
		assert.NotContains(t, l.clients, "1.1.1.1")
		assert.Contains(t, l.clients, "2.2.2.2")
	})

	t.Run("只限制POST", func(t *testing.T) {
		r := gin.New()
		r.Use(NewRateLimiter(0.001, 1).Middleware(nil))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
		r.POST("/x", func(c *gin.Context) { c.Status(http.StatusFound) })

		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/x").Code)
		}
		assert.Equal(t, http.StatusFound, serve(r, http.MethodPost, "/x").Code)
		w := serve(r, http.MethodPost, "/x")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
	})
}

func TestRecovery(t *testing.T) {
	t.Run("交给页面处理函数", func(t *testing.T) {
		var got error
		r := gin.New()
		r.Use(Recovery(func(c *gin.Context, err error) {
			got = err
			c.String(http.StatusInternalServerError, "oops")
		}))
		r.GET("/x", func(c *gin.Context) { panic("boom") })

		w := serve(r, http.MethodGet, "/x")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "oops", w.Body.String())
		require.Error(t, got)
		assert.Equal(t, "boom", got.Error())
	})

	t.Run("无处理函数只返回状态码", func(t *testing.T) {
		r := gin.New()
		r.Use(Recovery(nil))
		r.GET("/x", func(c *gin.Context) { panic("boom") })
		assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/x").Code)
	})
}

func TestMetrics(t *testing.T) {
	metrics.InitMetrics()

	r := gin.New()
	r.Use(Metrics())
	r.GET("/catalog/author/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	labels := map[string]string{"method": "GET", "path": "/catalog/author/:id", "status": "200"}
	before := counterValue(t, metrics.HTTPRequestsTotal, labels)

	serve(r, http.MethodGet, "/catalog/author/a1")
	serve(r, http.MethodGet, "/catalog/author/a2")
	serve(r, http.MethodGet, "/nowhere")

	assert.Equal(t, float64(2), counterValue(t, metrics.HTTPRequestsTotal, labels)-before, "按路由模板聚合")
	assert.GreaterOrEqual(t, counterValue(t, metrics.HTTPRequestsTotal,
		map[string]string{"method": "GET", "path": "unmatched", "status": "404"}), float64(1))
}

func TestTracing(t *testing.T) {
	r := gin.New()
	r.Use(Tracing())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/x").Code)
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels map[string]string) float64 {
	var m dto.Metric
	require.NoError(t, vec.With(labels).Write(&m))
	return m.Counter.GetValue()
}
