// Package router 路由注册
package router

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/locallibrary/internal/infrastructure/config"
	"github.com/xiebiao/locallibrary/internal/interface/http/handler"
	"github.com/xiebiao/locallibrary/internal/interface/http/middleware"
	"github.com/xiebiao/locallibrary/pkg/response"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	Base         *handler.Base
	Index        *handler.IndexHandler
	Author       *handler.AuthorHandler
	Book         *handler.BookHandler
	Genre        *handler.GenreHandler
	BookInstance *handler.BookInstanceHandler
	API          *handler.APIHandler
}

// pages 单个实体的页面处理器(列表、详情、增删改)
type pages interface {
	List(c *gin.Context)
	Detail(c *gin.Context)
	CreateForm(c *gin.Context)
	Create(c *gin.Context)
	UpdateForm(c *gin.Context)
	Update(c *gin.Context)
	DeleteForm(c *gin.Context)
	Delete(c *gin.Context)
}

// New 创建gin引擎并注册全部路由
// 中间件顺序：请求ID → 日志 → panic恢复 → 链路追踪 → 指标
// 目录页面额外经过会话和POST限流
func New(cfg *config.Config, tmpl *template.Template, h *Handlers) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(h.Base.Panic),
		middleware.Tracing(),
	)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	r.NoRoute(h.Base.NoRoute)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Swagger文档(swag init生成docs后可用)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/catalog/")
	})

	catalog := r.Group("/catalog")
	catalog.Use(middleware.Session())
	if cfg.Server.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst)
		catalog.Use(limiter.Middleware(h.Base.TooManyRequests))
	}
	{
		catalog.GET("/", h.Index.Index)
		registerPages(catalog, "author", h.Author)
		registerPages(catalog, "book", h.Book)
		registerPages(catalog, "genre", h.Genre)
		registerPages(catalog, "bookinstance", h.BookInstance)
	}

	// 只读JSON接口
	v1 := r.Group("/api/v1")
	{
		v1.GET("/authors", h.API.ListAuthors)
		v1.GET("/authors/:id", h.API.GetAuthor)
		v1.GET("/books", h.API.ListBooks)
		v1.GET("/books/:id", h.API.GetBook)
		v1.GET("/genres", h.API.ListGenres)
		v1.GET("/genres/:id", h.API.GetGenre)
		v1.GET("/bookinstances", h.API.ListBookInstances)
		v1.GET("/bookinstances/:id", h.API.GetBookInstance)
	}

	return r
}

// registerPages 注册一个实体的页面路由
//
//	GET       /catalog/<e>s
//	GET/POST  /catalog/<e>/create
//	GET       /catalog/<e>/:id
//	GET/POST  /catalog/<e>/:id/delete
//	GET/POST  /catalog/<e>/:id/update
func registerPages(g *gin.RouterGroup, name string, p pages) {
	g.GET("/"+name+"s", p.List)

	e := g.Group("/" + name)
	e.GET("/create", p.CreateForm)
	e.POST("/create", p.Create)
	e.GET("/:id", p.Detail)
	e.GET("/:id/delete", p.DeleteForm)
	e.POST("/:id/delete", p.Delete)
	e.GET("/:id/update", p.UpdateForm)
	e.POST("/:id/update", p.Update)
}
