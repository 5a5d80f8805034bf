// Package handler 目录页面和只读JSON接口的HTTP处理器
//
// 页面处理器只做三件事：取参数、调用用例、把用例结果翻译成HTTP响应。
// 表单结果已保存/删除已完成时302重定向(Post/Redirect/Get)并写入一次性提示，
// 否则用同一个模板重新渲染；用例返回的error统一走错误页。
package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/locallibrary/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
)

// FlashStore 一次性提示存储(重定向后的下一个页面展示一次)
type FlashStore interface {
	Push(ctx context.Context, sessionID, message string) error
	Pop(ctx context.Context, sessionID string) ([]string, error)
}

// Base 页面处理器共用的渲染逻辑
type Base struct {
	flash FlashStore
}

// NewBase 创建页面渲染基础
func NewBase(flash FlashStore) *Base {
	return &Base{flash: flash}
}

// render 渲染页面，data中自动带上Title和待展示的提示
func (b *Base) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Flash"] = b.popFlash(c)
	c.HTML(status, name, data)
}

// redirect 302重定向，notice非空时写入提示
func (b *Base) redirect(c *gin.Context, location, notice string) {
	if notice != "" && b.flash != nil {
		if err := b.flash.Push(c.Request.Context(), middleware.GetSessionID(c), notice); err != nil {
			// 提示丢失不影响操作结果
			log.Warn().Err(err).Str("notice", notice).Msg("push flash failed")
		}
	}
	c.Redirect(http.StatusFound, location)
}

func (b *Base) popFlash(c *gin.Context) []string {
	if b.flash == nil {
		return nil
	}
	messages, err := b.flash.Pop(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		log.Warn().Err(err).Msg("pop flash failed")
		return nil
	}
	return messages
}

// fail 用例错误 → 错误页
// NotFound展示具体提示，其他错误只记日志，页面只显示通用信息
func (b *Base) fail(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := apperrors.HTTPStatus(appErr)
	_ = c.Error(err)

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Int("code", appErr.Code).
			Str("request_id", middleware.GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		b.errorPage(c, status, "Internal server error")
		return
	}
	b.errorPage(c, status, appErr.Message)
}

func (b *Base) errorPage(c *gin.Context, status int, message string) {
	c.HTML(status, "error", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

// NoRoute 未匹配路由
func (b *Base) NoRoute(c *gin.Context) {
	b.errorPage(c, http.StatusNotFound, "Page not found")
}

// Panic 供Recovery中间件渲染500页面
func (b *Base) Panic(c *gin.Context, _ error) {
	b.errorPage(c, http.StatusInternalServerError, "Internal server error")
}

// TooManyRequests 供限流中间件渲染429页面
func (b *Base) TooManyRequests(c *gin.Context) {
	b.errorPage(c, http.StatusTooManyRequests, apperrors.ErrTooManyRequests.Message)
}

// postForm 解析x-www-form-urlencoded表单
func (b *Base) postForm(c *gin.Context) (url.Values, bool) {
	if err := c.Request.ParseForm(); err != nil {
		b.fail(c, apperrors.ErrInvalidParams)
		return nil, false
	}
	return c.Request.PostForm, true
}

// deleteID 删除提交时优先用表单里的<entity>id，缺省时用路径参数
func deleteID(c *gin.Context, field string) string {
	if id := strings.TrimSpace(c.PostForm(field)); id != "" {
		return id
	}
	return c.Param("id")
}
