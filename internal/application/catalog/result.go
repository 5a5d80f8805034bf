// Package catalog 目录用例的公共类型和首页统计
//
// 用例方法不把"校验失败"和"删除被拦截"当作错误返回，而是返回带类型的结果，
// 由HTTP层决定重新渲染还是重定向；返回的error只有两类：实体不存在(NotFound)和存储故障。
package catalog

import (
	"context"

	"github.com/xiebiao/locallibrary/pkg/validator"
)

// TracerName 用例层Span的tracer名称
const TracerName = "catalog"

// 事件动作
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EventPublisher 目录变更事件发布(尽力而为，不返回错误)
type EventPublisher interface {
	Publish(ctx context.Context, entity, action, entityID string)
}

// FormResult 表单提交结果
// 设计说明：
// 1. Candidate是由清洗后的输入构造的候选实体，校验失败时用于回显
// 2. Errors按规则声明顺序排列
// 3. RedirectURL非空表示已保存，调用方应重定向(Post/Redirect/Get)，不再渲染
type FormResult[T any] struct {
	Candidate   *T
	Errors      []validator.FieldError
	RedirectURL string
	Notice      string // 保存成功后展示一次的提示
}

// Saved 是否已保存
func (r *FormResult[T]) Saved() bool {
	return r.RedirectURL != ""
}

// Invalid 构造校验失败结果
func Invalid[T any](candidate *T, errs []validator.FieldError) *FormResult[T] {
	return &FormResult[T]{Candidate: candidate, Errors: errs}
}

// Redirect 构造保存成功结果
func Redirect[T any](candidate *T, url, notice string) *FormResult[T] {
	return &FormResult[T]{Candidate: candidate, RedirectURL: url, Notice: notice}
}

// DeleteResult 删除确认/提交结果
// 设计说明：
// 1. Blocked=true时Dependents非空，调用方重新渲染确认页展示依赖记录
// 2. RedirectURL非空表示已删除(或实体本来就不存在)，调用方重定向到列表页
type DeleteResult[T any, D any] struct {
	Entity      *T
	Dependents  []D
	Blocked     bool
	Reason      error // 被拦截的原因，如author.ErrAuthorHasBooks
	RedirectURL string
	Notice      string
}

// Done 是否已结束(需要重定向)
func (r *DeleteResult[T, D]) Done() bool {
	return r.RedirectURL != ""
}
