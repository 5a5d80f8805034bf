package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于判断错误类型（页面和JSON接口共用）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不展示给用户
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，领域层的预定义错误可以直接用errors.Is判断
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装存储层错误（数据库、DynamoDB等）
// 用途：隐藏实现细节，统一按StoreFailure处理
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（资源不存在、参数错误、业务规则）
// - 5xxxx: 服务端错误（存储异常）

const (
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 存储错误(StoreFailure)

	ErrCodeNotFound             = 40400 // 资源不存在(通用)
	ErrCodeAuthorNotFound       = 40401
	ErrCodeBookNotFound         = 40402
	ErrCodeBookInstanceNotFound = 40403
	ErrCodeGenreNotFound        = 40404

	ErrCodeDependencyExists = 40010 // 存在依赖记录，禁止删除

	ErrCodeInvalidParams   = 40900 // 参数错误
	ErrCodeTooManyRequests = 42900
)

var (
	ErrInternal        = New(ErrCodeInternal, "Internal server error")
	ErrNotFound        = New(ErrCodeNotFound, "Not found")
	ErrInvalidParams   = New(ErrCodeInvalidParams, "Invalid parameters")
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "Too many requests")
)

// =========================================
// 辅助函数
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Code: ErrCodeInternal, Message: "Internal server error", Err: err}
}

// IsNotFound 判断是否为"资源不存在"类错误(404xx)
func IsNotFound(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code/100 == ErrCodeNotFound/100
}

// HTTPStatus 错误码 → HTTP状态码
func HTTPStatus(err error) int {
	appErr := GetAppError(err)
	switch appErr.Code / 100 {
	case 404:
		return http.StatusNotFound
	case 400:
		return http.StatusConflict
	case 409:
		return http.StatusBadRequest
	case 429:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
