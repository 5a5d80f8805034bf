package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
)

// Response 统一响应结构（只用于/api/v1只读接口，页面走模板渲染）
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），方便客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListData 列表数据封装（目录数据量小，不分页）
type ListData struct {
	List  interface{} `json:"list"`
	Total int         `json:"total"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithList 列表成功响应
func SuccessWithList(c *gin.Context, list interface{}, total int) {
	Success(c, ListData{List: list, Total: total})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	detail, err := authorUC.Detail(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只进日志，不返回给客户端
	if appErr.Err != nil {
		log.Error().Err(appErr.Err).
			Int("code", appErr.Code).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}

	c.JSON(apperrors.HTTPStatus(appErr), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(apperrors.HTTPStatus(apperrors.New(code, message)), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}
