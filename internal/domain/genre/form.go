package genre

import (
	"github.com/xiebiao/locallibrary/pkg/validator"
)

// FormSchema 分类表单校验规则
var FormSchema = validator.NewSchema(
	validator.Field("name").Trim().MinLength(3, "Genre name must contain at least 3 characters").Escape(),
)

// FromForm 用清洗后的表单值构造候选分类
func FromForm(id string, r *validator.Result) *Genre {
	return &Genre{ID: id, Name: r.Value("name")}
}
