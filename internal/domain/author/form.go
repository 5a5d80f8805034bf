package author

import (
	"github.com/xiebiao/locallibrary/pkg/validator"
)

// FormSchema 作者表单校验规则(顺序即错误展示顺序)
var FormSchema = validator.NewSchema(
	validator.Field("first_name").Trim().Required("First name must be specified").Escape(),
	validator.Field("family_name").Trim().Required("Family name must be specified").Escape(),
	validator.Field("date_of_birth").Optional().ISO8601("Invalid date of birth"),
	validator.Field("date_of_death").Optional().ISO8601("Invalid date of death"),
)

// FromForm 用清洗后的表单值构造候选作者(无论校验是否通过)
// id为空表示新建,非空表示更新
func FromForm(id string, r *validator.Result) *Author {
	return &Author{
		ID:          id,
		FirstName:   r.Value("first_name"),
		FamilyName:  r.Value("family_name"),
		DateOfBirth: r.Date("date_of_birth"),
		DateOfDeath: r.Date("date_of_death"),
	}
}
