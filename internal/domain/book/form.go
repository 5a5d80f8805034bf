package book

import (
	"github.com/xiebiao/locallibrary/pkg/validator"
)

// FormSchema 图书表单校验规则
// genre是复选框,可能有多个值,逐个转义
var FormSchema = validator.NewSchema(
	validator.Field("title").Trim().Required("Title must not be empty.").Escape(),
	validator.Field("author").Trim().Required("Author must not be empty.").Escape(),
	validator.Field("summary").Trim().Required("Summary must not be empty.").Escape(),
	validator.Field("isbn").Trim().Required("ISBN must not be empty").Escape(),
	validator.Field("genre").Each().Escape(),
)

// FromForm 用清洗后的表单值构造候选图书
func FromForm(id string, r *validator.Result) *Book {
	return &Book{
		ID:       id,
		Title:    r.Value("title"),
		AuthorID: r.Value("author"),
		Summary:  r.Value("summary"),
		ISBN:     r.Value("isbn"),
		GenreIDs: r.Values("genre"),
	}
}
