package bookinstance

import (
	"github.com/xiebiao/locallibrary/pkg/validator"
)

// FormSchema 副本表单校验规则
var FormSchema = validator.NewSchema(
	validator.Field("book").Trim().Required("Book must be specified").Escape(),
	validator.Field("imprint").Trim().Required("Imprint must be specified").Escape(),
	validator.Field("status").Escape().OneOf("Invalid status",
		string(StatusAvailable), string(StatusMaintenance), string(StatusLoaned), string(StatusReserved)),
	validator.Field("due_back").Optional().ISO8601("Invalid date"),
)

// FromForm 用清洗后的表单值构造候选副本
func FromForm(id string, r *validator.Result) *BookInstance {
	status := Status(r.Value("status"))
	if status == "" {
		status = StatusMaintenance
	}
	return &BookInstance{
		ID:      id,
		BookID:  r.Value("book"),
		Imprint: r.Value("imprint"),
		Status:  status,
		DueBack: r.Date("due_back"),
	}
}
