package bookinstance

import (
	"time"
)

// Status 副本状态
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"
)

// Statuses 全部状态(表单下拉框顺序)
var Statuses = []Status{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

// BookInstance 图书副本(馆藏的一本实体书)
// 设计说明:
// 1. 必须引用一本已存在的Book
// 2. Status为空时按Maintenance处理
// 3. DueBack可选,一般在Loaned/Reserved时填写
type BookInstance struct {
	ID      string
	BookID  string
	Imprint string
	Status  Status
	DueBack *time.Time
}

// URL 详情页地址
func (bi *BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID
}

// IsAvailable 是否可借
func (bi *BookInstance) IsAvailable() bool {
	return bi.Status == StatusAvailable
}

// DueBackFormatted 展示用的归还日期,例如 "Jan 2, 2024"
func (bi *BookInstance) DueBackFormatted() string {
	if bi.DueBack == nil {
		return ""
	}
	return bi.DueBack.Format("Jan 2, 2006")
}

// DueBackISO 表单回显用的 YYYY-MM-DD
func (bi *BookInstance) DueBackISO() string {
	if bi.DueBack == nil {
		return ""
	}
	return bi.DueBack.Format("2006-01-02")
}
