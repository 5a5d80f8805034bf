package author

import (
	"time"
)

// Author 作者实体
// 设计说明:
// 1. ID是UUID字符串,由仓储在创建时分配
// 2. 出生/去世日期可选,nil表示未知
// 3. Name/Lifespan/URL是派生值,不存储
type Author struct {
	ID          string
	FirstName   string
	FamilyName  string
	DateOfBirth *time.Time
	DateOfDeath *time.Time
}

// Name 显示名 "姓, 名",任意一部分为空时返回空串
func (a *Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// URL 详情页地址
func (a *Author) URL() string {
	return "/catalog/author/" + a.ID
}

// Lifespan 生卒年份展示,例如 "Dec 16, 1775 - Jul 18, 1817"
func (a *Author) Lifespan() string {
	birth, death := formatDate(a.DateOfBirth), formatDate(a.DateOfDeath)
	if birth == "" && death == "" {
		return ""
	}
	return birth + " - " + death
}

// DateOfBirthISO 表单回显用的 YYYY-MM-DD
func (a *Author) DateOfBirthISO() string {
	return isoDate(a.DateOfBirth)
}

// DateOfDeathISO 表单回显用的 YYYY-MM-DD
func (a *Author) DateOfDeathISO() string {
	return isoDate(a.DateOfDeath)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
