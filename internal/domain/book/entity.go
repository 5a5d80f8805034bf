package book

import "github.com/samber/lo"

// Book 图书实体
// 设计说明:
// 1. AuthorID引用作者(必填),GenreIDs引用零到多个分类
// 2. ISBN只做非空校验,不做格式和唯一性约束
type Book struct {
	ID       string
	Title    string
	AuthorID string
	Summary  string
	ISBN     string
	GenreIDs []string
}

// URL 详情页地址
func (b *Book) URL() string {
	return "/catalog/book/" + b.ID
}

// HasGenre 是否属于指定分类(表单勾选回显用)
func (b *Book) HasGenre(genreID string) bool {
	return lo.Contains(b.GenreIDs, genreID)
}
