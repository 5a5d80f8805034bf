package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 说明:列表类查询只需要展示字段时返回投影后的Book(未选字段为零值)
type Repository interface {
	// Create 创建图书(分配ID后回写到book.ID)
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id string) (*Book, error)

	// FindByIDs 批量查找,不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []string) ([]*Book, error)

	// List 全部图书,按title升序
	List(ctx context.Context) ([]*Book, error)

	// ListTitles 只含id和title的图书列表(用于表单下拉框),按title升序
	ListTitles(ctx context.Context) ([]*Book, error)

	// FindByAuthor 某作者的全部图书(只含id、title、summary)
	FindByAuthor(ctx context.Context, authorID string) ([]*Book, error)

	// FindByGenre 属于某分类的全部图书(只含id、title、summary)
	FindByGenre(ctx context.Context, genreID string) ([]*Book, error)

	// Update 按ID整条替换
	Update(ctx context.Context, book *Book) error

	// Delete 按ID删除
	Delete(ctx context.Context, id string) error

	// Count 图书总数
	Count(ctx context.Context) (int64, error)
}
