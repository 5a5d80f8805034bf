package genre

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	Create(ctx context.Context, genre *Genre) error
	FindByID(ctx context.Context, id string) (*Genre, error)

	// FindByName 按名称查找(忽略大小写),不存在返回ErrGenreNotFound
	FindByName(ctx context.Context, name string) (*Genre, error)

	// FindByIDs 批量查找,不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []string) ([]*Genre, error)

	// List 全部分类,按name升序
	List(ctx context.Context) ([]*Genre, error)

	Update(ctx context.Context, genre *Genre) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
