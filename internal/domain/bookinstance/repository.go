package bookinstance

import (
	"context"
)

// Repository 副本仓储接口
type Repository interface {
	Create(ctx context.Context, instance *BookInstance) error
	FindByID(ctx context.Context, id string) (*BookInstance, error)

	// List 全部副本(插入顺序)
	List(ctx context.Context) ([]*BookInstance, error)

	// FindByBook 某本书的全部副本
	FindByBook(ctx context.Context, bookID string) ([]*BookInstance, error)

	Update(ctx context.Context, instance *BookInstance) error
	Delete(ctx context.Context, id string) error

	// Count 副本数量,status为空时统计全部
	Count(ctx context.Context, status Status) (int64, error)
}
