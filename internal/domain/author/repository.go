package author

import (
	"context"
)

// Repository 作者仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层基于文档存储实现
// 2. 记录不存在时返回ErrAuthorNotFound,其他错误按存储故障处理
type Repository interface {
	// Create 创建作者(分配ID后回写到author.ID)
	Create(ctx context.Context, author *Author) error

	// FindByID 根据ID查找作者
	FindByID(ctx context.Context, id string) (*Author, error)

	// FindByIDs 批量查找(用于列表页解引用),不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []string) ([]*Author, error)

	// List 全部作者,按family_name升序
	List(ctx context.Context) ([]*Author, error)

	// Update 按ID整条替换
	Update(ctx context.Context, author *Author) error

	// Delete 按ID删除
	Delete(ctx context.Context, id string) error

	// Count 作者总数
	Count(ctx context.Context) (int64, error)
}
