// Package docstore 定义目录数据的文档存储抽象
//
// 领域仓储只依赖Collection[T]，具体后端（GORM关系库、DynamoDB、内存）在启动时按配置选择。
// 字段名一律使用存储层的snake_case名字（与json/gorm/dynamodbav tag一致）。
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound 按ID查找/更新/删除时记录不存在
var ErrNotFound = errors.New("docstore: document not found")

// Collection 一类文档的集合
// 约定：
// 1. FindByID/UpdateByID/DeleteByID 在记录不存在时返回ErrNotFound
// 2. Create 由调用方分配ID
// 3. UpdateByID 是整条记录替换（ID不变）
// 4. 其他错误都视为存储故障，由仓储层包装
type Collection[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
	Find(ctx context.Context, opts ...Option) ([]T, error)
	Count(ctx context.Context, opts ...Option) (int64, error)
	Create(ctx context.Context, doc *T) error
	UpdateByID(ctx context.Context, id string, doc *T) error
	DeleteByID(ctx context.Context, id string) error
}
