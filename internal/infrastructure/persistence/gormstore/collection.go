// Package gormstore 基于GORM的文档集合（mysql/postgres/sqlite）
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/docstore"
)

// Collection 一张表即一个集合，T是带gorm tag的文档模型
type Collection[T any] struct {
	db *gorm.DB
}

// NewCollection 创建集合
func NewCollection[T any](db *gorm.DB) *Collection[T] {
	return &Collection[T]{db: db}
}

var _ docstore.Collection[struct{}] = (*Collection[struct{}])(nil)

func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var doc T
	err := c.db.WithContext(ctx).Where("id = ?", id).Take(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, docstore.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c *Collection[T]) Find(ctx context.Context, opts ...docstore.Option) ([]T, error) {
	q := docstore.Build(opts...)
	docs := []T{}
	if q.Empty {
		return docs, nil
	}

	tx := applyConditions(c.db.WithContext(ctx).Model(new(T)), q.Conditions)
	if len(q.Fields) > 0 {
		tx = tx.Select(q.Fields)
	}
	if q.Sort != nil {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: q.Sort.Field},
			Desc:   q.Sort.Direction == docstore.Desc,
		})
	}

	if err := tx.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *Collection[T]) Count(ctx context.Context, opts ...docstore.Option) (int64, error) {
	q := docstore.Build(opts...)
	if q.Empty {
		return 0, nil
	}

	var n int64
	err := applyConditions(c.db.WithContext(ctx).Model(new(T)), q.Conditions).Count(&n).Error
	return n, err
}

func (c *Collection[T]) Create(ctx context.Context, doc *T) error {
	return c.db.WithContext(ctx).Create(doc).Error
}

// UpdateByID 整条替换
// Select("*")让零值字段(如清空的日期)也写入；先确认记录存在，
// 因为MySQL在值未变化时RowsAffected为0，不能用它判断不存在
func (c *Collection[T]) UpdateByID(ctx context.Context, id string, doc *T) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return docstore.ErrNotFound
		}
		return tx.Model(new(T)).Where("id = ?", id).Select("*").Omit("id").Updates(doc).Error
	})
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	result := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

// applyConditions docstore条件 → SQL条件
// genre_ids以JSON数组存储，Contains用带引号的LIKE匹配单个元素
func applyConditions(tx *gorm.DB, conds []docstore.Condition) *gorm.DB {
	for _, cond := range conds {
		col := clause.Column{Name: cond.Field}
		switch cond.Op {
		case docstore.OpEq:
			tx = tx.Where(clause.Eq{Column: col, Value: cond.Values[0]})
		case docstore.OpIn:
			tx = tx.Where(clause.IN{Column: col, Values: lo.ToAnySlice(cond.Values)})
		case docstore.OpContains:
			tx = tx.Where(clause.Like{Column: col, Value: fmt.Sprintf(`%%"%s"%%`, cond.Values[0])})
		}
	}
	return tx
}
