// Package store 按store.driver组装四个文档集合
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/locallibrary/internal/infrastructure/config"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/docstore"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/document"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/dynamostore"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/gormstore"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/memstore"
)

// Collections 目录的全部集合
type Collections struct {
	Authors       docstore.Collection[document.Author]
	Books         docstore.Collection[document.Book]
	Genres        docstore.Collection[document.Genre]
	BookInstances docstore.Collection[document.BookInstance]
}

// Open 根据配置打开存储，返回的cleanup用于关闭连接
func Open(ctx context.Context, cfg *config.Config) (*Collections, func(), error) {
	switch cfg.Store.Driver {
	case "memory":
		log.Warn().Msg("使用内存存储，重启后数据丢失")
		return NewMemory(), func() {}, nil

	case "mysql", "postgres", "sqlite":
		db, err := gormstore.NewDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return &Collections{
			Authors:       gormstore.NewCollection[document.Author](db),
			Books:         gormstore.NewCollection[document.Book](db),
			Genres:        gormstore.NewCollection[document.Genre](db),
			BookInstances: gormstore.NewCollection[document.BookInstance](db),
		}, cleanup, nil

	case "dynamodb":
		client, err := dynamostore.NewClient(ctx, cfg.Store.DynamoDB)
		if err != nil {
			return nil, nil, err
		}
		prefix := cfg.Store.DynamoDB.TablePrefix
		tables := []string{
			prefix + document.Author{}.TableName(),
			prefix + document.Book{}.TableName(),
			prefix + document.Genre{}.TableName(),
			prefix + document.BookInstance{}.TableName(),
		}
		if cfg.Store.DynamoDB.CreateTables {
			if err := dynamostore.EnsureTables(ctx, client, tables...); err != nil {
				return nil, nil, err
			}
		}
		return &Collections{
			Authors:       dynamostore.NewCollection[document.Author](client, tables[0]),
			Books:         dynamostore.NewCollection[document.Book](client, tables[1]),
			Genres:        dynamostore.NewCollection[document.Genre](client, tables[2]),
			BookInstances: dynamostore.NewCollection[document.BookInstance](client, tables[3]),
		}, func() {}, nil
	}

	return nil, nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Store.Driver)
}

// NewMemory 内存集合（测试和演示用）
func NewMemory() *Collections {
	return &Collections{
		Authors:       memstore.New[document.Author](),
		Books:         memstore.New[document.Book](),
		Genres:        memstore.New[document.Genre](),
		BookInstances: memstore.New[document.BookInstance](),
	}
}
