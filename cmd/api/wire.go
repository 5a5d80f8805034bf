//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改本文件后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链：
// *gin.Engine → router.Handlers → handler.* → 用例 → Repository → store.Collections → *config.Config

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appauthor "github.com/xiebiao/locallibrary/internal/application/author"
	appbook "github.com/xiebiao/locallibrary/internal/application/book"
	appbookinstance "github.com/xiebiao/locallibrary/internal/application/bookinstance"
	"github.com/xiebiao/locallibrary/internal/application/catalog"
	appgenre "github.com/xiebiao/locallibrary/internal/application/genre"
	"github.com/xiebiao/locallibrary/internal/infrastructure/config"
	"github.com/xiebiao/locallibrary/internal/infrastructure/events"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/store"
	"github.com/xiebiao/locallibrary/internal/interface/http/handler"
	"github.com/xiebiao/locallibrary/internal/interface/http/router"
)

// infrastructureSet 基础设施：存储、Redis、事件发布
var infrastructureSet = wire.NewSet(
	store.Open,
	redis.NewClient,
	redis.NewFlashStore,
	wire.Bind(new(handler.FlashStore), new(*redis.FlashStore)),
	events.NewPublisher,
	wire.Bind(new(catalog.EventPublisher), new(*events.Publisher)),
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	provideAuthorRepository,
	provideBookRepository,
	provideGenreRepository,
	provideBookInstanceRepository,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	catalog.NewIndexUseCase,
	appauthor.NewUseCase,
	appbook.NewUseCase,
	appgenre.NewUseCase,
	appbookinstance.NewUseCase,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewBase,
	handler.NewIndexHandler,
	handler.NewAuthorHandler,
	handler.NewBookHandler,
	handler.NewGenreHandler,
	handler.NewBookInstanceHandler,
	handler.NewAPIHandler,
	wire.Struct(new(router.Handlers), "*"),
)

// InitializeApp 组装整个应用
// cleanup按创建的逆序关闭存储、Redis和消息连接
func InitializeApp(ctx context.Context, cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil, nil
}
