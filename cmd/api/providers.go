package main

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/locallibrary/internal/domain/author"
	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/internal/domain/bookinstance"
	"github.com/xiebiao/locallibrary/internal/domain/genre"
	"github.com/xiebiao/locallibrary/internal/infrastructure/config"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/document"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/store"
	"github.com/xiebiao/locallibrary/internal/interface/http/router"
	"github.com/xiebiao/locallibrary/web"
)

// 从store.Collections取出对应集合构造仓储
// 集合是泛型类型，单独写Provider比wire.FieldsOf更直观

func provideAuthorRepository(c *store.Collections) author.Repository {
	return document.NewAuthorRepository(c.Authors)
}

func provideBookRepository(c *store.Collections) book.Repository {
	return document.NewBookRepository(c.Books)
}

func provideGenreRepository(c *store.Collections) genre.Repository {
	return document.NewGenreRepository(c.Genres)
}

func provideBookInstanceRepository(c *store.Collections) bookinstance.Repository {
	return document.NewBookInstanceRepository(c.BookInstances)
}

// provideGinEngine 加载内嵌模板并注册路由
func provideGinEngine(cfg *config.Config, handlers *router.Handlers) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	return router.New(cfg, tmpl, handlers), nil
}
