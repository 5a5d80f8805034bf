// Package catalogtest 用例测试的公共夹具：内存存储的仓储、记录事件的发布者
package catalogtest

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/xiebiao/locallibrary/internal/domain/author"
	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/internal/domain/bookinstance"
	"github.com/xiebiao/locallibrary/internal/domain/genre"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/docstore"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/document"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/store"
)

// Repos 全部仓储
type Repos struct {
	Authors   author.Repository
	Books     book.Repository
	Instances bookinstance.Repository
	Genres    genre.Repository
}

// NewRepos 基于内存存储的仓储
func NewRepos() *Repos {
	return reposFor(store.NewMemory())
}

// ErrUnavailable Broken仓储返回的底层错误
var ErrUnavailable = errors.New("connection refused")

// NewBrokenRepos 所有操作都失败的仓储，模拟存储不可用
func NewBrokenRepos() *Repos {
	return reposFor(&store.Collections{
		Authors:       broken[document.Author]{},
		Books:         broken[document.Book]{},
		Genres:        broken[document.Genre]{},
		BookInstances: broken[document.BookInstance]{},
	})
}

func reposFor(c *store.Collections) *Repos {
	return &Repos{
		Authors:   document.NewAuthorRepository(c.Authors),
		Books:     document.NewBookRepository(c.Books),
		Instances: document.NewBookInstanceRepository(c.BookInstances),
		Genres:    document.NewGenreRepository(c.Genres),
	}
}

type broken[T any] struct{}

func (broken[T]) FindByID(context.Context, string) (*T, error) { return nil, ErrUnavailable }
func (broken[T]) Find(context.Context, ...docstore.Option) ([]T, error) {
	return nil, ErrUnavailable
}
func (broken[T]) Count(context.Context, ...docstore.Option) (int64, error) {
	return 0, ErrUnavailable
}
func (broken[T]) Create(context.Context, *T) error             { return ErrUnavailable }
func (broken[T]) UpdateByID(context.Context, string, *T) error { return ErrUnavailable }
func (broken[T]) DeleteByID(context.Context, string) error     { return ErrUnavailable }

// Events 记录发布的事件，格式 "catalog.<entity>.<action>:<id>"
type Events struct {
	mu        sync.Mutex
	published []string
}

func (e *Events) Publish(_ context.Context, entity, action, entityID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.published = append(e.published, "catalog."+entity+"."+action+":"+entityID)
}

// Published 已发布事件的快照
func (e *Events) Published() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.published...)
}

// Form 按 key, value, key, value... 构造表单
func Form(kv ...string) url.Values {
	form := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		form.Add(kv[i], kv[i+1])
	}
	return form
}
