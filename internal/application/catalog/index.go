package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/locallibrary/internal/domain/author"
	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/internal/domain/bookinstance"
	"github.com/xiebiao/locallibrary/internal/domain/genre"
	"github.com/xiebiao/locallibrary/pkg/tracing"
)

// Counts 首页统计
type Counts struct {
	Books              int64 `json:"book_count"`
	Instances          int64 `json:"book_instance_count"`
	AvailableInstances int64 `json:"book_instance_available_count"`
	Authors            int64 `json:"author_count"`
	Genres             int64 `json:"genre_count"`
}

// IndexUseCase 首页统计用例
type IndexUseCase struct {
	authors   author.Repository
	books     book.Repository
	instances bookinstance.Repository
	genres    genre.Repository
}

// NewIndexUseCase 创建首页统计用例
func NewIndexUseCase(
	authors author.Repository,
	books book.Repository,
	instances bookinstance.Repository,
	genres genre.Repository,
) *IndexUseCase {
	return &IndexUseCase{authors: authors, books: books, instances: instances, genres: genres}
}

// Execute 并发统计五个数量，任一失败整体失败
func (uc *IndexUseCase) Execute(ctx context.Context) (counts *Counts, err error) {
	ctx, span := tracing.StartSpan(ctx, TracerName, "catalog.Index")
	defer func() { tracing.End(span, err) }()

	var c Counts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.Books, err = uc.books.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Instances, err = uc.instances.Count(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		c.AvailableInstances, err = uc.instances.Count(gctx, bookinstance.StatusAvailable)
		return err
	})
	g.Go(func() (err error) {
		c.Authors, err = uc.authors.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Genres, err = uc.genres.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &c, nil
}
