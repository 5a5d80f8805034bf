package genre

import (
	"context"
	"errors"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/locallibrary/internal/application/catalog"
	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/internal/domain/genre"
	"github.com/xiebiao/locallibrary/pkg/metrics"
	"github.com/xiebiao/locallibrary/pkg/tracing"
)

const (
	entity  = "genre"
	listURL = "/catalog/genres"
)

type (
	FormResult   = catalog.FormResult[genre.Genre]
	DeleteResult = catalog.DeleteResult[genre.Genre, *book.Book]
)

// Detail 分类详情:分类 + 属于该分类的图书
type Detail struct {
	Genre *genre.Genre
	Books []*book.Book
}

// UseCase 分类用例
type UseCase struct {
	genres genre.Repository
	books  book.Repository
	events catalog.EventPublisher
}

// NewUseCase 创建分类用例
func NewUseCase(genres genre.Repository, books book.Repository, events catalog.EventPublisher) *UseCase {
	return &UseCase{genres: genres, books: books, events: events}
}

// List 全部分类,按name升序
func (uc *UseCase) List(ctx context.Context) (list []*genre.Genre, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "genre.List")
	defer func() { tracing.End(span, err) }()

	return uc.genres.List(ctx)
}

// Detail 分类详情
func (uc *UseCase) Detail(ctx context.Context, id string) (detail *Detail, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "genre.Detail")
	defer func() { tracing.End(span, err) }()

	g, books, err := uc.withBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Genre: g, Books: books}, nil
}

// CreateForm 空白表单
func (uc *UseCase) CreateForm(ctx context.Context) (*FormResult, error) {
	return &FormResult{Candidate: &genre.Genre{}}, nil
}

// Create 校验并创建分类
// 同名分类(忽略大小写)已存在时不重复创建,直接重定向到已有分类
func (uc *UseCase) Create(ctx context.Context, form url.Values) (res *FormResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "genre.Create")
	defer func() { tracing.End(span, err) }()

	result := genre.FormSchema.Validate(form)
	candidate := genre.FromForm("", result)
	if !result.Valid() {
		metrics.RecordValidationFailure(entity)
		return catalog.Invalid(candidate, result.Errors), nil
	}

	existing, err := uc.genres.FindByName(ctx, candidate.Name)
	switch {
	case err == nil:
		return catalog.Redirect(existing, existing.URL(), ""), nil
	case !errors.Is(err, genre.ErrGenreNotFound):
		return nil, err
	}

	if err := uc.genres.Create(ctx, candidate); err != nil {
		return nil, err
	}
	uc.saved(ctx, catalog.ActionCreated, candidate.ID)
	return catalog.Redirect(candidate, candidate.URL(), "Genre created"), nil
}

// UpdateForm 编辑表单
func (uc *UseCase) UpdateForm(ctx context.Context, id string) (res *FormResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "genre.UpdateForm")
	defer func() { tracing.End(span, err) }()

	g, err := uc.genres.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FormResult{Candidate: g}, nil
}

// Update 校验并按ID整条替换
func (uc *UseCase) Update(ctx context.Context, id string, form url.Values) (res *FormResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "genre.Update")
	defer func() { tracing.End(span, err) }()

	result := genre.FormSchema.Validate(form)
	candidate := genre.FromForm(id, result)
	if !result.Valid() {
		metrics.RecordValidationFailure(entity)
		return catalog.Invalid(candidate, result.Errors), nil
	}

	if err := uc.genres.Update(ctx, candidate); err != nil {
		return nil, err
	}
	uc.saved(ctx, catalog.ActionUpdated, candidate.ID)
	return catalog.Redirect(candidate, candidate.URL(), "Genre updated"), nil
}

// DeleteForm 删除确认页,分类不存在时回到列表页
func (uc *UseCase) DeleteForm(ctx context.Context, id string) (res *DeleteResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "genre.DeleteForm")
	defer func() { tracing.End(span, err) }()

	g, books, err := uc.withBooks(ctx, id)
	if errors.Is(err, genre.ErrGenreNotFound) {
		return &DeleteResult{RedirectURL: listURL}, nil
	}
	if err != nil {
		return nil, err
	}
	return &DeleteResult{Entity: g, Dependents: books}, nil
}

// Delete 删除分类,仍有图书引用时拒绝
func (uc *UseCase) Delete(ctx context.Context, id string) (res *DeleteResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "genre.Delete")
	defer func() { tracing.End(span, err) }()

	g, books, err := uc.withBooks(ctx, id)
	if errors.Is(err, genre.ErrGenreNotFound) {
		return &DeleteResult{RedirectURL: listURL}, nil
	}
	if err != nil {
		return nil, err
	}

	if len(books) > 0 {
		metrics.RecordDeleteBlocked(entity)
		return &DeleteResult{Entity: g, Dependents: books, Blocked: true, Reason: genre.ErrGenreHasBooks}, nil
	}

	if err := uc.genres.Delete(ctx, id); err != nil && !errors.Is(err, genre.ErrGenreNotFound) {
		return nil, err
	}
	uc.saved(ctx, catalog.ActionDeleted, id)
	return &DeleteResult{Entity: g, RedirectURL: listURL, Notice: "Genre deleted"}, nil
}

func (uc *UseCase) withBooks(ctx context.Context, id string) (*genre.Genre, []*book.Book, error) {
	var (
		g     *genre.Genre
		books []*book.Book
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		g, err = uc.genres.FindByID(gctx, id)
		return err
	})
	eg.Go(func() (err error) {
		books, err = uc.books.FindByGenre(gctx, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return g, books, nil
}

func (uc *UseCase) saved(ctx context.Context, action, id string) {
	metrics.RecordMutation(entity, action)
	uc.events.Publish(ctx, entity, action, id)
}
