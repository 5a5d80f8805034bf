package book

import (
	"context"
	"errors"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/locallibrary/internal/application/catalog"
	"github.com/xiebiao/locallibrary/internal/domain/author"
	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/internal/domain/bookinstance"
	"github.com/xiebiao/locallibrary/internal/domain/genre"
	"github.com/xiebiao/locallibrary/pkg/metrics"
	"github.com/xiebiao/locallibrary/pkg/tracing"
	"github.com/xiebiao/locallibrary/pkg/validator"
)

const (
	entity  = "book"
	listURL = "/catalog/books"
)

// Form 图书表单:候选图书 + 下拉框需要的作者和分类
type Form struct {
	catalog.FormResult[book.Book]
	Authors []*author.Author
	Genres  []*genre.Genre
}

// DeleteResult 图书删除结果,Dependents为该书的副本
type DeleteResult = catalog.DeleteResult[book.Book, *bookinstance.BookInstance]

// Detail 图书详情
type Detail struct {
	Book      *book.Book
	Author    *author.Author // 作者已被删除时为nil
	Genres    []*genre.Genre
	Instances []*bookinstance.BookInstance
}

// UseCase 图书用例
type UseCase struct {
	books     book.Repository
	authors   author.Repository
	genres    genre.Repository
	instances bookinstance.Repository
	events    catalog.EventPublisher
}

// NewUseCase 创建图书用例
func NewUseCase(
	books book.Repository,
	authors author.Repository,
	genres genre.Repository,
	instances bookinstance.Repository,
	events catalog.EventPublisher,
) *UseCase {
	return &UseCase{books: books, authors: authors, genres: genres, instances: instances, events: events}
}

// Detail 图书详情
// 两轮并发:第一轮图书和副本,第二轮按图书上的引用查作者和分类
func (uc *UseCase) Detail(ctx context.Context, id string) (detail *Detail, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "book.Detail")
	defer func() { tracing.End(span, err) }()

	var d Detail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Book, err = uc.books.FindByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Instances, err = uc.instances.FindByBook(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := uc.authors.FindByID(gctx, d.Book.AuthorID)
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil
		}
		d.Author = a
		return err
	})
	g.Go(func() (err error) {
		d.Genres, err = uc.genres.FindByIDs(gctx, d.Book.GenreIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateForm 空白表单
func (uc *UseCase) CreateForm(ctx context.Context) (*Form, error) {
	return uc.form(ctx, &book.Book{}, nil)
}

// Create 校验并创建图书
func (uc *UseCase) Create(ctx context.Context, form url.Values) (res *Form, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "book.Create")
	defer func() { tracing.End(span, err) }()

	candidate, result, err := uc.validate(ctx, "", form)
	if err != nil {
		return nil, err
	}
	if !result.Valid() {
		metrics.RecordValidationFailure(entity)
		return uc.form(ctx, candidate, result.Errors)
	}

	if err := uc.books.Create(ctx, candidate); err != nil {
		return nil, err
	}
	uc.saved(ctx, catalog.ActionCreated, candidate.ID)
	return &Form{FormResult: *catalog.Redirect(candidate, candidate.URL(), "Book created")}, nil
}

// UpdateForm 编辑表单
func (uc *UseCase) UpdateForm(ctx context.Context, id string) (res *Form, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "book.UpdateForm")
	defer func() { tracing.End(span, err) }()

	b, err := uc.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.form(ctx, b, nil)
}

// Update 校验并按ID整条替换
func (uc *UseCase) Update(ctx context.Context, id string, form url.Values) (res *Form, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "book.Update")
	defer func() { tracing.End(span, err) }()

	candidate, result, err := uc.validate(ctx, id, form)
	if err != nil {
		return nil, err
	}
	if !result.Valid() {
		metrics.RecordValidationFailure(entity)
		return uc.form(ctx, candidate, result.Errors)
	}

	if err := uc.books.Update(ctx, candidate); err != nil {
		return nil, err
	}
	uc.saved(ctx, catalog.ActionUpdated, candidate.ID)
	return &Form{FormResult: *catalog.Redirect(candidate, candidate.URL(), "Book updated")}, nil
}

// DeleteForm 删除确认页,图书不存在时回到列表页
func (uc *UseCase) DeleteForm(ctx context.Context, id string) (res *DeleteResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "book.DeleteForm")
	defer func() { tracing.End(span, err) }()

	b, instances, err := uc.withInstances(ctx, id)
	if errors.Is(err, book.ErrBookNotFound) {
		return &DeleteResult{RedirectURL: listURL}, nil
	}
	if err != nil {
		return nil, err
	}
	return &DeleteResult{Entity: b, Dependents: instances}, nil
}

// Delete 删除图书,仍有副本时拒绝
func (uc *UseCase) Delete(ctx context.Context, id string) (res *DeleteResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "book.Delete")
	defer func() { tracing.End(span, err) }()

	b, instances, err := uc.withInstances(ctx, id)
	if errors.Is(err, book.ErrBookNotFound) {
		return &DeleteResult{RedirectURL: listURL}, nil
	}
	if err != nil {
		return nil, err
	}

	if len(instances) > 0 {
		metrics.RecordDeleteBlocked(entity)
		return &DeleteResult{Entity: b, Dependents: instances, Blocked: true, Reason: book.ErrBookHasInstances}, nil
	}

	if err := uc.books.Delete(ctx, id); err != nil && !errors.Is(err, book.ErrBookNotFound) {
		return nil, err
	}
	uc.saved(ctx, catalog.ActionDeleted, id)
	return &DeleteResult{Entity: b, RedirectURL: listURL, Notice: "Book deleted"}, nil
}

// validate 执行表单规则,并检查引用的作者是否存在
func (uc *UseCase) validate(ctx context.Context, id string, form url.Values) (*book.Book, *validator.Result, error) {
	result := book.FormSchema.Validate(form)
	candidate := book.FromForm(id, result)

	if candidate.AuthorID != "" {
		_, err := uc.authors.FindByID(ctx, candidate.AuthorID)
		switch {
		case errors.Is(err, author.ErrAuthorNotFound):
			result.AddError("author", "Author not found")
		case err != nil:
			return nil, nil, err
		}
	}
	return candidate, result, nil
}

// form 并发读取下拉框选项,组装表单结果
func (uc *UseCase) form(ctx context.Context, candidate *book.Book, errs []validator.FieldError) (*Form, error) {
	f := &Form{FormResult: *catalog.Invalid(candidate, errs)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		f.Authors, err = uc.authors.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		f.Genres, err = uc.genres.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return f, nil
}

func (uc *UseCase) withInstances(ctx context.Context, id string) (*book.Book, []*bookinstance.BookInstance, error) {
	var (
		b         *book.Book
		instances []*bookinstance.BookInstance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		b, err = uc.books.FindByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		instances, err = uc.instances.FindByBook(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return b, instances, nil
}

func (uc *UseCase) saved(ctx context.Context, action, id string) {
	metrics.RecordMutation(entity, action)
	uc.events.Publish(ctx, entity, action, id)
}
