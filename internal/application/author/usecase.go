package author

import (
	"context"
	"errors"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/locallibrary/internal/application/catalog"
	"github.com/xiebiao/locallibrary/internal/domain/author"
	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/pkg/metrics"
	"github.com/xiebiao/locallibrary/pkg/tracing"
)

const (
	entity  = "author"
	listURL = "/catalog/authors"
)

// FormResult 作者表单结果
type FormResult = catalog.FormResult[author.Author]

// DeleteResult 作者删除结果，Dependents为该作者的图书
type DeleteResult = catalog.DeleteResult[author.Author, *book.Book]

// Detail 作者详情：作者本人 + 其全部图书
type Detail struct {
	Author *author.Author
	Books  []*book.Book
}

// UseCase 作者用例
// 设计说明:
// 1. 详情页、删除确认页并发读取作者和其图书(fan-out)
// 2. 删除前检查是否仍有图书引用该作者
// 3. 保存成功后发布目录事件、记录指标
type UseCase struct {
	authors author.Repository
	books   book.Repository
	events  catalog.EventPublisher
}

// NewUseCase 创建作者用例
func NewUseCase(authors author.Repository, books book.Repository, events catalog.EventPublisher) *UseCase {
	return &UseCase{authors: authors, books: books, events: events}
}

// List 全部作者,按family_name升序
func (uc *UseCase) List(ctx context.Context) (list []*author.Author, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "author.List")
	defer func() { tracing.End(span, err) }()

	return uc.authors.List(ctx)
}

// Detail 作者详情
// 作者不存在时返回ErrAuthorNotFound(检查作者本身,而不是图书列表)
func (uc *UseCase) Detail(ctx context.Context, id string) (detail *Detail, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "author.Detail")
	defer func() { tracing.End(span, err) }()

	a, books, err := uc.withBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Author: a, Books: books}, nil
}

// CreateForm 空白表单
func (uc *UseCase) CreateForm(ctx context.Context) (*FormResult, error) {
	return &FormResult{Candidate: &author.Author{}}, nil
}

// Create 校验并创建作者
func (uc *UseCase) Create(ctx context.Context, form url.Values) (res *FormResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "author.Create")
	defer func() { tracing.End(span, err) }()

	// 1. 校验(收集全部错误),无论结果如何都构造候选作者
	result := author.FormSchema.Validate(form)
	candidate := author.FromForm("", result)
	if !result.Valid() {
		metrics.RecordValidationFailure(entity)
		return catalog.Invalid(candidate, result.Errors), nil
	}

	// 2. 保存并重定向到详情页
	if err := uc.authors.Create(ctx, candidate); err != nil {
		return nil, err
	}
	uc.saved(ctx, catalog.ActionCreated, candidate.ID)
	return catalog.Redirect(candidate, candidate.URL(), "Author created"), nil
}

// UpdateForm 编辑表单,用已保存的作者预填
func (uc *UseCase) UpdateForm(ctx context.Context, id string) (res *FormResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "author.UpdateForm")
	defer func() { tracing.End(span, err) }()

	a, err := uc.authors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FormResult{Candidate: a}, nil
}

// Update 校验并按ID整条替换
func (uc *UseCase) Update(ctx context.Context, id string, form url.Values) (res *FormResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "author.Update")
	defer func() { tracing.End(span, err) }()

	result := author.FormSchema.Validate(form)
	candidate := author.FromForm(id, result)
	if !result.Valid() {
		metrics.RecordValidationFailure(entity)
		return catalog.Invalid(candidate, result.Errors), nil
	}

	if err := uc.authors.Update(ctx, candidate); err != nil {
		return nil, err
	}
	uc.saved(ctx, catalog.ActionUpdated, candidate.ID)
	return catalog.Redirect(candidate, candidate.URL(), "Author updated"), nil
}

// DeleteForm 删除确认页
// 作者不存在时直接回到列表页(不报错)
func (uc *UseCase) DeleteForm(ctx context.Context, id string) (res *DeleteResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "author.DeleteForm")
	defer func() { tracing.End(span, err) }()

	a, books, err := uc.withBooks(ctx, id)
	if errors.Is(err, author.ErrAuthorNotFound) {
		return &DeleteResult{RedirectURL: listURL}, nil
	}
	if err != nil {
		return nil, err
	}
	return &DeleteResult{Entity: a, Dependents: books}, nil
}

// Delete 删除作者
// 设计说明:
// 1. 重新读取作者和其图书(确认页展示之后可能有新图书)
// 2. 仍有图书时拒绝删除,返回Blocked结果和依赖的图书
// 3. 没有图书时按id删除并回到列表页
func (uc *UseCase) Delete(ctx context.Context, id string) (res *DeleteResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "author.Delete")
	defer func() { tracing.End(span, err) }()

	a, books, err := uc.withBooks(ctx, id)
	if errors.Is(err, author.ErrAuthorNotFound) {
		return &DeleteResult{RedirectURL: listURL}, nil
	}
	if err != nil {
		return nil, err
	}

	if len(books) > 0 {
		metrics.RecordDeleteBlocked(entity)
		return &DeleteResult{Entity: a, Dependents: books, Blocked: true, Reason: author.ErrAuthorHasBooks}, nil
	}

	if err := uc.authors.Delete(ctx, id); err != nil && !errors.Is(err, author.ErrAuthorNotFound) {
		return nil, err
	}
	uc.saved(ctx, catalog.ActionDeleted, id)
	return &DeleteResult{Entity: a, RedirectURL: listURL, Notice: "Author deleted"}, nil
}

// withBooks 并发读取作者和其图书
func (uc *UseCase) withBooks(ctx context.Context, id string) (*author.Author, []*book.Book, error) {
	var (
		a     *author.Author
		books []*book.Book
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a, err = uc.authors.FindByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		books, err = uc.books.FindByAuthor(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return a, books, nil
}

func (uc *UseCase) saved(ctx context.Context, action, id string) {
	metrics.RecordMutation(entity, action)
	uc.events.Publish(ctx, entity, action, id)
}
