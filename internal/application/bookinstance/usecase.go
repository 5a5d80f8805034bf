package bookinstance

import (
	"context"
	"errors"
	"net/url"

	"github.com/samber/lo"

	"github.com/xiebiao/locallibrary/internal/application/catalog"
	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/internal/domain/bookinstance"
	"github.com/xiebiao/locallibrary/pkg/metrics"
	"github.com/xiebiao/locallibrary/pkg/tracing"
	"github.com/xiebiao/locallibrary/pkg/validator"
)

const (
	entity  = "bookinstance"
	listURL = "/catalog/bookinstances"
)

// Form 副本表单:候选副本 + 图书下拉框 + 状态选项
type Form struct {
	catalog.FormResult[bookinstance.BookInstance]
	Books    []*book.Book
	Statuses []bookinstance.Status
}

// DeleteResult 副本删除结果(副本是叶子节点,没有依赖)
type DeleteResult = catalog.DeleteResult[bookinstance.BookInstance, struct{}]

// Item 副本 + 解引用后的图书(图书已被删除时为nil)
type Item struct {
	Instance *bookinstance.BookInstance
	Book     *book.Book
}

// UseCase 副本用例
type UseCase struct {
	instances bookinstance.Repository
	books     book.Repository
	events    catalog.EventPublisher
}

// NewUseCase 创建副本用例
func NewUseCase(instances bookinstance.Repository, books book.Repository, events catalog.EventPublisher) *UseCase {
	return &UseCase{instances: instances, books: books, events: events}
}

// List 全部副本,图书批量解引用
func (uc *UseCase) List(ctx context.Context) (items []Item, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "bookinstance.List")
	defer func() { tracing.End(span, err) }()

	instances, err := uc.instances.List(ctx)
	if err != nil {
		return nil, err
	}

	bookIDs := lo.Uniq(lo.Map(instances, func(bi *bookinstance.BookInstance, _ int) string { return bi.BookID }))
	books, err := uc.books.FindByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(books, func(b *book.Book) string { return b.ID })

	items = make([]Item, len(instances))
	for i, bi := range instances {
		items[i] = Item{Instance: bi, Book: byID[bi.BookID]}
	}
	return items, nil
}

// Detail 副本详情,副本不存在时返回ErrBookInstanceNotFound
func (uc *UseCase) Detail(ctx context.Context, id string) (item *Item, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "bookinstance.Detail")
	defer func() { tracing.End(span, err) }()

	return uc.withBook(ctx, id)
}

// CreateForm 空白表单
// bookID非空时预选该图书(从图书详情页"添加副本"进入)
func (uc *UseCase) CreateForm(ctx context.Context, bookID string) (*Form, error) {
	return uc.form(ctx, &bookinstance.BookInstance{BookID: bookID, Status: bookinstance.StatusMaintenance}, nil)
}

// Create 校验并创建副本
func (uc *UseCase) Create(ctx context.Context, form url.Values) (res *Form, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "bookinstance.Create")
	defer func() { tracing.End(span, err) }()

	candidate, result, err := uc.validate(ctx, "", form)
	if err != nil {
		return nil, err
	}
	if !result.Valid() {
		metrics.RecordValidationFailure(entity)
		return uc.form(ctx, candidate, result.Errors)
	}

	if err := uc.instances.Create(ctx, candidate); err != nil {
		return nil, err
	}
	uc.saved(ctx, catalog.ActionCreated, candidate.ID)
	return &Form{FormResult: *catalog.Redirect(candidate, candidate.URL(), "Book copy created")}, nil
}

// UpdateForm 编辑表单
func (uc *UseCase) UpdateForm(ctx context.Context, id string) (res *Form, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "bookinstance.UpdateForm")
	defer func() { tracing.End(span, err) }()

	bi, err := uc.instances.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.form(ctx, bi, nil)
}

// Update 校验并按ID整条替换
// 校验结果在创建和更新两条路径上一样判定,校验失败一律不保存
func (uc *UseCase) Update(ctx context.Context, id string, form url.Values) (res *Form, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "bookinstance.Update")
	defer func() { tracing.End(span, err) }()

	candidate, result, err := uc.validate(ctx, id, form)
	if err != nil {
		return nil, err
	}
	if !result.Valid() {
		metrics.RecordValidationFailure(entity)
		return uc.form(ctx, candidate, result.Errors)
	}

	if err := uc.instances.Update(ctx, candidate); err != nil {
		return nil, err
	}
	uc.saved(ctx, catalog.ActionUpdated, candidate.ID)
	return &Form{FormResult: *catalog.Redirect(candidate, candidate.URL(), "Book copy updated")}, nil
}

// DeleteForm 删除确认页,副本不存在时回到列表页
func (uc *UseCase) DeleteForm(ctx context.Context, id string) (res *DeleteResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "bookinstance.DeleteForm")
	defer func() { tracing.End(span, err) }()

	bi, err := uc.instances.FindByID(ctx, id)
	if errors.Is(err, bookinstance.ErrBookInstanceNotFound) {
		return &DeleteResult{RedirectURL: listURL}, nil
	}
	if err != nil {
		return nil, err
	}
	return &DeleteResult{Entity: bi}, nil
}

// Delete 无条件删除副本
// 副本已经不存在时同样回到列表页
func (uc *UseCase) Delete(ctx context.Context, id string) (res *DeleteResult, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "bookinstance.Delete")
	defer func() { tracing.End(span, err) }()

	err = uc.instances.Delete(ctx, id)
	if errors.Is(err, bookinstance.ErrBookInstanceNotFound) {
		return &DeleteResult{RedirectURL: listURL}, nil
	}
	if err != nil {
		return nil, err
	}
	uc.saved(ctx, catalog.ActionDeleted, id)
	return &DeleteResult{RedirectURL: listURL, Notice: "Book copy deleted"}, nil
}

// validate 执行表单规则,并检查引用的图书是否存在
func (uc *UseCase) validate(ctx context.Context, id string, form url.Values) (*bookinstance.BookInstance, *validator.Result, error) {
	result := bookinstance.FormSchema.Validate(form)
	candidate := bookinstance.FromForm(id, result)

	if candidate.BookID != "" {
		_, err := uc.books.FindByID(ctx, candidate.BookID)
		switch {
		case errors.Is(err, book.ErrBookNotFound):
			result.AddError("book", "Book not found")
		case err != nil:
			return nil, nil, err
		}
	}
	return candidate, result, nil
}

func (uc *UseCase) form(ctx context.Context, candidate *bookinstance.BookInstance, errs []validator.FieldError) (*Form, error) {
	books, err := uc.books.ListTitles(ctx)
	if err != nil {
		return nil, err
	}
	return &Form{
		FormResult: *catalog.Invalid(candidate, errs),
		Books:      books,
		Statuses:   bookinstance.Statuses,
	}, nil
}

func (uc *UseCase) withBook(ctx context.Context, id string) (*Item, error) {
	bi, err := uc.instances.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b, err := uc.books.FindByID(ctx, bi.BookID)
	if err != nil && !errors.Is(err, book.ErrBookNotFound) {
		return nil, err
	}
	return &Item{Instance: bi, Book: b}, nil
}

func (uc *UseCase) saved(ctx context.Context, action, id string) {
	metrics.RecordMutation(entity, action)
	uc.events.Publish(ctx, entity, action, id)
}
