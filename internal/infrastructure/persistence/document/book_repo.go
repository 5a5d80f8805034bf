package document

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/docstore"
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
)

// bookRepository 图书仓储实现(文档存储)
type bookRepository struct {
	books docstore.Collection[Book]
}

// NewBookRepository 创建图书仓储
func NewBookRepository(books docstore.Collection[Book]) book.Repository {
	return &bookRepository{books: books}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	doc := fromBook(b)
	doc.ID = uuid.NewString()
	if err := r.books.Create(ctx, doc); err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}
	b.ID = doc.ID
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	doc, err := r.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBook(doc), nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []string) ([]*book.Book, error) {
	return r.find(ctx, "批量查询图书失败", docstore.In(FieldID, lo.Uniq(ids)))
}

// List 全部图书,按title升序
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	return r.find(ctx, "查询图书列表失败", docstore.SortBy(FieldTitle, docstore.Asc))
}

// ListTitles 下拉框只需要id和title
func (r *bookRepository) ListTitles(ctx context.Context) ([]*book.Book, error) {
	return r.find(ctx, "查询图书列表失败",
		docstore.Select(FieldTitle),
		docstore.SortBy(FieldTitle, docstore.Asc))
}

func (r *bookRepository) FindByAuthor(ctx context.Context, authorID string) ([]*book.Book, error) {
	return r.find(ctx, "查询作者图书失败",
		docstore.Where(FieldAuthorID, authorID),
		docstore.Select(FieldTitle, FieldSummary),
		docstore.SortBy(FieldTitle, docstore.Asc))
}

func (r *bookRepository) FindByGenre(ctx context.Context, genreID string) ([]*book.Book, error) {
	return r.find(ctx, "查询分类图书失败",
		docstore.Contains(FieldGenreIDs, genreID),
		docstore.Select(FieldTitle, FieldSummary),
		docstore.SortBy(FieldTitle, docstore.Asc))
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	if err := r.books.UpdateByID(ctx, b.ID, fromBook(b)); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return book.ErrBookNotFound
		}
		return apperrors.Wrap(err, "更新图书失败")
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	if err := r.books.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return book.ErrBookNotFound
		}
		return apperrors.Wrap(err, "删除图书失败")
	}
	return nil
}

func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.books.Count(ctx)
	if err != nil {
		return 0, apperrors.Wrap(err, "统计图书失败")
	}
	return n, nil
}

func (r *bookRepository) find(ctx context.Context, msg string, opts ...docstore.Option) ([]*book.Book, error) {
	docs, err := r.books.Find(ctx, opts...)
	if err != nil {
		return nil, apperrors.Wrap(err, msg)
	}
	return lo.Map(docs, func(d Book, _ int) *book.Book { return toBook(&d) }), nil
}

func fromBook(b *book.Book) *Book {
	genreIDs := b.GenreIDs
	if genreIDs == nil {
		genreIDs = []string{}
	}
	return &Book{
		ID:       b.ID,
		Title:    b.Title,
		AuthorID: b.AuthorID,
		Summary:  b.Summary,
		ISBN:     b.ISBN,
		GenreIDs: genreIDs,
	}
}

func toBook(d *Book) *book.Book {
	return &book.Book{
		ID:       d.ID,
		Title:    d.Title,
		AuthorID: d.AuthorID,
		Summary:  d.Summary,
		ISBN:     d.ISBN,
		GenreIDs: d.GenreIDs,
	}
}
