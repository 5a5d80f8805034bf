package document

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/xiebiao/locallibrary/internal/domain/bookinstance"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/docstore"
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
)

// bookInstanceRepository 副本仓储实现(文档存储)
type bookInstanceRepository struct {
	instances docstore.Collection[BookInstance]
}

// NewBookInstanceRepository 创建副本仓储
func NewBookInstanceRepository(instances docstore.Collection[BookInstance]) bookinstance.Repository {
	return &bookInstanceRepository{instances: instances}
}

func (r *bookInstanceRepository) Create(ctx context.Context, bi *bookinstance.BookInstance) error {
	doc := fromBookInstance(bi)
	doc.ID = uuid.NewString()
	if err := r.instances.Create(ctx, doc); err != nil {
		return apperrors.Wrap(err, "创建副本失败")
	}
	bi.ID = doc.ID
	return nil
}

func (r *bookInstanceRepository) FindByID(ctx context.Context, id string) (*bookinstance.BookInstance, error) {
	doc, err := r.instances.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, bookinstance.ErrBookInstanceNotFound
		}
		return nil, apperrors.Wrap(err, "查询副本失败")
	}
	return toBookInstance(doc), nil
}

func (r *bookInstanceRepository) List(ctx context.Context) ([]*bookinstance.BookInstance, error) {
	return r.find(ctx, "查询副本列表失败")
}

func (r *bookInstanceRepository) FindByBook(ctx context.Context, bookID string) ([]*bookinstance.BookInstance, error) {
	return r.find(ctx, "查询图书副本失败", docstore.Where(FieldBookID, bookID))
}

func (r *bookInstanceRepository) Update(ctx context.Context, bi *bookinstance.BookInstance) error {
	if err := r.instances.UpdateByID(ctx, bi.ID, fromBookInstance(bi)); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return bookinstance.ErrBookInstanceNotFound
		}
		return apperrors.Wrap(err, "更新副本失败")
	}
	return nil
}

func (r *bookInstanceRepository) Delete(ctx context.Context, id string) error {
	if err := r.instances.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return bookinstance.ErrBookInstanceNotFound
		}
		return apperrors.Wrap(err, "删除副本失败")
	}
	return nil
}

// Count status为空时统计全部
func (r *bookInstanceRepository) Count(ctx context.Context, status bookinstance.Status) (int64, error) {
	var opts []docstore.Option
	if status != "" {
		opts = append(opts, docstore.Where(FieldStatus, string(status)))
	}
	n, err := r.instances.Count(ctx, opts...)
	if err != nil {
		return 0, apperrors.Wrap(err, "统计副本失败")
	}
	return n, nil
}

func (r *bookInstanceRepository) find(ctx context.Context, msg string, opts ...docstore.Option) ([]*bookinstance.BookInstance, error) {
	docs, err := r.instances.Find(ctx, opts...)
	if err != nil {
		return nil, apperrors.Wrap(err, msg)
	}
	return lo.Map(docs, func(d BookInstance, _ int) *bookinstance.BookInstance { return toBookInstance(&d) }), nil
}

func fromBookInstance(bi *bookinstance.BookInstance) *BookInstance {
	return &BookInstance{
		ID:      bi.ID,
		BookID:  bi.BookID,
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: bi.DueBack,
	}
}

func toBookInstance(d *BookInstance) *bookinstance.BookInstance {
	return &bookinstance.BookInstance{
		ID:      d.ID,
		BookID:  d.BookID,
		Imprint: d.Imprint,
		Status:  bookinstance.Status(d.Status),
		DueBack: d.DueBack,
	}
}
