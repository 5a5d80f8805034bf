package document

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/xiebiao/locallibrary/internal/domain/author"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/docstore"
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
)

// authorRepository 作者仓储实现(文档存储)
// 设计说明:
// 1. 实现domain/author/repository.go定义的接口
// 2. 负责domain实体与文档模型之间的转换
// 3. docstore.ErrNotFound → ErrAuthorNotFound,其他错误包装为存储错误
type authorRepository struct {
	authors docstore.Collection[Author]
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(authors docstore.Collection[Author]) author.Repository {
	return &authorRepository{authors: authors}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	// 1. 分配ID
	doc := fromAuthor(a)
	doc.ID = uuid.NewString()

	// 2. 写入
	if err := r.authors.Create(ctx, doc); err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}

	// 3. 回填ID
	a.ID = doc.ID
	return nil
}

// FindByID 根据ID查找作者
func (r *authorRepository) FindByID(ctx context.Context, id string) (*author.Author, error) {
	doc, err := r.authors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthor(doc), nil
}

func (r *authorRepository) FindByIDs(ctx context.Context, ids []string) ([]*author.Author, error) {
	docs, err := r.authors.Find(ctx, docstore.In(FieldID, lo.Uniq(ids)))
	if err != nil {
		return nil, apperrors.Wrap(err, "批量查询作者失败")
	}
	return lo.Map(docs, func(d Author, _ int) *author.Author { return toAuthor(&d) }), nil
}

// List 按family_name升序
func (r *authorRepository) List(ctx context.Context) ([]*author.Author, error) {
	docs, err := r.authors.Find(ctx, docstore.SortBy(FieldFamilyName, docstore.Asc))
	if err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}
	return lo.Map(docs, func(d Author, _ int) *author.Author { return toAuthor(&d) }), nil
}

// Update 整条替换
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	if err := r.authors.UpdateByID(ctx, a.ID, fromAuthor(a)); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return author.ErrAuthorNotFound
		}
		return apperrors.Wrap(err, "更新作者失败")
	}
	return nil
}

func (r *authorRepository) Delete(ctx context.Context, id string) error {
	if err := r.authors.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return author.ErrAuthorNotFound
		}
		return apperrors.Wrap(err, "删除作者失败")
	}
	return nil
}

func (r *authorRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.authors.Count(ctx)
	if err != nil {
		return 0, apperrors.Wrap(err, "统计作者失败")
	}
	return n, nil
}

func fromAuthor(a *author.Author) *Author {
	return &Author{
		ID:          a.ID,
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: a.DateOfBirth,
		DateOfDeath: a.DateOfDeath,
	}
}

func toAuthor(d *Author) *author.Author {
	return &author.Author{
		ID:          d.ID,
		FirstName:   d.FirstName,
		FamilyName:  d.FamilyName,
		DateOfBirth: d.DateOfBirth,
		DateOfDeath: d.DateOfDeath,
	}
}
