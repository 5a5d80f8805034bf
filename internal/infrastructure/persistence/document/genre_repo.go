package document

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/xiebiao/locallibrary/internal/domain/genre"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/docstore"
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
)

// genreRepository 分类仓储实现(文档存储)
type genreRepository struct {
	genres docstore.Collection[Genre]
}

// NewGenreRepository 创建分类仓储
func NewGenreRepository(genres docstore.Collection[Genre]) genre.Repository {
	return &genreRepository{genres: genres}
}

func (r *genreRepository) Create(ctx context.Context, g *genre.Genre) error {
	doc := &Genre{ID: uuid.NewString(), Name: g.Name}
	if err := r.genres.Create(ctx, doc); err != nil {
		return apperrors.Wrap(err, "创建分类失败")
	}
	g.ID = doc.ID
	return nil
}

func (r *genreRepository) FindByID(ctx context.Context, id string) (*genre.Genre, error) {
	doc, err := r.genres.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toGenre(doc), nil
}

// FindByName 忽略大小写匹配
// 各后端对大小写的比较规则不一致(MySQL默认不区分,sqlite/DynamoDB区分),统一在内存里比较
func (r *genreRepository) FindByName(ctx context.Context, name string) (*genre.Genre, error) {
	docs, err := r.genres.Find(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	doc, ok := lo.Find(docs, func(d Genre) bool { return strings.EqualFold(d.Name, name) })
	if !ok {
		return nil, genre.ErrGenreNotFound
	}
	return toGenre(&doc), nil
}

func (r *genreRepository) FindByIDs(ctx context.Context, ids []string) ([]*genre.Genre, error) {
	docs, err := r.genres.Find(ctx, docstore.In(FieldID, lo.Uniq(ids)), docstore.SortBy(FieldName, docstore.Asc))
	if err != nil {
		return nil, apperrors.Wrap(err, "批量查询分类失败")
	}
	return lo.Map(docs, func(d Genre, _ int) *genre.Genre { return toGenre(&d) }), nil
}

func (r *genreRepository) List(ctx context.Context) ([]*genre.Genre, error) {
	docs, err := r.genres.Find(ctx, docstore.SortBy(FieldName, docstore.Asc))
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}
	return lo.Map(docs, func(d Genre, _ int) *genre.Genre { return toGenre(&d) }), nil
}

func (r *genreRepository) Update(ctx context.Context, g *genre.Genre) error {
	if err := r.genres.UpdateByID(ctx, g.ID, &Genre{ID: g.ID, Name: g.Name}); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return genre.ErrGenreNotFound
		}
		return apperrors.Wrap(err, "更新分类失败")
	}
	return nil
}

func (r *genreRepository) Delete(ctx context.Context, id string) error {
	if err := r.genres.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return genre.ErrGenreNotFound
		}
		return apperrors.Wrap(err, "删除分类失败")
	}
	return nil
}

func (r *genreRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.genres.Count(ctx)
	if err != nil {
		return 0, apperrors.Wrap(err, "统计分类失败")
	}
	return n, nil
}

func toGenre(d *Genre) *genre.Genre {
	return &genre.Genre{ID: d.ID, Name: d.Name}
}
