package book

import (
	"context"

	"github.com/samber/lo"

	"github.com/xiebiao/locallibrary/internal/application/catalog"
	"github.com/xiebiao/locallibrary/internal/domain/author"
	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/pkg/tracing"
)

// ListItem 列表项:图书 + 解引用后的作者(作者已被删除时为nil)
type ListItem struct {
	Book   *book.Book
	Author *author.Author
}

// List 图书列表,按title升序
// 设计说明:
// 1. 只有两次查询:先查全部图书,再按收集到的author_id批量查作者
// 2. 不分页(目录规模很小)
func (uc *UseCase) List(ctx context.Context) (items []ListItem, err error) {
	ctx, span := tracing.StartSpan(ctx, catalog.TracerName, "book.List")
	defer func() { tracing.End(span, err) }()

	// 1. 全部图书
	books, err := uc.books.List(ctx)
	if err != nil {
		return nil, err
	}

	// 2. 批量解引用作者
	authorIDs := lo.Uniq(lo.Map(books, func(b *book.Book, _ int) string { return b.AuthorID }))
	authors, err := uc.authors.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(authors, func(a *author.Author) string { return a.ID })

	items = make([]ListItem, len(books))
	for i, b := range books {
		items[i] = ListItem{Book: b, Author: byID[b.AuthorID]}
	}
	return items, nil
}
