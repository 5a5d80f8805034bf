package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/docstore"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/document"
)

func TestCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	c := New[document.BookInstance]()

	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.Create(ctx, &document.BookInstance{ID: "i1", BookID: "b1", Imprint: "Penguin", Status: "Loaned", DueBack: &due}))
	require.NoError(t, c.Create(ctx, &document.BookInstance{ID: "i2", BookID: "b2", Imprint: "Vintage", Status: "Available"}))
	assert.Error(t, c.Create(ctx, &document.BookInstance{ID: "i1"}), "重复ID")

	t.Run("按ID查询返回副本", func(t *testing.T) {
		got, err := c.FindByID(ctx, "i1")
		require.NoError(t, err)
		require.NotNil(t, got.DueBack)
		assert.True(t, due.Equal(*got.DueBack))

		got.Imprint = "changed"
		again, _ := c.FindByID(ctx, "i1")
		assert.Equal(t, "Penguin", again.Imprint)
	})

	t.Run("整条替换保留ID", func(t *testing.T) {
		require.NoError(t, c.UpdateByID(ctx, "i1", &document.BookInstance{BookID: "b1", Imprint: "Penguin", Status: "Available"}))
		got, err := c.FindByID(ctx, "i1")
		require.NoError(t, err)
		assert.Equal(t, "i1", got.ID)
		assert.Nil(t, got.DueBack)

		assert.ErrorIs(t, c.UpdateByID(ctx, "nope", &document.BookInstance{}), docstore.ErrNotFound)
	})

	t.Run("计数和删除", func(t *testing.T) {
		n, err := c.Count(ctx, docstore.Where(document.FieldStatus, "Available"))
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		require.NoError(t, c.DeleteByID(ctx, "i2"))
		assert.ErrorIs(t, c.DeleteByID(ctx, "i2"), docstore.ErrNotFound)
		_, err = c.FindByID(ctx, "i2")
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})
}

func TestCollection_Find(t *testing.T) {
	ctx := context.Background()
	c := New[document.Book]()
	for _, b := range []document.Book{
		{ID: "b1", Title: "Persuasion", AuthorID: "a1", GenreIDs: []string{"g1"}},
		{ID: "b2", Title: "Emma", AuthorID: "a1", GenreIDs: []string{"g1", "g2"}},
		{ID: "b3", Title: "Jane Eyre", AuthorID: "a2"},
	} {
		b := b
		require.NoError(t, c.Create(ctx, &b))
	}

	t.Run("保持插入顺序", func(t *testing.T) {
		list, err := c.Find(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b1", "b2", "b3"}, ids(list))
	})

	t.Run("条件组合与排序", func(t *testing.T) {
		list, err := c.Find(ctx,
			docstore.Where(document.FieldAuthorID, "a1"),
			docstore.Contains(document.FieldGenreIDs, "g1"),
			docstore.SortBy(document.FieldTitle, docstore.Asc))
		require.NoError(t, err)
		assert.Equal(t, []string{"b2", "b1"}, ids(list))
	})

	t.Run("投影只返回选择的字段", func(t *testing.T) {
		list, err := c.Find(ctx, docstore.In(document.FieldID, []string{"b3"}), docstore.Select(document.FieldTitle))
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Jane Eyre", list[0].Title)
		assert.Empty(t, list[0].AuthorID)
	})
}

func ids(books []document.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}
