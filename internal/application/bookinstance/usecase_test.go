package bookinstance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/locallibrary/internal/application/catalog/catalogtest"
	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/internal/domain/bookinstance"
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
	"github.com/xiebiao/locallibrary/pkg/validator"
)

type fixture struct {
	uc     *UseCase
	repos  *catalogtest.Repos
	events *catalogtest.Events
	book   *book.Book
}

func setup(t *testing.T) *fixture {
	t.Helper()
	repos := catalogtest.NewRepos()
	b := &book.Book{Title: "Emma", AuthorID: "a1", Summary: "s", ISBN: "1"}
	require.NoError(t, repos.Books.Create(context.Background(), b))

	ev := &catalogtest.Events{}
	return &fixture{uc: NewUseCase(repos.Instances, repos.Books, ev), repos: repos, events: ev, book: b}
}

func TestUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("合法副本保存并重定向", func(t *testing.T) {
		f := setup(t)
		res, err := f.uc.Create(ctx, catalogtest.Form(
			"book", f.book.ID, "imprint", "Penguin, 2003", "status", "Loaned", "due_back", "2024-06-01"))
		require.NoError(t, err)
		require.True(t, res.Saved())
		assert.Equal(t, "/catalog/bookinstance/"+res.Candidate.ID, res.RedirectURL)

		stored, err := f.repos.Instances.FindByID(ctx, res.Candidate.ID)
		require.NoError(t, err)
		assert.Equal(t, bookinstance.StatusLoaned, stored.Status)
		assert.Equal(t, "2024-06-01", stored.DueBackISO())
	})

	t.Run("必填字段为空白时不保存", func(t *testing.T) {
		f := setup(t)
		res, err := f.uc.Create(ctx, catalogtest.Form("book", "  ", "imprint", " ", "status", "Available"))
		require.NoError(t, err)
		assert.False(t, res.Saved())
		assert.Equal(t, []validator.FieldError{
			{Field: "book", Message: "Book must be specified"},
			{Field: "imprint", Message: "Imprint must be specified"},
		}, res.Errors)
		require.Len(t, res.Books, 1, "重新渲染时带图书下拉框")
		assert.Equal(t, bookinstance.Statuses, res.Statuses)

		count, err := f.repos.Instances.Count(ctx, "")
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("状态和日期", func(t *testing.T) {
		f := setup(t)
		res, err := f.uc.Create(ctx, catalogtest.Form(
			"book", f.book.ID, "imprint", "Penguin", "status", "Lost", "due_back", "next week"))
		require.NoError(t, err)
		assert.Equal(t, []validator.FieldError{
			{Field: "status", Message: "Invalid status"},
			{Field: "due_back", Message: "Invalid date"},
		}, res.Errors)

		res, err = f.uc.Create(ctx, catalogtest.Form(
			"book", f.book.ID, "imprint", "Penguin", "status", "Available", "due_back", ""))
		require.NoError(t, err)
		assert.True(t, res.Saved(), "空的归还日期不报错")
		assert.Nil(t, res.Candidate.DueBack)
	})

	t.Run("引用的图书不存在", func(t *testing.T) {
		f := setup(t)
		res, err := f.uc.Create(ctx, catalogtest.Form("book", "missing", "imprint", "Penguin", "status", "Available"))
		require.NoError(t, err)
		assert.Equal(t, []validator.FieldError{{Field: "book", Message: "Book not found"}}, res.Errors)
	})

	t.Run("预选图书", func(t *testing.T) {
		f := setup(t)
		res, err := f.uc.CreateForm(ctx, f.book.ID)
		require.NoError(t, err)
		assert.Equal(t, f.book.ID, res.Candidate.BookID)
		assert.Equal(t, bookinstance.StatusMaintenance, res.Candidate.Status)
	})
}

func TestUseCase_Update(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	bi := &bookinstance.BookInstance{BookID: f.book.ID, Imprint: "Penguin", Status: bookinstance.StatusLoaned}
	require.NoError(t, f.repos.Instances.Create(ctx, bi))

	t.Run("更新归还日期并保留ID", func(t *testing.T) {
		res, err := f.uc.Update(ctx, bi.ID, catalogtest.Form(
			"book", f.book.ID, "imprint", "Penguin", "status", "Loaned", "due_back", "2024-07-15"))
		require.NoError(t, err)
		require.True(t, res.Saved())
		assert.Equal(t, bi.URL(), res.RedirectURL)

		item, err := f.uc.Detail(ctx, bi.ID)
		require.NoError(t, err)
		assert.Equal(t, bi.ID, item.Instance.ID)
		assert.Equal(t, "2024-07-15", item.Instance.DueBackISO())
		assert.Equal(t, "Emma", item.Book.Title)
		assert.Equal(t, []string{"catalog.bookinstance.updated:" + bi.ID}, f.events.Published())
	})

	t.Run("校验失败不保存", func(t *testing.T) {
		res, err := f.uc.Update(ctx, bi.ID, catalogtest.Form(
			"book", f.book.ID, "imprint", "", "status", "Loaned", "due_back", "2025-01-01"))
		require.NoError(t, err)
		assert.False(t, res.Saved())

		stored, err := f.repos.Instances.FindByID(ctx, bi.ID)
		require.NoError(t, err)
		assert.Equal(t, "2024-07-15", stored.DueBackISO())
	})

	t.Run("编辑表单预填", func(t *testing.T) {
		res, err := f.uc.UpdateForm(ctx, bi.ID)
		require.NoError(t, err)
		assert.Equal(t, "Penguin", res.Candidate.Imprint)
	})
}

func TestUseCase_Detail(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	t.Run("不存在的副本返回NotFound", func(t *testing.T) {
		_, err := f.uc.Detail(ctx, "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, bookinstance.ErrBookInstanceNotFound)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("列表解引用图书", func(t *testing.T) {
		require.NoError(t, f.repos.Instances.Create(ctx, &bookinstance.BookInstance{BookID: f.book.ID, Imprint: "A", Status: bookinstance.StatusAvailable}))
		require.NoError(t, f.repos.Instances.Create(ctx, &bookinstance.BookInstance{BookID: "gone", Imprint: "B", Status: bookinstance.StatusAvailable}))

		items, err := f.uc.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Emma", items[0].Book.Title)
		assert.Nil(t, items[1].Book)
	})
}

func TestUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	bi := &bookinstance.BookInstance{BookID: f.book.ID, Imprint: "Penguin", Status: bookinstance.StatusAvailable}
	require.NoError(t, f.repos.Instances.Create(ctx, bi))

	form, err := f.uc.DeleteForm(ctx, bi.ID)
	require.NoError(t, err)
	assert.Equal(t, bi.ID, form.Entity.ID)

	res, err := f.uc.Delete(ctx, bi.ID)
	require.NoError(t, err)
	assert.Equal(t, "/catalog/bookinstances", res.RedirectURL)

	// 再删一次仍然回到列表
	res, err = f.uc.Delete(ctx, bi.ID)
	require.NoError(t, err)
	assert.Equal(t, "/catalog/bookinstances", res.RedirectURL)
	assert.Equal(t, []string{"catalog.bookinstance.deleted:" + bi.ID}, f.events.Published())

	form, err = f.uc.DeleteForm(ctx, bi.ID)
	require.NoError(t, err)
	assert.True(t, form.Done())
}
