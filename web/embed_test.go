package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/locallibrary/internal/domain/author"
	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/internal/domain/bookinstance"
	"github.com/xiebiao/locallibrary/pkg/validator"
)

func TestTemplates(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"index", "error",
		"author_list", "author_detail", "author_form", "author_delete",
		"book_list", "book_detail", "book_form", "book_delete",
		"genre_list", "genre_detail", "genre_form", "genre_delete",
		"bookinstance_list", "bookinstance_detail", "bookinstance_form", "bookinstance_delete",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestAuthorForm_NoDoubleEscape(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	dob := time.Date(1775, 12, 16, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "author_form", map[string]interface{}{
		"Title":  "Create Author",
		"Flash":  []string{"Author created"},
		"Author": &author.Author{FirstName: validator.Escape("O'Brien"), FamilyName: "Austen", DateOfBirth: &dob},
		"Errors": []validator.FieldError{{Field: "date_of_death", Message: "Invalid date of death"}},
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `value="O&#x27;Brien"`, "已转义的文本原样输出")
	assert.NotContains(t, html, "&amp;#x27;")
	assert.Contains(t, html, `value="1775-12-16"`)
	assert.Contains(t, html, "Invalid date of death")
	assert.Contains(t, html, `<p class="flash">Author created</p>`)
}

func TestBookForm_Selection(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "book_form", map[string]interface{}{
		"Title":   "Create Book",
		"Book":    &book.Book{AuthorID: "a2", GenreIDs: []string{"g1"}},
		"Authors": []*author.Author{{ID: "a1", FirstName: "Isaac", FamilyName: "Asimov"}, {ID: "a2", FirstName: "Jane", FamilyName: "Austen"}},
		"Genres":  nil,
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `<option value="a2" selected>Austen, Jane</option>`)
	assert.Contains(t, html, `<option value="a1">Asimov, Isaac</option>`)
}

func TestBookInstanceList_DeletedBook(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	type item struct {
		Instance *bookinstance.BookInstance
		Book     *book.Book
	}
	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "bookinstance_list", map[string]interface{}{
		"Title":     "Book Instance List",
		"Instances": []item{{Instance: &bookinstance.BookInstance{ID: "i1", Imprint: "Penguin", Status: bookinstance.StatusAvailable}}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(deleted book)")
}
