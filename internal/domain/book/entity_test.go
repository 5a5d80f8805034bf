package book

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormSchema(t *testing.T) {
	t.Run("必填字段全部为空", func(t *testing.T) {
		r := FormSchema.Validate(url.Values{"title": {" "}, "author": {""}, "summary": {""}, "isbn": {"\t"}})

		msgs := make([]string, 0, len(r.Errors))
		for _, e := range r.Errors {
			msgs = append(msgs, e.Message)
		}
		assert.Equal(t, []string{
			"Title must not be empty.",
			"Author must not be empty.",
			"Summary must not be empty.",
			"ISBN must not be empty",
		}, msgs)
	})

	t.Run("多个分类", func(t *testing.T) {
		r := FormSchema.Validate(url.Values{
			"title": {"Emma"}, "author": {"a1"}, "summary": {"s"}, "isbn": {"978"},
			"genre": {"g1", "g2"},
		})
		b := FromForm("b1", r)
		assert.True(t, r.Valid())
		assert.Equal(t, []string{"g1", "g2"}, b.GenreIDs)
		assert.True(t, b.HasGenre("g2"))
		assert.False(t, b.HasGenre("g3"))
		assert.Equal(t, "/catalog/book/b1", b.URL())
	})
}
