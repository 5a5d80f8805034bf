package validator

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authorLikeSchema() *Schema {
	return NewSchema(
		Field("first_name").Trim().Required("First name must be specified").Escape(),
		Field("family_name").Trim().Required("Family name must be specified").Escape(),
		Field("date_of_birth").Optional().ISO8601("Invalid date of birth"),
		Field("date_of_death").Optional().ISO8601("Invalid date of death"),
	)
}

func TestSchema_Required(t *testing.T) {
	s := authorLikeSchema()

	t.Run("空值和纯空白都失败", func(t *testing.T) {
		for _, v := range []string{"", "   ", "\t\n"} {
			r := s.Validate(url.Values{"first_name": {v}, "family_name": {"Austen"}})
			require.False(t, r.Valid(), "value %q", v)
			assert.Equal(t, []FieldError{{Field: "first_name", Message: "First name must be specified"}}, r.Errors)
		}
	})

	t.Run("字段缺失视为空", func(t *testing.T) {
		r := s.Validate(url.Values{})
		assert.Equal(t, []FieldError{
			{Field: "first_name", Message: "First name must be specified"},
			{Field: "family_name", Message: "Family name must be specified"},
		}, r.Errors)
	})

	t.Run("通过时返回trim后的值", func(t *testing.T) {
		r := s.Validate(url.Values{"first_name": {"  Jane "}, "family_name": {"Austen"}})
		assert.True(t, r.Valid())
		assert.Equal(t, "Jane", r.Value("first_name"))
	})
}

func TestSchema_CollectsAllErrorsInOrder(t *testing.T) {
	r := authorLikeSchema().Validate(url.Values{
		"first_name":    {""},
		"family_name":   {" "},
		"date_of_birth": {"yesterday"},
		"date_of_death": {"1817-13-40"},
	})

	assert.Equal(t, []FieldError{
		{Field: "first_name", Message: "First name must be specified"},
		{Field: "family_name", Message: "Family name must be specified"},
		{Field: "date_of_birth", Message: "Invalid date of birth"},
		{Field: "date_of_death", Message: "Invalid date of death"},
	}, r.Errors)
}

func TestSchema_OptionalDate(t *testing.T) {
	s := authorLikeSchema()
	base := func(dob string) url.Values {
		return url.Values{"first_name": {"Jane"}, "family_name": {"Austen"}, "date_of_birth": {dob}}
	}

	t.Run("空值跳过校验", func(t *testing.T) {
		r := s.Validate(base(""))
		assert.True(t, r.Valid())
		assert.Nil(t, r.Date("date_of_birth"))
	})

	t.Run("非ISO格式失败", func(t *testing.T) {
		for _, v := range []string{"16/12/1775", "December 16, 1775", "1775-02-30", "abc"} {
			r := s.Validate(base(v))
			require.Len(t, r.Errors, 1, "value %q", v)
			assert.Equal(t, "Invalid date of birth", r.Errors[0].Message)
			assert.Nil(t, r.Date("date_of_birth"))
		}
	})

	t.Run("ISO格式解析成功", func(t *testing.T) {
		for _, v := range []string{"1775-12-16", "1775-12-16T00:00:00Z", "1775-12-16T10:30"} {
			r := s.Validate(base(v))
			require.True(t, r.Valid(), "value %q", v)
			d := r.Date("date_of_birth")
			require.NotNil(t, d)
			assert.Equal(t, 1775, d.Year())
			assert.Equal(t, 16, d.Day())
		}
	})
}

func TestSchema_EscapeEvenOnFailure(t *testing.T) {
	s := NewSchema(
		Field("title").Trim().Required("Title must not be empty.").Escape(),
		Field("isbn").Trim().Required("ISBN must not be empty").Escape(),
	)

	r := s.Validate(url.Values{"title": {` <script>alert("x")</script> `}, "isbn": {""}})

	assert.False(t, r.Valid())
	assert.Equal(t, "&lt;script&gt;alert(&quot;x&quot;)&lt;&#x2F;script&gt;", r.Value("title"))
}

func TestSchema_OneOfAndEach(t *testing.T) {
	s := NewSchema(
		Field("status").Escape().OneOf("Invalid status", "Available", "Maintenance"),
		Field("genre").Each().Escape(),
	)

	r := s.Validate(url.Values{"status": {"Lost"}, "genre": {"a<b", "", "c"}})
	assert.Equal(t, []FieldError{{Field: "status", Message: "Invalid status"}}, r.Errors)
	assert.Equal(t, []string{"a&lt;b", "c"}, r.Values("genre"))

	r = s.Validate(url.Values{"status": {"Available"}})
	assert.True(t, r.Valid())
	assert.Empty(t, r.Values("genre"))
}

func TestSchema_MinLength(t *testing.T) {
	s := NewSchema(Field("name").Trim().MinLength(3, "Genre name must contain at least 3 characters").Escape())

	assert.False(t, s.Validate(url.Values{"name": {"  ab "}}).Valid())
	assert.False(t, s.Validate(url.Values{"name": {""}}).Valid())
	assert.True(t, s.Validate(url.Values{"name": {"Poetry"}}).Valid())
}

func TestResult_AddError(t *testing.T) {
	r := authorLikeSchema().Validate(url.Values{"first_name": {"Jane"}, "family_name": {"Austen"}})
	require.True(t, r.Valid())

	r.AddError("author", "Author not found")
	assert.False(t, r.Valid())
}
