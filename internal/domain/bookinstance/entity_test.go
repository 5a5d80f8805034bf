package bookinstance

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromForm_Status(t *testing.T) {
	form := func(status string) url.Values {
		return url.Values{"book": {"b1"}, "imprint": {"Penguin, 2003"}, "status": {status}}
	}

	t.Run("状态为空时默认Maintenance", func(t *testing.T) {
		r := FormSchema.Validate(form(""))
		require.True(t, r.Valid())
		assert.Equal(t, StatusMaintenance, FromForm("", r).Status)
	})

	t.Run("非法状态", func(t *testing.T) {
		r := FormSchema.Validate(form("Lost"))
		require.Len(t, r.Errors, 1)
		assert.Equal(t, "status", r.Errors[0].Field)
		assert.Equal(t, "Invalid status", r.Errors[0].Message)
	})

	t.Run("全部合法状态", func(t *testing.T) {
		for _, s := range Statuses {
			assert.True(t, FormSchema.Validate(form(string(s))).Valid(), s)
		}
	})
}

func TestFromForm_DueBack(t *testing.T) {
	r := FormSchema.Validate(url.Values{
		"book": {"b1"}, "imprint": {"Penguin"}, "status": {"Loaned"}, "due_back": {"2024-03-01"},
	})
	require.True(t, r.Valid())

	bi := FromForm("i1", r)
	assert.Equal(t, "2024-03-01", bi.DueBackISO())
	assert.Equal(t, "Mar 1, 2024", bi.DueBackFormatted())
	assert.Equal(t, "/catalog/bookinstance/i1", bi.URL())

	r = FormSchema.Validate(url.Values{"book": {"b1"}, "imprint": {"Penguin"}, "due_back": {"01/03/2024"}})
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "Invalid date", r.Errors[0].Message)
}

func TestBookInstance_IsAvailable(t *testing.T) {
	due := time.Now()
	assert.True(t, (&BookInstance{Status: StatusAvailable}).IsAvailable())
	assert.False(t, (&BookInstance{Status: StatusLoaned, DueBack: &due}).IsAvailable())
	assert.Equal(t, "", (&BookInstance{}).DueBackISO())
}
