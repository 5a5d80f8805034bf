package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"实体不存在", New(ErrCodeAuthorNotFound, "Author not found"), http.StatusNotFound},
		{"参数错误", ErrInvalidParams, http.StatusBadRequest},
		{"存在依赖", New(ErrCodeDependencyExists, "Author has books"), http.StatusConflict},
		{"限流", ErrTooManyRequests, http.StatusTooManyRequests},
		{"存储错误", Wrap(errors.New("refused"), "list authors"), http.StatusInternalServerError},
		{"普通error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("detail: %w", New(ErrCodeGenreNotFound, "Genre not found"))))
	assert.False(t, IsNotFound(Wrap(errors.New("refused"), "find")))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestAppError_Is(t *testing.T) {
	notFound := New(ErrCodeBookNotFound, "Book not found")

	t.Run("按错误码和消息比较", func(t *testing.T) {
		assert.ErrorIs(t, fmt.Errorf("wrap: %w", New(ErrCodeBookNotFound, "Book not found")), notFound)
		assert.NotErrorIs(t, New(ErrCodeBookNotFound, "other"), notFound)
	})

	t.Run("Wrap保留底层错误", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, "find b1")
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "[50001] find b1: connection refused", err.Error())
	})

	t.Run("非AppError包装为Internal", func(t *testing.T) {
		appErr := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
	})
}
