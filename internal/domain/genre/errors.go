package genre

import (
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
)

var (
	// ErrGenreNotFound 分类不存在
	ErrGenreNotFound = apperrors.New(apperrors.ErrCodeGenreNotFound, "Genre not found")

	// ErrGenreHasBooks 分类下仍有图书,禁止删除
	ErrGenreHasBooks = apperrors.New(apperrors.ErrCodeDependencyExists, "Genre has books")
)
