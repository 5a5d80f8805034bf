package author

import (
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
)

// 作者领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "Author not found")

	// ErrAuthorHasBooks 作者仍有关联图书,禁止删除
	ErrAuthorHasBooks = apperrors.New(apperrors.ErrCodeDependencyExists, "Author has books")
)
