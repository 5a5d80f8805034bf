package bookinstance

import (
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
)

var (
	// ErrBookInstanceNotFound 副本不存在
	ErrBookInstanceNotFound = apperrors.New(apperrors.ErrCodeBookInstanceNotFound, "Book copy not found")
)
