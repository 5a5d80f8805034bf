package book

import (
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	// ErrBookHasInstances 图书仍有副本,禁止删除
	ErrBookHasInstances = apperrors.New(apperrors.ErrCodeDependencyExists, "Book has copies")
)
