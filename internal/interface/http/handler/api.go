package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	appauthor "github.com/xiebiao/locallibrary/internal/application/author"
	appbook "github.com/xiebiao/locallibrary/internal/application/book"
	appbookinstance "github.com/xiebiao/locallibrary/internal/application/bookinstance"
	appgenre "github.com/xiebiao/locallibrary/internal/application/genre"
	"github.com/xiebiao/locallibrary/internal/domain/bookinstance"
	"github.com/xiebiao/locallibrary/internal/domain/genre"
	"github.com/xiebiao/locallibrary/internal/interface/http/dto"
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
	"github.com/xiebiao/locallibrary/pkg/response"
)

// APIHandler 只读JSON接口(/api/v1)
// 与页面共用同一组用例，只是把结果序列化成统一响应结构
type APIHandler struct {
	authorUseCase   *appauthor.UseCase
	bookUseCase     *appbook.UseCase
	genreUseCase    *appgenre.UseCase
	instanceUseCase *appbookinstance.UseCase
}

// NewAPIHandler 创建JSON接口处理器
func NewAPIHandler(
	authorUseCase *appauthor.UseCase,
	bookUseCase *appbook.UseCase,
	genreUseCase *appgenre.UseCase,
	instanceUseCase *appbookinstance.UseCase,
) *APIHandler {
	return &APIHandler{
		authorUseCase:   authorUseCase,
		bookUseCase:     bookUseCase,
		genreUseCase:    genreUseCase,
		instanceUseCase: instanceUseCase,
	}
}

// apiError 实体不存在统一返回40400，其余按AppError处理
func apiError(c *gin.Context, err error) {
	if apperrors.IsNotFound(err) {
		response.ErrorWithCode(c, apperrors.ErrCodeNotFound, apperrors.GetAppError(err).Message)
		return
	}
	response.Error(c, err)
}

// ListAuthors 作者列表
// @Summary      作者列表
// @Description  按family_name升序返回全部作者
// @Tags         作者
// @Produce      json
// @Success      200 {object} response.Response{data=response.ListData{list=[]dto.AuthorResponse}}
// @Failure      500 {object} response.Response "存储错误"
// @Router       /api/v1/authors [get]
func (h *APIHandler) ListAuthors(c *gin.Context) {
	list, err := h.authorUseCase.List(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	response.SuccessWithList(c, dto.NewAuthorList(list), len(list))
}

// GetAuthor 作者详情
// @Summary      作者详情
// @Description  作者及其全部图书
// @Tags         作者
// @Produce      json
// @Param        id path string true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorDetailResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *APIHandler) GetAuthor(c *gin.Context) {
	detail, err := h.authorUseCase.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		apiError(c, err)
		return
	}
	response.Success(c, dto.AuthorDetailResponse{
		AuthorResponse: *dto.NewAuthorResponse(detail.Author),
		Books:          dto.NewBookSummaries(detail.Books),
	})
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按title升序返回全部图书(含作者)
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=response.ListData{list=[]dto.BookResponse}}
// @Failure      500 {object} response.Response "存储错误"
// @Router       /api/v1/books [get]
func (h *APIHandler) ListBooks(c *gin.Context) {
	items, err := h.bookUseCase.List(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	list := lo.Map(items, func(it appbook.ListItem, _ int) dto.BookResponse {
		return dto.NewBookResponse(it.Book, it.Author)
	})
	response.SuccessWithList(c, list, len(list))
}

// GetBook 图书详情
// @Summary      图书详情
// @Description  图书、作者、分类及全部副本
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookDetailResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *APIHandler) GetBook(c *gin.Context) {
	detail, err := h.bookUseCase.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		apiError(c, err)
		return
	}
	response.Success(c, dto.BookDetailResponse{
		BookResponse: dto.NewBookResponse(detail.Book, detail.Author),
		Genres:       dto.NewGenreList(detail.Genres),
		Instances: lo.Map(detail.Instances, func(bi *bookinstance.BookInstance, _ int) dto.BookInstanceResponse {
			return dto.NewBookInstanceResponse(bi, nil)
		}),
	})
}

// ListGenres 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=response.ListData{list=[]dto.GenreResponse}}
// @Router       /api/v1/genres [get]
func (h *APIHandler) ListGenres(c *gin.Context) {
	list, err := h.genreUseCase.List(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	response.SuccessWithList(c, dto.NewGenreList(list), len(list))
}

// GetGenre 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        id path string true "分类ID"
// @Success      200 {object} response.Response{data=dto.GenreDetailResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/genres/{id} [get]
func (h *APIHandler) GetGenre(c *gin.Context) {
	detail, err := h.genreUseCase.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		apiError(c, err)
		return
	}
	response.Success(c, dto.GenreDetailResponse{
		GenreResponse: dto.NewGenreList([]*genre.Genre{detail.Genre})[0],
		Books:         dto.NewBookSummaries(detail.Books),
	})
}

// ListBookInstances 副本列表
// @Summary      副本列表
// @Tags         副本
// @Produce      json
// @Success      200 {object} response.Response{data=response.ListData{list=[]dto.BookInstanceResponse}}
// @Router       /api/v1/bookinstances [get]
func (h *APIHandler) ListBookInstances(c *gin.Context) {
	items, err := h.instanceUseCase.List(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	list := lo.Map(items, func(it appbookinstance.Item, _ int) dto.BookInstanceResponse {
		return dto.NewBookInstanceResponse(it.Instance, it.Book)
	})
	response.SuccessWithList(c, list, len(list))
}

// GetBookInstance 副本详情
// @Summary      副本详情
// @Tags         副本
// @Produce      json
// @Param        id path string true "副本ID"
// @Success      200 {object} response.Response{data=dto.BookInstanceResponse}
// @Failure      404 {object} response.Response "副本不存在"
// @Router       /api/v1/bookinstances/{id} [get]
func (h *APIHandler) GetBookInstance(c *gin.Context) {
	item, err := h.instanceUseCase.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		apiError(c, err)
		return
	}
	response.Success(c, dto.NewBookInstanceResponse(item.Instance, item.Book))
}
