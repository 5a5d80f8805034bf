package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appgenre "github.com/xiebiao/locallibrary/internal/application/genre"
)

// GenreHandler 分类页面
type GenreHandler struct {
	*Base
	genreUseCase *appgenre.UseCase
}

// NewGenreHandler 创建分类处理器
func NewGenreHandler(base *Base, genreUseCase *appgenre.UseCase) *GenreHandler {
	return &GenreHandler{Base: base, genreUseCase: genreUseCase}
}

// List GET /catalog/genres
func (h *GenreHandler) List(c *gin.Context) {
	list, err := h.genreUseCase.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "genre_list", "Genre List", gin.H{"Genres": list})
}

// Detail GET /catalog/genre/:id
func (h *GenreHandler) Detail(c *gin.Context) {
	detail, err := h.genreUseCase.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "genre_detail", "Genre Detail", gin.H{
		"Genre": detail.Genre,
		"Books": detail.Books,
	})
}

// CreateForm GET /catalog/genre/create
func (h *GenreHandler) CreateForm(c *gin.Context) {
	res, err := h.genreUseCase.CreateForm(c.Request.Context())
	h.form(c, "Create Genre", res, err)
}

// Create POST /catalog/genre/create
// 同名分类已存在时重定向到已有分类
func (h *GenreHandler) Create(c *gin.Context) {
	form, ok := h.postForm(c)
	if !ok {
		return
	}
	res, err := h.genreUseCase.Create(c.Request.Context(), form)
	h.form(c, "Create Genre", res, err)
}

// UpdateForm GET /catalog/genre/:id/update
func (h *GenreHandler) UpdateForm(c *gin.Context) {
	res, err := h.genreUseCase.UpdateForm(c.Request.Context(), c.Param("id"))
	h.form(c, "Update Genre", res, err)
}

// Update POST /catalog/genre/:id/update
func (h *GenreHandler) Update(c *gin.Context) {
	form, ok := h.postForm(c)
	if !ok {
		return
	}
	res, err := h.genreUseCase.Update(c.Request.Context(), c.Param("id"), form)
	h.form(c, "Update Genre", res, err)
}

// DeleteForm GET /catalog/genre/:id/delete
func (h *GenreHandler) DeleteForm(c *gin.Context) {
	res, err := h.genreUseCase.DeleteForm(c.Request.Context(), c.Param("id"))
	h.delete(c, res, err)
}

// Delete POST /catalog/genre/:id/delete
func (h *GenreHandler) Delete(c *gin.Context) {
	res, err := h.genreUseCase.Delete(c.Request.Context(), deleteID(c, "genreid"))
	h.delete(c, res, err)
}

func (h *GenreHandler) form(c *gin.Context, title string, res *appgenre.FormResult, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Saved() {
		h.redirect(c, res.RedirectURL, res.Notice)
		return
	}
	h.render(c, http.StatusOK, "genre_form", title, gin.H{
		"Genre":  res.Candidate,
		"Errors": res.Errors,
	})
}

func (h *GenreHandler) delete(c *gin.Context, res *appgenre.DeleteResult, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Done() {
		h.redirect(c, res.RedirectURL, res.Notice)
		return
	}
	h.render(c, http.StatusOK, "genre_delete", "Delete Genre", gin.H{
		"Genre":   res.Entity,
		"Books":   res.Dependents,
		"Blocked": res.Blocked,
	})
}
