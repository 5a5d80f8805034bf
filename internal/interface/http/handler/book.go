package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/locallibrary/internal/application/book"
)

// BookHandler 图书页面
type BookHandler struct {
	*Base
	bookUseCase *appbook.UseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(base *Base, bookUseCase *appbook.UseCase) *BookHandler {
	return &BookHandler{Base: base, bookUseCase: bookUseCase}
}

// List GET /catalog/books
func (h *BookHandler) List(c *gin.Context) {
	items, err := h.bookUseCase.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "book_list", "Book List", gin.H{"Books": items})
}

// Detail GET /catalog/book/:id
func (h *BookHandler) Detail(c *gin.Context) {
	detail, err := h.bookUseCase.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "book_detail", "Book Detail", gin.H{
		"Book":      detail.Book,
		"Author":    detail.Author,
		"Genres":    detail.Genres,
		"Instances": detail.Instances,
	})
}

// CreateForm GET /catalog/book/create
func (h *BookHandler) CreateForm(c *gin.Context) {
	res, err := h.bookUseCase.CreateForm(c.Request.Context())
	h.form(c, "Create Book", res, err)
}

// Create POST /catalog/book/create
// genre是多值字段(复选框)
func (h *BookHandler) Create(c *gin.Context) {
	form, ok := h.postForm(c)
	if !ok {
		return
	}
	res, err := h.bookUseCase.Create(c.Request.Context(), form)
	h.form(c, "Create Book", res, err)
}

// UpdateForm GET /catalog/book/:id/update
func (h *BookHandler) UpdateForm(c *gin.Context) {
	res, err := h.bookUseCase.UpdateForm(c.Request.Context(), c.Param("id"))
	h.form(c, "Update Book", res, err)
}

// Update POST /catalog/book/:id/update
func (h *BookHandler) Update(c *gin.Context) {
	form, ok := h.postForm(c)
	if !ok {
		return
	}
	res, err := h.bookUseCase.Update(c.Request.Context(), c.Param("id"), form)
	h.form(c, "Update Book", res, err)
}

// DeleteForm GET /catalog/book/:id/delete
func (h *BookHandler) DeleteForm(c *gin.Context) {
	res, err := h.bookUseCase.DeleteForm(c.Request.Context(), c.Param("id"))
	h.delete(c, res, err)
}

// Delete POST /catalog/book/:id/delete
func (h *BookHandler) Delete(c *gin.Context) {
	res, err := h.bookUseCase.Delete(c.Request.Context(), deleteID(c, "bookid"))
	h.delete(c, res, err)
}

func (h *BookHandler) form(c *gin.Context, title string, res *appbook.Form, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Saved() {
		h.redirect(c, res.RedirectURL, res.Notice)
		return
	}
	h.render(c, http.StatusOK, "book_form", title, gin.H{
		"Book":    res.Candidate,
		"Authors": res.Authors,
		"Genres":  res.Genres,
		"Errors":  res.Errors,
	})
}

func (h *BookHandler) delete(c *gin.Context, res *appbook.DeleteResult, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Done() {
		h.redirect(c, res.RedirectURL, res.Notice)
		return
	}
	h.render(c, http.StatusOK, "book_delete", "Delete Book", gin.H{
		"Book":      res.Entity,
		"Instances": res.Dependents,
		"Blocked":   res.Blocked,
	})
}
