package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/locallibrary/internal/application/author"
)

// AuthorHandler 作者页面
type AuthorHandler struct {
	*Base
	authorUseCase *appauthor.UseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(base *Base, authorUseCase *appauthor.UseCase) *AuthorHandler {
	return &AuthorHandler{Base: base, authorUseCase: authorUseCase}
}

// List GET /catalog/authors
func (h *AuthorHandler) List(c *gin.Context) {
	list, err := h.authorUseCase.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "author_list", "Author List", gin.H{"Authors": list})
}

// Detail GET /catalog/author/:id
func (h *AuthorHandler) Detail(c *gin.Context) {
	detail, err := h.authorUseCase.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "author_detail", "Author Detail", gin.H{
		"Author": detail.Author,
		"Books":  detail.Books,
	})
}

// CreateForm GET /catalog/author/create
func (h *AuthorHandler) CreateForm(c *gin.Context) {
	res, err := h.authorUseCase.CreateForm(c.Request.Context())
	h.form(c, "Create Author", res, err)
}

// Create POST /catalog/author/create
func (h *AuthorHandler) Create(c *gin.Context) {
	form, ok := h.postForm(c)
	if !ok {
		return
	}
	res, err := h.authorUseCase.Create(c.Request.Context(), form)
	h.form(c, "Create Author", res, err)
}

// UpdateForm GET /catalog/author/:id/update
func (h *AuthorHandler) UpdateForm(c *gin.Context) {
	res, err := h.authorUseCase.UpdateForm(c.Request.Context(), c.Param("id"))
	h.form(c, "Update Author", res, err)
}

// Update POST /catalog/author/:id/update
func (h *AuthorHandler) Update(c *gin.Context) {
	form, ok := h.postForm(c)
	if !ok {
		return
	}
	res, err := h.authorUseCase.Update(c.Request.Context(), c.Param("id"), form)
	h.form(c, "Update Author", res, err)
}

// DeleteForm GET /catalog/author/:id/delete
func (h *AuthorHandler) DeleteForm(c *gin.Context) {
	res, err := h.authorUseCase.DeleteForm(c.Request.Context(), c.Param("id"))
	h.delete(c, res, err)
}

// Delete POST /catalog/author/:id/delete
func (h *AuthorHandler) Delete(c *gin.Context) {
	res, err := h.authorUseCase.Delete(c.Request.Context(), deleteID(c, "authorid"))
	h.delete(c, res, err)
}

func (h *AuthorHandler) form(c *gin.Context, title string, res *appauthor.FormResult, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Saved() {
		h.redirect(c, res.RedirectURL, res.Notice)
		return
	}
	h.render(c, http.StatusOK, "author_form", title, gin.H{
		"Author": res.Candidate,
		"Errors": res.Errors,
	})
}

func (h *AuthorHandler) delete(c *gin.Context, res *appauthor.DeleteResult, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Done() {
		h.redirect(c, res.RedirectURL, res.Notice)
		return
	}
	h.render(c, http.StatusOK, "author_delete", "Delete Author", gin.H{
		"Author":  res.Entity,
		"Books":   res.Dependents,
		"Blocked": res.Blocked,
	})
}
