package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appbookinstance "github.com/xiebiao/locallibrary/internal/application/bookinstance"
)

// BookInstanceHandler 副本页面
type BookInstanceHandler struct {
	*Base
	instanceUseCase *appbookinstance.UseCase
}

// NewBookInstanceHandler 创建副本处理器
func NewBookInstanceHandler(base *Base, instanceUseCase *appbookinstance.UseCase) *BookInstanceHandler {
	return &BookInstanceHandler{Base: base, instanceUseCase: instanceUseCase}
}

// List GET /catalog/bookinstances
func (h *BookInstanceHandler) List(c *gin.Context) {
	items, err := h.instanceUseCase.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "bookinstance_list", "Book Instance List", gin.H{"Instances": items})
}

// Detail GET /catalog/bookinstance/:id
func (h *BookInstanceHandler) Detail(c *gin.Context) {
	item, err := h.instanceUseCase.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "bookinstance_detail", "Book Instance Detail", gin.H{
		"Instance": item.Instance,
		"Book":     item.Book,
	})
}

// CreateForm GET /catalog/bookinstance/create?book=<id>
func (h *BookInstanceHandler) CreateForm(c *gin.Context) {
	res, err := h.instanceUseCase.CreateForm(c.Request.Context(), c.Query("book"))
	h.form(c, "Create BookInstance", res, err)
}

// Create POST /catalog/bookinstance/create
func (h *BookInstanceHandler) Create(c *gin.Context) {
	form, ok := h.postForm(c)
	if !ok {
		return
	}
	res, err := h.instanceUseCase.Create(c.Request.Context(), form)
	h.form(c, "Create BookInstance", res, err)
}

// UpdateForm GET /catalog/bookinstance/:id/update
func (h *BookInstanceHandler) UpdateForm(c *gin.Context) {
	res, err := h.instanceUseCase.UpdateForm(c.Request.Context(), c.Param("id"))
	h.form(c, "Update BookInstance", res, err)
}

// Update POST /catalog/bookinstance/:id/update
func (h *BookInstanceHandler) Update(c *gin.Context) {
	form, ok := h.postForm(c)
	if !ok {
		return
	}
	res, err := h.instanceUseCase.Update(c.Request.Context(), c.Param("id"), form)
	h.form(c, "Update BookInstance", res, err)
}

// DeleteForm GET /catalog/bookinstance/:id/delete
func (h *BookInstanceHandler) DeleteForm(c *gin.Context) {
	res, err := h.instanceUseCase.DeleteForm(c.Request.Context(), c.Param("id"))
	h.delete(c, res, err)
}

// Delete POST /catalog/bookinstance/:id/delete
func (h *BookInstanceHandler) Delete(c *gin.Context) {
	res, err := h.instanceUseCase.Delete(c.Request.Context(), deleteID(c, "bookinstanceid"))
	h.delete(c, res, err)
}

func (h *BookInstanceHandler) form(c *gin.Context, title string, res *appbookinstance.Form, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Saved() {
		h.redirect(c, res.RedirectURL, res.Notice)
		return
	}
	h.render(c, http.StatusOK, "bookinstance_form", title, gin.H{
		"Instance": res.Candidate,
		"Books":    res.Books,
		"Statuses": res.Statuses,
		"Errors":   res.Errors,
	})
}

func (h *BookInstanceHandler) delete(c *gin.Context, res *appbookinstance.DeleteResult, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Done() {
		h.redirect(c, res.RedirectURL, res.Notice)
		return
	}
	h.render(c, http.StatusOK, "bookinstance_delete", "Delete BookInstance", gin.H{"Instance": res.Entity})
}
