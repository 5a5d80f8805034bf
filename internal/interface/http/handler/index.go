package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/locallibrary/internal/application/catalog"
)

// IndexHandler 目录首页
type IndexHandler struct {
	*Base
	indexUseCase *catalog.IndexUseCase
}

// NewIndexHandler 创建首页处理器
func NewIndexHandler(base *Base, indexUseCase *catalog.IndexUseCase) *IndexHandler {
	return &IndexHandler{Base: base, indexUseCase: indexUseCase}
}

// Index GET /catalog/
func (h *IndexHandler) Index(c *gin.Context) {
	counts, err := h.indexUseCase.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "index", "Local Library Home", gin.H{"Counts": counts})
}
