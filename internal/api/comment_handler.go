package api

import (
	"github.com/gin-gonic/gin"
	"github.com/gamevault/catalog/internal/service"
	"go.uber.org/zap"
)

// CommentHandler 评论处理器
type CommentHandler struct {
	comments service.CommentService
	log      *zap.Logger
}

// NewCommentHandler 创建评论处理器
func NewCommentHandler(comments service.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, log: log}
}

// Delete 删除评论
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"deleted": id})
}
