package api

import (
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/gamevault/catalog/internal/errors"
)

// SuccessResponse API成功响应结构
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// respondOK 输出成功响应
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Success:   true,
		Data:      data,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().Unix(),
	})
}

// respondError 输出错误响应
// 非AppError的错误统一按未知错误处理
func respondError(c *gin.Context, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.Wrap(err, apperrors.ErrUnknown)
	}
	c.JSON(appErr.HTTPStatus(), apperrors.NewErrorResponse(appErr, GetRequestID(c)))
}
