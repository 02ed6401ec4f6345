package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sasamaylina/responsi-paw/internal/logger"
	"github.com/sasamaylina/responsi-paw/internal/logic"
	"github.com/sasamaylina/responsi-paw/internal/storage"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// LogicErrorResponse 把业务错误映射为HTTP状态码
func LogicErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, logic.ErrUserNotFound),
		errors.Is(err, logic.ErrCampaignNotFound),
		errors.Is(err, logic.ErrDonationNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, logic.ErrInvalidCredentials):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, logic.ErrValidation),
		errors.Is(err, logic.ErrDuplicateUsername),
		errors.Is(err, logic.ErrDuplicateEmail),
		errors.Is(err, logic.ErrCampaignInactive),
		errors.Is(err, logic.ErrSelfDelete),
		errors.Is(err, storage.ErrExtNotAllowed),
		errors.Is(err, storage.ErrFileTooLarge):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("请求处理失败: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
	}
}
