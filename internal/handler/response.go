package handler

import (
	"errors"
	"net/http"

	"github.com/blues/ims/internal/logger"
	"github.com/blues/ims/internal/logic"
	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Pagination 分页信息结构
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination 创建分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}

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

// LogicErrorResponse 把业务层错误映射为HTTP响应。
// 持久层错误只记录日志，对外返回通用错误信息。
func LogicErrorResponse(c *gin.Context, err error) {
	var validationErr *logic.ValidationError
	var notFoundErr *logic.NotFoundError
	var conflictErr *logic.ConflictError
	var storeErr *logic.StoreError

	switch {
	case errors.As(err, &validationErr):
		ErrorResponse(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &notFoundErr):
		ErrorResponse(c, http.StatusNotFound, notFoundErr.Message)
	case errors.As(err, &conflictErr):
		ErrorResponse(c, http.StatusConflict, conflictErr.Message)
	case errors.As(err, &storeErr):
		logger.Error("Store error on %s %s: %v", c.Request.Method, c.Request.URL.Path, storeErr)
		ErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
	default:
		logger.Error("Unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		ErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
	}
}
