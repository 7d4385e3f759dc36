package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一成功响应结构
// 成功时 error 恒为 null，失败时 data 不出现
type Response[T any] struct {
	Success bool    `json:"success"`
	Data    T       `json:"data"`
	Error   *string `json:"error"`
}

// ErrorResponse 统一失败响应结构
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Success 写出成功响应
func Success[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, Response[T]{
		Success: true,
		Data:    data,
		Error:   nil,
	})
}

// Fail 写出失败响应
func Fail(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, ErrorResponse{
		Success: false,
		Error:   message,
	})
}

// AbortFail 中止请求链并写出失败响应，用于中间件
func AbortFail(c *gin.Context, httpCode int, message string) {
	c.AbortWithStatusJSON(httpCode, ErrorResponse{
		Success: false,
		Error:   message,
	})
}
