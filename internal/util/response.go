package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data part of the common success envelope.
type Response map[string]interface{}

// Business codes shared by all API endpoints.
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeServerErr    = 50001
)

// Success writes the common success envelope.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Created is Success with a 201 status, for newly created resources.
func Created(c *gin.Context, data Response) {
	c.JSON(http.StatusCreated, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes the common error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}
