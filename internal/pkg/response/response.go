package response

import (
	"Murmur/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// OK 成功返回封装，带固定的 message 字段
func OK(c *gin.Context, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["message"]; !ok {
		data["message"] = "ok"
	}
	c.JSON(http.StatusOK, data)
}

// Created 创建成功返回封装
func Created(c *gin.Context, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["message"]; !ok {
		data["message"] = "ok"
	}
	c.JSON(http.StatusCreated, data)
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"message": message,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, http.StatusBadRequest, "参数错误: 字段 ["+ve[0].Field()+"] 校验失败")
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, http.StatusBadRequest, "Json错误")
		return
	}

	status, ok := service.ErrorMap[err]
	if !ok {
		status = http.StatusInternalServerError
		log.ErrorContext(c.Request.Context(), "unmapped error", "err", err)
		Fail(c, status, service.UnExpectedError.Error())
		return
	}
	Fail(c, status, err.Error())
}
