package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photostudio/internal/domain"
)

// KeyCode 写入 gin.Context，供 metrics/accesslog 读取业务码
const KeyCode = "resp_code"

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应
func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// CodeOf 按错误分类映射业务码；未知错误一律 500
func CodeOf(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, domain.ErrValidation):
		return CodeBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return CodeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, domain.ErrConflict):
		return CodeConflict
	default:
		return CodeServerError
	}
}

// JSON 统一 HTTP 200 + 信封
func JSON(c *gin.Context, r Resp) {
	c.Set(KeyCode, r.Code)
	c.JSON(http.StatusOK, r)
}

func Abort(c *gin.Context, code int, msg string) {
	c.Set(KeyCode, code)
	c.AbortWithStatusJSON(http.StatusOK, Error(code, msg))
}

// AbortErr 领域错误直接中断；500 不外泄内部信息
func AbortErr(c *gin.Context, err error) {
	code := CodeOf(err)
	msg := err.Error()
	if code == CodeServerError {
		msg = ""
	}
	Abort(c, code, msg)
}
