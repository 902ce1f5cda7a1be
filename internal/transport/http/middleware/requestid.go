package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const KeyRequestID = "X-Request-ID"

// 上游传来的 id 只接受可见 ASCII，避免日志注入
func validRequestID(rid string) bool {
	if rid == "" || len(rid) > 128 {
		return false
	}
	for i := 0; i < len(rid); i++ {
		if rid[i] <= ' ' || rid[i] > '~' {
			return false
		}
	}
	return true
}

// RequestID 透传合法的 X-Request-ID，否则生成 uuid
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(KeyRequestID)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Next()
	}
}

// RequestIDOf 未挂 RequestID 中间件时为空串
func RequestIDOf(c *gin.Context) string { return c.GetString(KeyRequestID) }
