package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "photostudio/internal/transport/http/response"
)

// Timeout 请求 ctx 带截止时间，repo 的 gorm 查询随之取消；未写响应时补 504
func Timeout(d time.Duration, l *zap.Logger) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if l == nil {
		l = zap.NewNop()
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}
		l.Warn("request deadline exceeded",
			zap.String("rid", RequestIDOf(c)),
			zap.String("route", c.FullPath()),
			zap.Duration("limit", d),
		)
		if !c.Writer.Written() {
			resp.Abort(c, resp.CodeTimeout, "timeout")
		}
	}
}
