package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"

	"photostudio/internal/domain"
)

// ClientAddress X-Forwarded-For 第一段，否则取连接对端地址（去端口）
func ClientAddress(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	addr := strings.TrimSpace(c.Request.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// ActorFrom 已登录用户优先，否则按地址视为匿名
func ActorFrom(c *gin.Context) domain.Actor {
	if u := CurrentUser(c); u != nil {
		return domain.UserActor(u.ID)
	}
	return domain.AnonymousActor(ClientAddress(c))
}
