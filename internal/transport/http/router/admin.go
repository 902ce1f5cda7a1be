package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"photostudio/internal/core/server"
	mdw "photostudio/internal/transport/http/middleware"
)

// NewAdminEngine 独立端口的后台，只挂管理员路由
func NewAdminEngine(d *Deps) *gin.Engine {
	r := server.NewRouter(d.Log, d.Cfg.CORS.AllowOrigins)
	lim := d.Cfg.Limits

	r.Use(
		mdw.RequestID(),
		mdw.Recovery(d.Log),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst),
		mdw.ConcurrencyLimit(lim.MaxInFlight, lim.QueueWait),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
		mdw.Timeout(lim.RequestTimeout, d.Log),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	d.Registry().MountAllAdmin(admin)

	return r
}
