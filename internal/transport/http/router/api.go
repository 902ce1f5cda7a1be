package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"photostudio/internal/core/server"
	mdw "photostudio/internal/transport/http/middleware"
)

func NewAPIEngine(d *Deps) *gin.Engine {
	r := server.NewRouter(d.Log, d.Cfg.CORS.AllowOrigins)
	lim := d.Cfg.Limits

	// 中间件
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
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	d.Registry().MountAllAPI(api)

	return r
}
