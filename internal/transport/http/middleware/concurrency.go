package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"

	resp "photostudio/internal/transport/http/response"
)

var httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "http_in_flight_requests",
	Help: "Requests currently holding a concurrency slot",
})

func init() { prometheus.MustRegister(httpInFlight) }

// ConcurrencyLimit 最多 max 个请求同时处理；排队超过 wait 返回 429，wait<=0 不排队
func ConcurrencyLimit(max int64, wait time.Duration) gin.HandlerFunc {
	if max <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if !acquire(c.Request.Context(), sem, wait) {
			resp.Abort(c, resp.CodeTooManyRequests, "server busy")
			return
		}
		httpInFlight.Inc()
		defer func() {
			httpInFlight.Dec()
			sem.Release(1)
		}()
		c.Next()
	}
}

func acquire(ctx context.Context, sem *semaphore.Weighted, wait time.Duration) bool {
	if sem.TryAcquire(1) {
		return true
	}
	if wait <= 0 {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	return sem.Acquire(ctx, 1) == nil
}
