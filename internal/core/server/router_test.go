package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCorsConfig(t *testing.T) {
	all := corsConfig([]string{"*"})
	assert.True(t, all.AllowAllOrigins)
	assert.False(t, all.AllowCredentials)
	assert.Contains(t, all.AllowHeaders, "Authorization")

	some := corsConfig([]string{"https://studio.example"})
	assert.False(t, some.AllowAllOrigins)
	assert.True(t, some.AllowCredentials)
	assert.Equal(t, []string{"https://studio.example"}, some.AllowOrigins)
	assert.NoError(t, some.Validate())
}

func TestNewRouter_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(zap.NewNop(), []string{"https://studio.example"})
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://studio.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://studio.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBuildServer(t *testing.T) {
	srv := BuildServer(Addr("127.0.0.1", 8001), http.NotFoundHandler(), time.Second, 2*time.Second, 3*time.Second, zap.NewNop())
	assert.Equal(t, "127.0.0.1:8001", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 2*time.Second, srv.WriteTimeout)
	assert.NotNil(t, srv.ErrorLog)
}
