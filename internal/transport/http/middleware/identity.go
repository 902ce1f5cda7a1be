package middleware

import (
	"github.com/gin-gonic/gin"

	"photostudio/internal/domain"
	"photostudio/internal/service"
	resp "photostudio/internal/transport/http/response"
)

const (
	keyUser       = "user"
	keyAdminClaim = "admin_claim"
)

// RequireUser 必须是有效且未停用的数据库用户
func RequireUser(r *service.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := service.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			resp.Abort(c, resp.CodeUnauthorized, "not authenticated")
			return
		}
		u, err := r.ResolveUser(c.Request.Context(), tok)
		if err != nil {
			resp.AbortErr(c, err)
			return
		}
		if err := r.ResolveActiveUser(u); err != nil {
			resp.AbortErr(c, err)
			return
		}
		c.Set(keyUser, u)
		c.Next()
	}
}

// OptionalUser 没带 token 放行为匿名；带了无效 token 仍然拒绝
func OptionalUser(r *service.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := service.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		u, err := r.ResolveOptionalUser(c.Request.Context(), tok)
		if err != nil {
			resp.AbortErr(c, err)
			return
		}
		if u != nil {
			if err := r.ResolveActiveUser(u); err != nil {
				resp.AbortErr(c, err)
				return
			}
			c.Set(keyUser, u)
		}
		c.Next()
	}
}

// RequireAdminClaim 只校验 token 的 admin 声明
func RequireAdminClaim(r *service.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := service.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			resp.Abort(c, resp.CodeUnauthorized, "not authenticated")
			return
		}
		claim, err := r.ResolveAdminClaim(tok)
		if err != nil {
			resp.AbortErr(c, err)
			return
		}
		c.Set(keyAdminClaim, claim)
		c.Next()
	}
}

// RequireAdminUser 需挂在 RequireUser 之后
func RequireAdminUser(r *service.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := r.ResolveAdmin(CurrentUser(c)); err != nil {
			resp.AbortErr(c, err)
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(keyUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

func CurrentAdmin(c *gin.Context) (domain.AdminClaim, bool) {
	if v, ok := c.Get(keyAdminClaim); ok {
		claim, ok := v.(domain.AdminClaim)
		return claim, ok
	}
	return domain.AdminClaim{}, false
}
