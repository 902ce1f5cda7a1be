package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"photostudio/internal/domain"
	"photostudio/internal/service"
	"photostudio/internal/transport/http/ez"
	mdw "photostudio/internal/transport/http/middleware"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Resolver *service.Resolver
	Log      *zap.Logger
}

func (AuthHandler) Priority() int { return 10 }

type registerIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Name     string `json:"name"     binding:"required,max=255"`
	Password string `json:"password" binding:"required"`
}

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type adminLoginIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g.Group("/auth"), h.Log)

	ez.RegisterAction(e, ez.Action[registerIn, *service.Session]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *registerIn) (*service.Session, error) {
			return h.Auth.Register(c.Request.Context(), service.RegisterInput{
				Email: in.Email, Name: in.Name, Password: in.Password,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[loginIn, *service.Session]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*service.Session, error) {
			return h.Auth.Login(c.Request.Context(), in.Email, in.Password)
		},
	})

	h.mountAdminLogin(e, "/admin-login")

	me := e.Group("", mdw.RequireUser(h.Resolver))
	ez.RegisterAction(me, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return mdw.CurrentUser(c), nil
		},
	})
}

// MountAdmin 独立后台只暴露管理员登录
func (h *AuthHandler) MountAdmin(g *gin.RouterGroup) {
	h.mountAdminLogin(ez.New(g.Group("/auth"), h.Log), "/login")
}

func (h *AuthHandler) mountAdminLogin(e ez.EZ, path string) {
	ez.RegisterAction(e, ez.Action[adminLoginIn, *service.Session]{
		Method: http.MethodPost,
		Path:   path,
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *adminLoginIn) (*service.Session, error) {
			return h.Auth.AdminLogin(in.Username, in.Password)
		},
	})
}
