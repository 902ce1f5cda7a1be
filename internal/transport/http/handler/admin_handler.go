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

// AdminHandler 统计/内容/设置走 admin 声明；用户管理要求数据库管理员
type AdminHandler struct {
	Admin    *service.AdminService
	Content  *service.ContentService
	Settings *service.SettingsService
	Resolver *service.Resolver
	Log      *zap.Logger
}

func (AdminHandler) Priority() int { return 50 }

type adminListContentQ struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Skip     int    `form:"skip"`
	Limit    int    `form:"limit"`
}

type createContentIn struct {
	Title         string             `json:"title"          binding:"required,max=255"`
	Description   string             `json:"description"`
	FilePath      string             `json:"file_path"      binding:"required,max=500"`
	ThumbnailPath string             `json:"thumbnail_path" binding:"max=500"`
	FileType      domain.ContentType `json:"file_type"      binding:"required"`
	Category      string             `json:"category"       binding:"required,max=100"`
	FileSize      int64              `json:"file_size"`
	Duration      string             `json:"duration"       binding:"max=20"`
	Width         int                `json:"width"`
	Height        int                `json:"height"`
	IsPublished   bool               `json:"is_published"`
}

type updateContentIn struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsPublished *bool   `json:"is_published"`
}

type updateSettingsIn struct {
	SiteTitle             *string `json:"site_title"`
	SiteDescription       *string `json:"site_description"`
	ContactEmail          *string `json:"contact_email"`
	AllowAnonymousLikes   *bool   `json:"allow_anonymous_likes"`
	AllowAnonymousRatings *bool   `json:"allow_anonymous_ratings"`
}

type listUsersQ struct {
	Offset int    `form:"offset,default=0"`
	Limit  int    `form:"limit,default=20"`
	Q      string `form:"q"` // 按 email/name 模糊搜
}

// MountAPI 用户 API 下挂在 /admin
func (h *AdminHandler) MountAPI(g *gin.RouterGroup) { h.mount(g.Group("/admin")) }

// MountAdmin 独立后台直接挂在 /admin/v1
func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) { h.mount(g) }

func (h *AdminHandler) mount(g *gin.RouterGroup) {
	root := ez.New(g, h.Log)
	claim := root.Group("", mdw.RequireAdminClaim(h.Resolver))

	ez.RegisterAction(claim, ez.Action[struct{}, domain.Stats]{
		Method: http.MethodGet,
		Path:   "/stats",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Stats, error) {
			return h.Admin.Stats(c.Request.Context())
		},
	})

	h.mountContent(claim)
	h.mountSettings(claim)

	users := root.Group("/users", mdw.RequireUser(h.Resolver), mdw.RequireAdminUser(h.Resolver))
	h.mountUsers(users)
}

func (h *AdminHandler) mountContent(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[adminListContentQ, []domain.Content]{
		Method: http.MethodGet,
		Path:   "/content",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *adminListContentQ) ([]domain.Content, error) {
			return h.Content.AdminList(c.Request.Context(), domain.ContentFilter{
				Category: in.Category, Search: in.Search, Skip: in.Skip, Limit: in.Limit,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[createContentIn, *domain.Content]{
		Method: http.MethodPost,
		Path:   "/content",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *createContentIn) (*domain.Content, error) {
			return h.Content.Create(c.Request.Context(), service.CreateContentInput{
				Title:         in.Title,
				Description:   in.Description,
				FilePath:      in.FilePath,
				ThumbnailPath: in.ThumbnailPath,
				FileType:      in.FileType,
				Category:      in.Category,
				FileSize:      in.FileSize,
				Duration:      in.Duration,
				Width:         in.Width,
				Height:        in.Height,
				IsPublished:   in.IsPublished,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[updateContentIn, *domain.Content]{
		Method: http.MethodPut,
		Path:   "/content/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *updateContentIn) (*domain.Content, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.Content.Update(c.Request.Context(), id, domain.ContentPatch{
				Title: in.Title, Description: in.Description, Category: in.Category, IsPublished: in.IsPublished,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/content/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			if err := h.Content.Delete(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})
}

func (h *AdminHandler) mountSettings(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[struct{}, domain.Settings]{
		Method: http.MethodGet,
		Path:   "/settings",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Settings, error) {
			return h.Settings.Get(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[updateSettingsIn, domain.Settings]{
		Method: http.MethodPut,
		Path:   "/settings",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *updateSettingsIn) (domain.Settings, error) {
			return h.Settings.Update(c.Request.Context(), domain.SettingsPatch{
				SiteTitle:             in.SiteTitle,
				SiteDescription:       in.SiteDescription,
				ContactEmail:          in.ContactEmail,
				AllowAnonymousLikes:   in.AllowAnonymousLikes,
				AllowAnonymousRatings: in.AllowAnonymousRatings,
			})
		},
	})
}

func (h *AdminHandler) mountUsers(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[listUsersQ, service.UserPage]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listUsersQ) (service.UserPage, error) {
			return h.Admin.ListUsers(c.Request.Context(), in.Q, in.Offset, in.Limit)
		},
	})

	for path, active := range map[string]bool{"/:id/activate": true, "/:id/deactivate": false} {
		active := active
		ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
			Method: http.MethodPost,
			Path:   path,
			Binder: ez.BindNone,
			Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
				id, err := ez.ParamID(c, "id")
				if err != nil {
					return nil, err
				}
				return h.Admin.SetActive(c.Request.Context(), id, active)
			},
		})
	}
}
