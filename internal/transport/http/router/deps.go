package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"photostudio/internal/core/auth"
	"photostudio/internal/core/cache"
	"photostudio/internal/core/config"
	"photostudio/internal/repo"
	"photostudio/internal/service"
	"photostudio/internal/transport/http/handler"
	mdw "photostudio/internal/transport/http/middleware"
)

// Deps 两个 engine 共用的依赖
type Deps struct {
	Log   *zap.Logger
	Cfg   *config.Config
	JWT   *auth.JWTer
	Cache *cache.Cache // 可为 nil

	Resolver *service.Resolver
	Auth     *service.AuthService
	Content  *service.ContentService
	Dedup    *service.Deduplicator
	Colls    *service.CollectionService
	Admin    *service.AdminService
	Settings *service.SettingsService
}

// NewJWTer 由配置构造签发器
func NewJWTer(cfg *config.Config) *auth.JWTer {
	return &auth.JWTer{
		Secret:    []byte(cfg.JWT.Secret),
		Algorithm: cfg.JWT.Algorithm,
		Issuer:    cfg.JWT.Issuer,
		TTL:       cfg.AccessTTL(),
		Leeway:    cfg.JWT.Leeway,
	}
}

// Wire 组装 repo → service
func Wire(l *zap.Logger, cfg *config.Config, db *gorm.DB, c *cache.Cache) *Deps {
	j := NewJWTer(cfg)
	users := repo.NewUserRepo(db)
	content := repo.NewContentRepo(db)
	inter := repo.NewInteractionRepo(db)
	cols := repo.NewCollectionRepo(db)
	settings := &service.SettingsService{
		Repo:  repo.NewSettingsRepo(db),
		Cache: c,
		TTL:   cfg.Redis.SettingTTL,
		Log:   l,
	}
	return &Deps{
		Log:      l,
		Cfg:      cfg,
		JWT:      j,
		Cache:    c,
		Resolver: &service.Resolver{JWT: j, Users: users},
		Auth: &service.AuthService{
			Users: users,
			JWT:   j,
			Admin: service.AdminCredentials{Username: cfg.Admin.Username, Password: cfg.Admin.Password},
			Log:   l,
		},
		Content:  &service.ContentService{Repo: content},
		Dedup:    &service.Deduplicator{Content: content, Interactions: inter, Settings: settings},
		Colls:    &service.CollectionService{Repo: cols, Content: content},
		Admin:    &service.AdminService{Users: users, Content: content, Interactions: inter, Collections: cols, Log: l},
		Settings: settings,
	}
}

// Registry 注册全部模块
func (d *Deps) Registry() *Registry {
	var throttle gin.HandlerFunc
	if lim := d.Cfg.Limits; lim.PerIPRPS > 0 {
		throttle = mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), lim.PerIPBurst, 10*time.Minute)
	}
	reg := &Registry{}
	reg.Register(
		&handler.AuthHandler{Auth: d.Auth, Resolver: d.Resolver, Log: d.Log},
		&handler.ContentHandler{Content: d.Content, Dedup: d.Dedup, Resolver: d.Resolver, Throttle: throttle, Log: d.Log},
		&handler.CollectionHandler{Collections: d.Colls, Resolver: d.Resolver, Log: d.Log},
		&handler.AdminHandler{Admin: d.Admin, Content: d.Content, Settings: d.Settings, Resolver: d.Resolver, Log: d.Log},
	)
	return reg
}
