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

// ContentHandler 公开浏览 + 点赞/评分
type ContentHandler struct {
	Content  *service.ContentService
	Dedup    *service.Deduplicator
	Resolver *service.Resolver
	// Throttle 点赞/评分路由上的按地址限速，可为空
	Throttle gin.HandlerFunc
	Log      *zap.Logger
}

func (ContentHandler) Priority() int { return 20 }

type listContentQ struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Skip     int    `form:"skip"`
	Limit    int    `form:"limit"`
}

type rateIn struct {
	Score int `json:"score"`
}

func (h *ContentHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.Log)

	ez.RegisterAction(e, ez.Action[listContentQ, []domain.Content]{
		Method: http.MethodGet,
		Path:   "/content",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listContentQ) ([]domain.Content, error) {
			return h.Content.List(c.Request.Context(), domain.ContentFilter{
				Category: in.Category, Search: in.Search, Skip: in.Skip, Limit: in.Limit,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Content]{
		Method: http.MethodGet,
		Path:   "/content/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Content, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.Content.Get(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Category]{
		Method: http.MethodGet,
		Path:   "/categories",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Category, error) {
			return h.Content.Categories(c.Request.Context())
		},
	})

	mw := []gin.HandlerFunc{}
	if h.Throttle != nil {
		mw = append(mw, h.Throttle)
	}
	mw = append(mw, mdw.OptionalUser(h.Resolver))
	act := e.Group("/content/:id", mw...)

	ez.RegisterAction(act, ez.Action[struct{}, *domain.Like]{
		Method: http.MethodPost,
		Path:   "/like",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Like, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.Dedup.RecordLike(c.Request.Context(), id, mdw.ActorFrom(c))
		},
	})

	ez.RegisterAction(act, ez.Action[rateIn, *domain.Rating]{
		Method: http.MethodPost,
		Path:   "/rate",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *rateIn) (*domain.Rating, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.Dedup.RecordRating(c.Request.Context(), id, mdw.ActorFrom(c), in.Score)
		},
	})
}
