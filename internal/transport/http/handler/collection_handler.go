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

type CollectionHandler struct {
	Collections *service.CollectionService
	Resolver    *service.Resolver
	Log         *zap.Logger
}

type createCollectionIn struct {
	Name        string `json:"name"        binding:"required,max=255"`
	Description string `json:"description"`
}

func (h *CollectionHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.Log).Group("/collections", mdw.RequireUser(h.Resolver))

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Collection]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Collection, error) {
			return h.Collections.List(c.Request.Context(), mdw.CurrentUser(c).ID)
		},
	})

	ez.RegisterAction(e, ez.Action[createCollectionIn, *domain.Collection]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *createCollectionIn) (*domain.Collection, error) {
			return h.Collections.Create(c.Request.Context(), mdw.CurrentUser(c).ID, in.Name, in.Description)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Collection]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Collection, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.Collections.Get(c.Request.Context(), mdw.CurrentUser(c).ID, id)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			if err := h.Collections.Delete(c.Request.Context(), mdw.CurrentUser(c).ID, id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Collection]{
		Method: http.MethodPost,
		Path:   "/:id/items/:contentId",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Collection, error) {
			id, contentID, err := collectionItemParams(c)
			if err != nil {
				return nil, err
			}
			return h.Collections.AddItem(c.Request.Context(), mdw.CurrentUser(c).ID, id, contentID)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Collection]{
		Method: http.MethodDelete,
		Path:   "/:id/items/:contentId",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Collection, error) {
			id, contentID, err := collectionItemParams(c)
			if err != nil {
				return nil, err
			}
			return h.Collections.RemoveItem(c.Request.Context(), mdw.CurrentUser(c).ID, id, contentID)
		},
	})
}

func collectionItemParams(c *gin.Context) (uint, uint, error) {
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	contentID, err := ez.ParamID(c, "contentId")
	if err != nil {
		return 0, 0, err
	}
	return id, contentID, nil
}
