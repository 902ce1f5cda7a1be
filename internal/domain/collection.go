package domain

import (
	"context"
	"time"
)

type Collection struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UserID      uint      `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Items       []Content `json:"items"`
}

// CollectionRepository 所有读写都带 ownerID；非本人的收藏夹视为不存在
type CollectionRepository interface {
	Create(ctx context.Context, c *Collection) error
	ListByOwner(ctx context.Context, ownerID uint) ([]Collection, error)
	FindOwned(ctx context.Context, id, ownerID uint) (*Collection, error)
	// AddItem 重复返回 ErrDuplicate
	AddItem(ctx context.Context, collectionID, contentID uint) error
	RemoveItem(ctx context.Context, collectionID, contentID uint) (bool, error)
	Delete(ctx context.Context, id, ownerID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}
