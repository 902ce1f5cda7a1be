package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"photostudio/internal/core/database"
	"photostudio/internal/domain"
)

type CollectionRepo struct {
	db      *gorm.DB
	content *ContentRepo
}

func NewCollectionRepo(db *gorm.DB) *CollectionRepo {
	return &CollectionRepo{db: db, content: NewContentRepo(db)}
}

func (r *CollectionRepo) Create(ctx context.Context, c *domain.Collection) error {
	m := CollectionModel{Name: c.Name, Description: c.Description, UserID: c.UserID}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*c = m.toDomain()
	c.Items = []domain.Content{}
	return nil
}

func (r *CollectionRepo) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Collection, error) {
	var ms []CollectionModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at DESC, id DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Collection, 0, len(ms))
	for i := range ms {
		c := ms[i].toDomain()
		items, err := r.items(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Items = items
		out = append(out, c)
	}
	return out, nil
}

func (r *CollectionRepo) FindOwned(ctx context.Context, id, ownerID uint) (*domain.Collection, error) {
	var m CollectionModel
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&m).Error
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c := m.toDomain()
	if c.Items, err = r.items(ctx, c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

// items 按加入顺序返回内容，并带上聚合字段
func (r *CollectionRepo) items(ctx context.Context, collectionID uint) ([]domain.Content, error) {
	var ms []ContentModel
	err := r.db.WithContext(ctx).
		Table("content").
		Select("content.*").
		Joins("JOIN collection_items ci ON ci.content_id = content.id").
		Where("ci.collection_id = ?", collectionID).
		Order("ci.created_at, content.id").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Content, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toDomain())
	}
	if err := r.content.Aggregate(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CollectionRepo) AddItem(ctx context.Context, collectionID, contentID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&CollectionItemModel{}).
			Where("collection_id = ? AND content_id = ?", collectionID, contentID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrDuplicate
		}
		if err := tx.Create(&CollectionItemModel{CollectionID: collectionID, ContentID: contentID}).Error; err != nil {
			return err
		}
		return tx.Model(&CollectionModel{}).Where("id = ?", collectionID).Update("updated_at", time.Now()).Error
	})
	if err != nil && database.IsDuplicateKey(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *CollectionRepo) RemoveItem(ctx context.Context, collectionID, contentID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("collection_id = ? AND content_id = ?", collectionID, contentID).
		Delete(&CollectionItemModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *CollectionRepo) Delete(ctx context.Context, id, ownerID uint) (bool, error) {
	var found bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&CollectionModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		found = true
		return tx.Where("collection_id = ?", id).Delete(&CollectionItemModel{}).Error
	})
	return found, err
}

func (r *CollectionRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&CollectionModel{}).Count(&n).Error
	return n, err
}

func (m *CollectionModel) toDomain() domain.Collection {
	return domain.Collection{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
