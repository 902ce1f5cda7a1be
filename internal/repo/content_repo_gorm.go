package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"photostudio/internal/core/database"
	"photostudio/internal/domain"
)

type ContentRepo struct{ db *gorm.DB }

func NewContentRepo(db *gorm.DB) *ContentRepo { return &ContentRepo{db: db} }

func (r *ContentRepo) Create(ctx context.Context, c *domain.Content) error {
	m := contentFromDomain(c)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*c = m.toDomain()
	return nil
}

func (r *ContentRepo) FindByID(ctx context.Context, id uint, onlyPublished bool) (*domain.Content, error) {
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if onlyPublished {
		q = q.Where("is_published = ?", true)
	}
	var m ContentModel
	err := q.First(&m).Error
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c := m.toDomain()
	return &c, nil
}

func (r *ContentRepo) List(ctx context.Context, f domain.ContentFilter) ([]domain.Content, error) {
	q := r.db.WithContext(ctx).Model(&ContentModel{})
	if f.OnlyPublished {
		q = q.Where("is_published = ?", true)
	}
	if cat := strings.TrimSpace(f.Category); cat != "" && cat != "all" {
		q = q.Where("category = ?", cat)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	var ms []ContentModel
	if err := q.Order("upload_date DESC, id DESC").Offset(f.Skip).Limit(f.Limit).Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Content, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toDomain())
	}
	return out, nil
}

func (r *ContentRepo) Update(ctx context.Context, id uint, p domain.ContentPatch) (bool, error) {
	updates := map[string]any{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.IsPublished != nil {
		updates["is_published"] = *p.IsPublished
	}
	if len(updates) == 0 {
		var n int64
		err := r.db.WithContext(ctx).Model(&ContentModel{}).Where("id = ?", id).Count(&n).Error
		return n > 0, err
	}
	res := r.db.WithContext(ctx).Model(&ContentModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ContentRepo) Delete(ctx context.Context, id uint) (bool, error) {
	var found bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&LikeModel{}, &RatingModel{}, &CollectionItemModel{}} {
			if err := tx.Where("content_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&ContentModel{})
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		return nil
	})
	return found, err
}

func (r *ContentRepo) CategoryCounts(ctx context.Context) ([]domain.Category, error) {
	type row struct {
		Category string
		Count    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&ContentModel{}).
		Select("category, COUNT(*) AS count").
		Where("is_published = ?", true).
		Group("category").
		Order("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Category{ID: r.Category, Count: r.Count})
	}
	return out, nil
}

// Aggregate 每次读都重新统计，不缓存
func (r *ContentRepo) Aggregate(ctx context.Context, items []domain.Content) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(items))
	for _, c := range items {
		ids = append(ids, c.ID)
	}

	type likeAgg struct {
		ContentID uint
		Likes     int64
	}
	var likes []likeAgg
	if err := r.db.WithContext(ctx).Model(&LikeModel{}).
		Select("content_id, COUNT(*) AS likes").
		Where("content_id IN ?", ids).
		Group("content_id").
		Scan(&likes).Error; err != nil {
		return err
	}

	type ratingAgg struct {
		ContentID uint
		Ratings   int64
		Average   float64
	}
	var ratings []ratingAgg
	if err := r.db.WithContext(ctx).Model(&RatingModel{}).
		Select("content_id, COUNT(*) AS ratings, AVG(score) AS average").
		Where("content_id IN ?", ids).
		Group("content_id").
		Scan(&ratings).Error; err != nil {
		return err
	}

	likeBy := make(map[uint]int64, len(likes))
	for _, l := range likes {
		likeBy[l.ContentID] = l.Likes
	}
	ratingBy := make(map[uint]ratingAgg, len(ratings))
	for _, ra := range ratings {
		ratingBy[ra.ContentID] = ra
	}
	for i := range items {
		items[i].LikesCount = likeBy[items[i].ID]
		ra := ratingBy[items[i].ID]
		items[i].RatingsCount = ra.Ratings
		items[i].AverageRating = ra.Average
	}
	return nil
}

func (r *ContentRepo) CountByType(ctx context.Context) (map[domain.ContentType]int64, error) {
	type row struct {
		FileType string
		Count    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&ContentModel{}).
		Select("file_type, COUNT(*) AS count").
		Group("file_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.ContentType]int64, len(rows))
	for _, r := range rows {
		out[domain.ContentType(r.FileType)] = r.Count
	}
	return out, nil
}
