package repo

import (
	"context"

	"gorm.io/gorm"

	"photostudio/internal/core/database"
	"photostudio/internal/domain"
)

type InteractionRepo struct{ db *gorm.DB }

func NewInteractionRepo(db *gorm.DB) *InteractionRepo { return &InteractionRepo{db: db} }

func (r *InteractionRepo) CreateLike(ctx context.Context, l *domain.Like) error {
	uid, ip := actorColumns(l.Actor)
	m := LikeModel{ContentID: l.ContentID, UserID: uid, IPAddress: ip}
	if err := r.insertIfAbsent(ctx, &LikeModel{}, l.ContentID, l.Actor, &m); err != nil {
		return err
	}
	l.ID, l.CreatedAt = m.ID, m.CreatedAt
	return nil
}

func (r *InteractionRepo) CreateRating(ctx context.Context, rt *domain.Rating) error {
	uid, ip := actorColumns(rt.Actor)
	m := RatingModel{ContentID: rt.ContentID, UserID: uid, IPAddress: ip, Score: rt.Score}
	if err := r.insertIfAbsent(ctx, &RatingModel{}, rt.ContentID, rt.Actor, &m); err != nil {
		return err
	}
	rt.ID, rt.CreatedAt = m.ID, m.CreatedAt
	return nil
}

// insertIfAbsent 事务内先按 actor 判重再插入；并发下由唯一索引兜底
func (r *InteractionRepo) insertIfAbsent(ctx context.Context, model any, contentID uint, a domain.Actor, row any) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		q := scopeActor(tx.Model(model).Where("content_id = ?", contentID), a)
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrDuplicate
		}
		return tx.Create(row).Error
	})
	if err != nil && database.IsDuplicateKey(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *InteractionRepo) Totals(ctx context.Context) (domain.InteractionTotals, error) {
	var t domain.InteractionTotals
	db := r.db.WithContext(ctx)
	if err := db.Model(&LikeModel{}).Count(&t.Likes).Error; err != nil {
		return t, err
	}
	if err := db.Model(&RatingModel{}).Count(&t.Ratings).Error; err != nil {
		return t, err
	}
	if err := db.Model(&RatingModel{}).Select("COALESCE(AVG(score), 0)").Scan(&t.AverageRating).Error; err != nil {
		return t, err
	}
	return t, nil
}
