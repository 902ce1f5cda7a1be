package domain

import (
	"context"
	"time"
)

const (
	MinScore = 1
	MaxScore = 5
)

func ValidScore(score int) bool { return score >= MinScore && score <= MaxScore }

type Like struct {
	ID        uint      `json:"id"`
	ContentID uint      `json:"content_id"`
	Actor     Actor     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Rating struct {
	ID        uint      `json:"id"`
	ContentID uint      `json:"content_id"`
	Actor     Actor     `json:"-"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type InteractionTotals struct {
	Likes         int64
	Ratings       int64
	AverageRating float64
}

// InteractionRepository 插入前按 actor 判重，判重与插入在同一事务；
// 已存在或唯一索引冲突返回 ErrDuplicate
type InteractionRepository interface {
	CreateLike(ctx context.Context, l *Like) error
	CreateRating(ctx context.Context, r *Rating) error
	Totals(ctx context.Context) (InteractionTotals, error)
}
