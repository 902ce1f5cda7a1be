package domain

import (
	"context"
	"time"
)

type ContentType string

const (
	ContentPhoto ContentType = "photo"
	ContentVideo ContentType = "video"
)

func (t ContentType) Valid() bool { return t == ContentPhoto || t == ContentVideo }

type Content struct {
	ID            uint        `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	FilePath      string      `json:"file_path"`
	ThumbnailPath string      `json:"thumbnail_path,omitempty"`
	FileType      ContentType `json:"file_type"`
	Category      string      `json:"category"`
	FileSize      int64       `json:"file_size,omitempty"`
	Duration      string      `json:"duration,omitempty"` // 视频时长，如 "02:30"
	Width         int         `json:"width,omitempty"`
	Height        int         `json:"height,omitempty"`
	UploadDate    time.Time   `json:"upload_date"`
	IsPublished   bool        `json:"is_published"`

	// 读时聚合，不落库
	LikesCount    int64   `json:"likes_count"`
	AverageRating float64 `json:"average_rating"`
	RatingsCount  int64   `json:"ratings_count"`
}

type ContentFilter struct {
	Category      string
	Search        string
	Skip          int
	Limit         int
	OnlyPublished bool
}

type ContentPatch struct {
	Title       *string
	Description *string
	Category    *string
	IsPublished *bool
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type ContentRepository interface {
	Create(ctx context.Context, c *Content) error
	// FindByID 找不到返回 nil, nil；onlyPublished 时未发布视为不存在
	FindByID(ctx context.Context, id uint, onlyPublished bool) (*Content, error)
	List(ctx context.Context, f ContentFilter) ([]Content, error)
	Update(ctx context.Context, id uint, p ContentPatch) (bool, error)
	// Delete 同事务删除关联的点赞/评分/收藏
	Delete(ctx context.Context, id uint) (bool, error)
	CategoryCounts(ctx context.Context) ([]Category, error)
	// CountByType 全部内容（含未发布）按类型计数
	CountByType(ctx context.Context) (map[ContentType]int64, error)
	// Aggregate 按需计算点赞数/平均分/评分数
	Aggregate(ctx context.Context, items []Content) error
}
