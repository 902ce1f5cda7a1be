package repo

import (
	"time"

	"gorm.io/gorm"

	"photostudio/internal/domain"
)

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Name         string `gorm:"size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:16;not null"`
	IsActive     bool   `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

type ContentModel struct {
	ID            uint   `gorm:"primaryKey"`
	Title         string `gorm:"size:255;not null"`
	Description   string `gorm:"type:text"`
	FilePath      string `gorm:"size:500;not null"`
	ThumbnailPath string `gorm:"size:500"`
	FileType      string `gorm:"size:50;not null;index"`
	Category      string `gorm:"size:100;not null;index"`
	FileSize      int64
	Duration      string `gorm:"size:20"`
	Width         int
	Height        int
	UploadDate    time.Time `gorm:"autoCreateTime"`
	IsPublished   bool      `gorm:"not null;index"`
}

func (ContentModel) TableName() string { return "content" }

// LikeModel 用户点赞 user_id 非空，匿名点赞 ip_address 非空；
// 两个唯一索引各自只约束对应的一类（NULL 不参与唯一比较）
type LikeModel struct {
	ID        uint      `gorm:"primaryKey"`
	ContentID uint      `gorm:"not null;uniqueIndex:idx_likes_content_user;uniqueIndex:idx_likes_content_ip"`
	UserID    *uint     `gorm:"uniqueIndex:idx_likes_content_user"`
	IPAddress *string   `gorm:"size:45;uniqueIndex:idx_likes_content_ip"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LikeModel) TableName() string { return "likes" }

type RatingModel struct {
	ID        uint      `gorm:"primaryKey"`
	ContentID uint      `gorm:"not null;uniqueIndex:idx_ratings_content_user;uniqueIndex:idx_ratings_content_ip"`
	UserID    *uint     `gorm:"uniqueIndex:idx_ratings_content_user"`
	IPAddress *string   `gorm:"size:45;uniqueIndex:idx_ratings_content_ip"`
	Score     int       `gorm:"not null;check:score BETWEEN 1 AND 5"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (RatingModel) TableName() string { return "ratings" }

type CollectionModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	UserID      uint   `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CollectionModel) TableName() string { return "collections" }

// CollectionItemModel 复合主键保证同一内容只收藏一次
type CollectionItemModel struct {
	CollectionID uint      `gorm:"primaryKey;autoIncrement:false"`
	ContentID    uint      `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (CollectionItemModel) TableName() string { return "collection_items" }

// SettingsModel 单行表，id 固定为 1
type SettingsModel struct {
	ID                    uint   `gorm:"primaryKey;autoIncrement:false"`
	SiteTitle             string `gorm:"size:255"`
	SiteDescription       string `gorm:"type:text"`
	ContactEmail          string `gorm:"size:255"`
	AllowAnonymousLikes   bool   `gorm:"not null"`
	AllowAnonymousRatings bool   `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (SettingsModel) TableName() string { return "admin_settings" }

// AutoMigrate 建表 + 索引
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&ContentModel{},
		&LikeModel{},
		&RatingModel{},
		&CollectionModel{},
		&CollectionItemModel{},
		&SettingsModel{},
	)
}

func (m *UserModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (m *ContentModel) toDomain() domain.Content {
	return domain.Content{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		FilePath:      m.FilePath,
		ThumbnailPath: m.ThumbnailPath,
		FileType:      domain.ContentType(m.FileType),
		Category:      m.Category,
		FileSize:      m.FileSize,
		Duration:      m.Duration,
		Width:         m.Width,
		Height:        m.Height,
		UploadDate:    m.UploadDate,
		IsPublished:   m.IsPublished,
	}
}

func contentFromDomain(c *domain.Content) ContentModel {
	return ContentModel{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		FilePath:      c.FilePath,
		ThumbnailPath: c.ThumbnailPath,
		FileType:      string(c.FileType),
		Category:      c.Category,
		FileSize:      c.FileSize,
		Duration:      c.Duration,
		Width:         c.Width,
		Height:        c.Height,
		IsPublished:   c.IsPublished,
	}
}

// actorColumns Actor → 可空列，恰好一个非空
func actorColumns(a domain.Actor) (userID *uint, ip *string) {
	if id, ok := a.UserID(); ok {
		return &id, nil
	}
	if addr, ok := a.Address(); ok {
		return nil, &addr
	}
	return nil, nil
}

// scopeActor 判重条件与写入时的 actor 分支一致
func scopeActor(q *gorm.DB, a domain.Actor) *gorm.DB {
	if id, ok := a.UserID(); ok {
		return q.Where("user_id = ?", id)
	}
	addr, _ := a.Address()
	return q.Where("user_id IS NULL AND ip_address = ?", addr)
}
