package domain

import (
	"context"
	"time"
)

type Settings struct {
	SiteTitle             string    `json:"site_title"`
	SiteDescription       string    `json:"site_description"`
	ContactEmail          string    `json:"contact_email"`
	AllowAnonymousLikes   bool      `json:"allow_anonymous_likes"`
	AllowAnonymousRatings bool      `json:"allow_anonymous_ratings"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func DefaultSettings() Settings {
	return Settings{
		SiteTitle:             "PhotoStudio",
		AllowAnonymousLikes:   true,
		AllowAnonymousRatings: true,
	}
}

type SettingsPatch struct {
	SiteTitle             *string
	SiteDescription       *string
	ContactEmail          *string
	AllowAnonymousLikes   *bool
	AllowAnonymousRatings *bool
}

func (s *Settings) Apply(p SettingsPatch) {
	if p.SiteTitle != nil {
		s.SiteTitle = *p.SiteTitle
	}
	if p.SiteDescription != nil {
		s.SiteDescription = *p.SiteDescription
	}
	if p.ContactEmail != nil {
		s.ContactEmail = *p.ContactEmail
	}
	if p.AllowAnonymousLikes != nil {
		s.AllowAnonymousLikes = *p.AllowAnonymousLikes
	}
	if p.AllowAnonymousRatings != nil {
		s.AllowAnonymousRatings = *p.AllowAnonymousRatings
	}
}

type SettingsRepository interface {
	// Get 未初始化时返回 DefaultSettings
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

type Stats struct {
	TotalContent     int64   `json:"total_content"`
	TotalPhotos      int64   `json:"total_photos"`
	TotalVideos      int64   `json:"total_videos"`
	TotalLikes       int64   `json:"total_likes"`
	TotalRatings     int64   `json:"total_ratings"`
	AverageRating    float64 `json:"average_rating"`
	TotalUsers       int64   `json:"total_users"`
	TotalCollections int64   `json:"total_collections"`
}
