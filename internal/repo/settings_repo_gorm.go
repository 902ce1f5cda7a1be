package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"photostudio/internal/core/database"
	"photostudio/internal/domain"
)

const settingsRowID = 1

type SettingsRepo struct{ db *gorm.DB }

func NewSettingsRepo(db *gorm.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	var m SettingsModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", settingsRowID).Error
	if database.IsNotFound(err) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	return domain.Settings{
		SiteTitle:             m.SiteTitle,
		SiteDescription:       m.SiteDescription,
		ContactEmail:          m.ContactEmail,
		AllowAnonymousLikes:   m.AllowAnonymousLikes,
		AllowAnonymousRatings: m.AllowAnonymousRatings,
		UpdatedAt:             m.UpdatedAt,
	}, nil
}

// Save 单行 upsert
func (r *SettingsRepo) Save(ctx context.Context, s domain.Settings) error {
	m := SettingsModel{
		ID:                    settingsRowID,
		SiteTitle:             s.SiteTitle,
		SiteDescription:       s.SiteDescription,
		ContactEmail:          s.ContactEmail,
		AllowAnonymousLikes:   s.AllowAnonymousLikes,
		AllowAnonymousRatings: s.AllowAnonymousRatings,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"site_title", "site_description", "contact_email",
			"allow_anonymous_likes", "allow_anonymous_ratings", "updated_at",
		}),
	}).Create(&m).Error
}
