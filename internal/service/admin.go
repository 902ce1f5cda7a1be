package service

import (
	"context"

	"go.uber.org/zap"

	"photostudio/internal/domain"
)

type AdminService struct {
	Users        domain.UserRepository
	Content      domain.ContentRepository
	Interactions domain.InteractionRepository
	Collections  domain.CollectionRepository
	Log          *zap.Logger
}

func (s *AdminService) Stats(ctx context.Context) (domain.Stats, error) {
	var st domain.Stats
	byType, err := s.Content.CountByType(ctx)
	if err != nil {
		return st, err
	}
	for _, n := range byType {
		st.TotalContent += n
	}
	st.TotalPhotos = byType[domain.ContentPhoto]
	st.TotalVideos = byType[domain.ContentVideo]

	tot, err := s.Interactions.Totals(ctx)
	if err != nil {
		return st, err
	}
	st.TotalLikes, st.TotalRatings, st.AverageRating = tot.Likes, tot.Ratings, tot.AverageRating

	if st.TotalUsers, err = s.Users.Count(ctx); err != nil {
		return st, err
	}
	if st.TotalCollections, err = s.Collections.Count(ctx); err != nil {
		return st, err
	}
	return st, nil
}

type UserPage struct {
	Total int64         `json:"total"`
	Items []domain.User `json:"items"`
}

func (s *AdminService) ListUsers(ctx context.Context, q string, offset, limit int) (UserPage, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	items, total, err := s.Users.List(ctx, q, offset, limit)
	if err != nil {
		return UserPage{}, err
	}
	return UserPage{Total: total, Items: items}, nil
}

// SetActive 停用后该用户的 token 在 ResolveActiveUser 处被拒
func (s *AdminService) SetActive(ctx context.Context, id uint, active bool) (*domain.User, error) {
	ok, err := s.Users.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if s.Log != nil {
		s.Log.Info("user activation changed", zap.Uint("user_id", id), zap.Bool("active", active))
	}
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
