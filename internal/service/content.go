package service

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"photostudio/internal/domain"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

// ContentService 公开读取只看已发布内容；Admin* 方法不做此限制
type ContentService struct {
	Repo domain.ContentRepository
}

// NormalizePage skip<0 归零，limit 缺省/越界取默认值
func NormalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return skip, limit
}

func (s *ContentService) List(ctx context.Context, f domain.ContentFilter) ([]domain.Content, error) {
	f.OnlyPublished = true
	return s.list(ctx, f)
}

func (s *ContentService) AdminList(ctx context.Context, f domain.ContentFilter) ([]domain.Content, error) {
	f.OnlyPublished = false
	return s.list(ctx, f)
}

func (s *ContentService) list(ctx context.Context, f domain.ContentFilter) ([]domain.Content, error) {
	f.Skip, f.Limit = NormalizePage(f.Skip, f.Limit)
	items, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Aggregate(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ContentService) Get(ctx context.Context, id uint) (*domain.Content, error) {
	return s.get(ctx, id, true)
}

func (s *ContentService) AdminGet(ctx context.Context, id uint) (*domain.Content, error) {
	return s.get(ctx, id, false)
}

func (s *ContentService) get(ctx context.Context, id uint, onlyPublished bool) (*domain.Content, error) {
	c, err := s.Repo.FindByID(ctx, id, onlyPublished)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrContentNotFound
	}
	items := []domain.Content{*c}
	if err := s.Repo.Aggregate(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Categories 第一项固定为 all，计数为已发布内容总数
func (s *ContentService) Categories(ctx context.Context) ([]domain.Category, error) {
	counts, err := s.Repo.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}
	title := cases.Title(language.English)
	out := make([]domain.Category, 0, len(counts)+1)
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	out = append(out, domain.Category{ID: "all", Name: "All", Count: total})
	for _, c := range counts {
		out = append(out, domain.Category{ID: c.ID, Name: title.String(c.ID), Count: c.Count})
	}
	return out, nil
}

type CreateContentInput struct {
	Title         string
	Description   string
	FilePath      string
	ThumbnailPath string
	FileType      domain.ContentType
	Category      string
	FileSize      int64
	Duration      string
	Width         int
	Height        int
	IsPublished   bool
}

// Create 只登记元数据，文件本身不经过本服务
func (s *ContentService) Create(ctx context.Context, in CreateContentInput) (*domain.Content, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	switch {
	case in.Title == "":
		return nil, domain.Validation("title is required")
	case strings.TrimSpace(in.FilePath) == "":
		return nil, domain.Validation("file_path is required")
	case !in.FileType.Valid():
		return nil, domain.Validation("file_type must be photo or video")
	case in.Category == "" || in.Category == "all":
		return nil, domain.Validation("invalid category")
	}
	c := &domain.Content{
		Title:         in.Title,
		Description:   in.Description,
		FilePath:      in.FilePath,
		ThumbnailPath: in.ThumbnailPath,
		FileType:      in.FileType,
		Category:      in.Category,
		FileSize:      in.FileSize,
		Duration:      in.Duration,
		Width:         in.Width,
		Height:        in.Height,
		IsPublished:   in.IsPublished,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContentService) Update(ctx context.Context, id uint, p domain.ContentPatch) (*domain.Content, error) {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, domain.Validation("title must not be empty")
	}
	if p.Category != nil {
		cat := strings.ToLower(strings.TrimSpace(*p.Category))
		if cat == "" || cat == "all" {
			return nil, domain.Validation("invalid category")
		}
		p.Category = &cat
	}
	ok, err := s.Repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	return s.AdminGet(ctx, id)
}

func (s *ContentService) Delete(ctx context.Context, id uint) error {
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrContentNotFound
	}
	return nil
}
