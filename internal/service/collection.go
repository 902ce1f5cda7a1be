package service

import (
	"context"
	"errors"
	"strings"

	"photostudio/internal/domain"
)

// CollectionService 所有操作都以 owner 为边界；别人的收藏夹按不存在处理
type CollectionService struct {
	Repo    domain.CollectionRepository
	Content domain.ContentRepository
}

func (s *CollectionService) List(ctx context.Context, owner uint) ([]domain.Collection, error) {
	return s.Repo.ListByOwner(ctx, owner)
}

func (s *CollectionService) Create(ctx context.Context, owner uint, name, description string) (*domain.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("name is required")
	}
	c := &domain.Collection{Name: name, Description: description, UserID: owner}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CollectionService) Get(ctx context.Context, owner, id uint) (*domain.Collection, error) {
	c, err := s.Repo.FindOwned(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCollectionNotFound
	}
	return c, nil
}

func (s *CollectionService) AddItem(ctx context.Context, owner, id, contentID uint) (*domain.Collection, error) {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return nil, err
	}
	item, err := s.Content.FindByID(ctx, contentID, true)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrContentNotFound
	}
	if err := s.Repo.AddItem(ctx, id, contentID); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrAlreadyInCollection
		}
		return nil, err
	}
	return s.Get(ctx, owner, id)
}

func (s *CollectionService) RemoveItem(ctx context.Context, owner, id, contentID uint) (*domain.Collection, error) {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return nil, err
	}
	ok, err := s.Repo.RemoveItem(ctx, id, contentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrItemNotInCollection
	}
	return s.Get(ctx, owner, id)
}

func (s *CollectionService) Delete(ctx context.Context, owner, id uint) error {
	ok, err := s.Repo.Delete(ctx, id, owner)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCollectionNotFound
	}
	return nil
}
