package service

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"photostudio/internal/domain"
)

var interactionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gallery_interactions_total",
		Help: "Likes and ratings by actor kind and outcome",
	},
	[]string{"kind", "actor", "result"},
)

func init() { prometheus.MustRegister(interactionsTotal) }

// Deduplicator 每个 actor 对每个内容最多一次点赞、一次评分
type Deduplicator struct {
	Content      domain.ContentRepository
	Interactions domain.InteractionRepository
	Settings     *SettingsService
}

func (d *Deduplicator) RecordLike(ctx context.Context, contentID uint, a domain.Actor) (*domain.Like, error) {
	l := &domain.Like{ContentID: contentID, Actor: a}
	err := d.record(ctx, "like", contentID, a, func(s domain.Settings) bool { return s.AllowAnonymousLikes },
		func() error { return d.Interactions.CreateLike(ctx, l) }, domain.ErrAlreadyLiked)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (d *Deduplicator) RecordRating(ctx context.Context, contentID uint, a domain.Actor, score int) (*domain.Rating, error) {
	// 分数先校验，不做任何查询
	if !domain.ValidScore(score) {
		observe("rating", a, domain.ErrInvalidScore)
		return nil, domain.ErrInvalidScore
	}
	r := &domain.Rating{ContentID: contentID, Actor: a, Score: score}
	err := d.record(ctx, "rating", contentID, a, func(s domain.Settings) bool { return s.AllowAnonymousRatings },
		func() error { return d.Interactions.CreateRating(ctx, r) }, domain.ErrAlreadyRated)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (d *Deduplicator) record(
	ctx context.Context,
	kind string,
	contentID uint,
	a domain.Actor,
	anonAllowed func(domain.Settings) bool,
	insert func() error,
	dupErr error,
) (err error) {
	defer func() { observe(kind, a, err) }()

	if err = a.Validate(); err != nil {
		return err
	}
	c, err := d.Content.FindByID(ctx, contentID, true)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrContentNotFound
	}
	if a.IsAnonymous() && d.Settings != nil {
		s, e := d.Settings.Get(ctx)
		if e != nil {
			return e
		}
		if !anonAllowed(s) {
			return domain.ErrAnonymousDisabled
		}
	}
	if err = insert(); errors.Is(err, domain.ErrDuplicate) {
		return dupErr
	}
	return err
}

func observe(kind string, a domain.Actor, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrConflict):
		result = "duplicate"
	case errors.Is(err, domain.ErrValidation):
		result = "invalid"
	case errors.Is(err, domain.ErrNotFound):
		result = "not_found"
	case errors.Is(err, domain.ErrUnauthenticated):
		result = "rejected"
	default:
		result = "error"
	}
	interactionsTotal.WithLabelValues(kind, a.Kind().String(), result).Inc()
}
