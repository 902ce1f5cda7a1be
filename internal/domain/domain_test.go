package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActor_Variants(t *testing.T) {
	u := UserActor(7)
	id, ok := u.UserID()
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)
	_, ok = u.Address()
	assert.False(t, ok)
	assert.Equal(t, ActorUser, u.Kind())
	assert.Equal(t, "user:7", u.String())
	assert.NoError(t, u.Validate())

	a := AnonymousActor(" 10.0.0.1 ")
	addr, ok := a.Address()
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.1", addr)
	_, ok = a.UserID()
	assert.False(t, ok)
	assert.True(t, a.IsAnonymous())
	assert.Equal(t, "anonymous", a.Kind().String())
}

func TestActor_Validate(t *testing.T) {
	assert.ErrorIs(t, AnonymousActor("").Validate(), ErrUnknownAddress)
	assert.ErrorIs(t, UserActor(0).Validate(), ErrValidation)
	assert.ErrorIs(t, Actor{}.Validate(), ErrValidation)
}

func TestActor_SameAddressIsSameActor(t *testing.T) {
	// 同一 NAT 出口的两个匿名访客无法区分
	assert.Equal(t, AnonymousActor("203.0.113.9"), AnonymousActor("203.0.113.9"))
	assert.NotEqual(t, AnonymousActor("203.0.113.9"), AnonymousActor("203.0.113.10"))
}

func TestErrors_UnwrapToKind(t *testing.T) {
	cases := map[error]error{
		ErrInvalidToken:        ErrUnauthenticated,
		ErrInvalidCredentials:  ErrUnauthenticated,
		ErrInactiveAccount:     ErrForbidden,
		ErrAdminRequired:       ErrForbidden,
		ErrContentNotFound:     ErrNotFound,
		ErrCollectionNotFound:  ErrNotFound,
		ErrEmailTaken:          ErrConflict,
		ErrAlreadyLiked:        ErrConflict,
		ErrAlreadyRated:        ErrConflict,
		ErrAlreadyInCollection: ErrConflict,
		ErrInvalidScore:        ErrValidation,
	}
	for err, kind := range cases {
		assert.True(t, errors.Is(err, kind), "%v should be %v", err, kind)
	}
	assert.False(t, errors.Is(ErrInactiveAccount, ErrUnauthenticated))
	assert.Equal(t, "already liked", ErrAlreadyLiked.Error())
}

func TestValidScore(t *testing.T) {
	for _, s := range []int{1, 2, 3, 4, 5} {
		assert.True(t, ValidScore(s))
	}
	for _, s := range []int{-1, 0, 6, 100} {
		assert.False(t, ValidScore(s))
	}
}

func TestSettings_Apply(t *testing.T) {
	s := DefaultSettings()
	off := false
	title := "Studio"
	s.Apply(SettingsPatch{AllowAnonymousLikes: &off, SiteTitle: &title})

	assert.False(t, s.AllowAnonymousLikes)
	assert.True(t, s.AllowAnonymousRatings)
	assert.Equal(t, "Studio", s.SiteTitle)
}
