package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photostudio/internal/core/auth"
	"photostudio/internal/core/cache"
	"photostudio/internal/core/database"
	"photostudio/internal/domain"
	"photostudio/internal/repo"
)

type fixture struct {
	jwt         *auth.JWTer
	users       *repo.UserRepo
	content     *repo.ContentRepo
	auth        *AuthService
	resolver    *Resolver
	dedup       *Deduplicator
	settings    *SettingsService
	contentSvc  *ContentService
	collections *CollectionService
	admin       *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "svc.db"),
		LogLevel:     "silent",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "photostudio", TTL: 30 * time.Minute}
	users := repo.NewUserRepo(db)
	content := repo.NewContentRepo(db)
	inter := repo.NewInteractionRepo(db)
	cols := repo.NewCollectionRepo(db)
	settings := &SettingsService{Repo: repo.NewSettingsRepo(db)}

	return &fixture{
		jwt:         j,
		users:       users,
		content:     content,
		auth:        &AuthService{Users: users, JWT: j, Admin: AdminCredentials{Username: "admin", Password: "admin123"}},
		resolver:    &Resolver{JWT: j, Users: users},
		dedup:       &Deduplicator{Content: content, Interactions: inter, Settings: settings},
		settings:    settings,
		contentSvc:  &ContentService{Repo: content},
		collections: &CollectionService{Repo: cols, Content: content},
		admin:       &AdminService{Users: users, Content: content, Interactions: inter, Collections: cols},
	}
}

func (f *fixture) register(t *testing.T, email string) *Session {
	t.Helper()
	s, err := f.auth.Register(context.Background(), RegisterInput{Email: email, Name: "N", Password: "pw"})
	require.NoError(t, err)
	return s
}

func (f *fixture) publish(t *testing.T, title, category string, typ domain.ContentType) *domain.Content {
	t.Helper()
	c, err := f.contentSvc.Create(context.Background(), CreateContentInput{
		Title: title, FilePath: "/m/" + title, FileType: typ, Category: category, IsPublished: true,
	})
	require.NoError(t, err)
	return c
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	tok, ok = BearerToken("bearer   xyz ")
	assert.True(t, ok)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Bearer", "Bearer ", "Basic abc", "abc"} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}

func TestAuth_RegisterLoginResolve(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s := f.register(t, "Jo@Example.com")
	assert.Equal(t, TokenTypeBearer, s.TokenType)
	assert.Equal(t, "jo@example.com", s.User.Email)
	assert.Equal(t, domain.RoleClient, s.User.Role)
	assert.True(t, s.User.IsActive)

	_, err := f.auth.Register(ctx, RegisterInput{Email: "jo@example.com", Name: "Again", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.auth.Login(ctx, "jo@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = f.auth.Login(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	login, err := f.auth.Login(ctx, "jo@example.com", "pw")
	require.NoError(t, err)
	u, err := f.resolver.ResolveUser(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, u.ID)
	assert.NoError(t, f.resolver.ResolveActiveUser(u))
}

func TestAuth_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.auth.Register(ctx, RegisterInput{Email: "not-an-email", Name: "N", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.auth.Register(ctx, RegisterInput{Email: "a@b.io", Name: " ", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.auth.Register(ctx, RegisterInput{Email: "a@b.io", Name: "N"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolver_ClientTokenIsNotAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.register(t, "c@x.io")

	u, err := f.resolver.ResolveUser(ctx, s.AccessToken)
	require.NoError(t, err)
	assert.ErrorIs(t, f.resolver.ResolveAdmin(u), domain.ErrForbidden)

	_, err = f.resolver.ResolveAdminClaim(s.AccessToken)
	assert.ErrorIs(t, err, domain.ErrAdminRequired)

	id, err := f.resolver.Resolve(ctx, s.AccessToken)
	require.NoError(t, err)
	assert.IsType(t, domain.UserIdentity{}, id)
	assert.False(t, id.IsAdmin())
}

func TestResolver_AdminToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.auth.AdminLogin("admin", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidAdminLogin)

	s, err := f.auth.AdminLogin("admin", "admin123")
	require.NoError(t, err)
	assert.Nil(t, s.User)

	claim, err := f.resolver.ResolveAdminClaim(s.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claim.Username)

	// 管理员 token 不能当作数据库用户
	_, err = f.resolver.ResolveUser(ctx, s.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	id, err := f.resolver.Resolve(ctx, s.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.AdminClaim{Username: "admin"}, id)
}

func TestResolver_InvalidAndExpired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.register(t, "e@x.io")

	_, err := f.resolver.ResolveUser(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	now := time.Now()
	f.jwt.Now = func() time.Time { return now.Add(31 * time.Minute) }
	_, err = f.resolver.ResolveUser(ctx, s.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	f.jwt.Now = nil

	// 邮箱不存在的合法 token
	tok, err := f.jwt.Issue("ghost@x.io", auth.RoleClient, 0)
	require.NoError(t, err)
	_, err = f.resolver.ResolveUser(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolver_OptionalAndInactive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.resolver.ResolveOptionalUser(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, u)

	_, err = f.resolver.ResolveOptionalUser(ctx, "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	s := f.register(t, "i@x.io")
	_, err = f.admin.SetActive(ctx, s.User.ID, false)
	require.NoError(t, err)

	u, err = f.resolver.ResolveOptionalUser(ctx, s.AccessToken)
	require.NoError(t, err)
	err = f.resolver.ResolveActiveUser(u)
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDedup_LikeOncePerActor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.publish(t, "Pic", "misc", domain.ContentPhoto)
	before := testutil.ToFloat64(interactionsTotal.WithLabelValues("like", "user", "duplicate"))

	_, err := f.dedup.RecordLike(ctx, c.ID, domain.UserActor(1))
	require.NoError(t, err)
	_, err = f.dedup.RecordLike(ctx, c.ID, domain.UserActor(1))
	assert.ErrorIs(t, err, domain.ErrAlreadyLiked)
	_, err = f.dedup.RecordLike(ctx, c.ID, domain.UserActor(2))
	assert.NoError(t, err)

	after := testutil.ToFloat64(interactionsTotal.WithLabelValues("like", "user", "duplicate"))
	assert.Equal(t, before+1, after)
}

func TestDedup_SharedAddressIsOneActor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.publish(t, "Pic", "misc", domain.ContentPhoto)

	// 同一出口地址后的两个访客
	_, err := f.dedup.RecordLike(ctx, c.ID, domain.AnonymousActor("203.0.113.5"))
	require.NoError(t, err)
	_, err = f.dedup.RecordLike(ctx, c.ID, domain.AnonymousActor("203.0.113.5"))
	assert.ErrorIs(t, err, domain.ErrAlreadyLiked)

	_, err = f.dedup.RecordLike(ctx, c.ID, domain.AnonymousActor(""))
	assert.ErrorIs(t, err, domain.ErrUnknownAddress)
}

func TestDedup_Ratings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.publish(t, "Pic", "misc", domain.ContentPhoto)

	for _, s := range []int{0, 6} {
		_, err := f.dedup.RecordRating(ctx, c.ID, domain.UserActor(1), s)
		assert.ErrorIs(t, err, domain.ErrInvalidScore)
	}
	// 分数非法时不查内容
	_, err := f.dedup.RecordRating(ctx, 9999, domain.UserActor(1), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidScore)

	r, err := f.dedup.RecordRating(ctx, c.ID, domain.UserActor(1), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Score)
	_, err = f.dedup.RecordRating(ctx, c.ID, domain.UserActor(1), 3)
	assert.ErrorIs(t, err, domain.ErrAlreadyRated)

	got, err := f.contentSvc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.RatingsCount)
	assert.InDelta(t, 3.0, got.AverageRating, 1e-9)
}

func TestDedup_ContentMustBePublished(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	draft, err := f.contentSvc.Create(ctx, CreateContentInput{Title: "D", FilePath: "/d", FileType: domain.ContentVideo, Category: "misc"})
	require.NoError(t, err)

	_, err = f.dedup.RecordLike(ctx, draft.ID, domain.UserActor(1))
	assert.ErrorIs(t, err, domain.ErrContentNotFound)
	_, err = f.dedup.RecordLike(ctx, 12345, domain.UserActor(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDedup_AnonymousDisabledBySettings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.publish(t, "Pic", "misc", domain.ContentPhoto)
	off := false

	_, err := f.settings.Update(ctx, domain.SettingsPatch{AllowAnonymousRatings: &off})
	require.NoError(t, err)

	_, err = f.dedup.RecordRating(ctx, c.ID, domain.AnonymousActor("10.1.1.1"), 4)
	assert.ErrorIs(t, err, domain.ErrAnonymousDisabled)
	_, err = f.dedup.RecordRating(ctx, c.ID, domain.UserActor(1), 4)
	assert.NoError(t, err)
	_, err = f.dedup.RecordLike(ctx, c.ID, domain.AnonymousActor("10.1.1.1"))
	assert.NoError(t, err)
}

func TestContent_PublicReadsAndCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.publish(t, "Bride", "wedding", domain.ContentPhoto)
	f.publish(t, "Film", "wedding", domain.ContentVideo)
	f.publish(t, "Face", "portrait", domain.ContentPhoto)
	draft, err := f.contentSvc.Create(ctx, CreateContentInput{Title: "Hidden", FilePath: "/h", FileType: domain.ContentPhoto, Category: "events"})
	require.NoError(t, err)

	_, err = f.contentSvc.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrContentNotFound)
	got, err := f.contentSvc.AdminGet(ctx, draft.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	list, err := f.contentSvc.List(ctx, domain.ContentFilter{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	all, err := f.contentSvc.AdminList(ctx, domain.ContentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	cats, err := f.contentSvc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{ID: "all", Name: "All", Count: 3},
		{ID: "portrait", Name: "Portrait", Count: 1},
		{ID: "wedding", Name: "Wedding", Count: 2},
	}, cats)
}

func TestContent_AdminCreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.contentSvc.Create(ctx, CreateContentInput{Title: "X", FilePath: "/x", FileType: "gif", Category: "misc"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.contentSvc.Create(ctx, CreateContentInput{FilePath: "/x", FileType: domain.ContentPhoto, Category: "misc"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	c, err := f.contentSvc.Create(ctx, CreateContentInput{Title: "X", FilePath: "/x", FileType: domain.ContentPhoto, Category: " Misc "})
	require.NoError(t, err)
	assert.Equal(t, "misc", c.Category)

	pub := true
	upd, err := f.contentSvc.Update(ctx, c.ID, domain.ContentPatch{IsPublished: &pub})
	require.NoError(t, err)
	assert.True(t, upd.IsPublished)

	_, err = f.contentSvc.Update(ctx, 9999, domain.ContentPatch{IsPublished: &pub})
	assert.ErrorIs(t, err, domain.ErrContentNotFound)

	require.NoError(t, f.contentSvc.Delete(ctx, c.ID))
	assert.ErrorIs(t, f.contentSvc.Delete(ctx, c.ID), domain.ErrContentNotFound)
}

func TestCollections_OwnershipAndDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.publish(t, "Pic", "misc", domain.ContentPhoto)
	owner := f.register(t, "o@x.io").User.ID
	other := f.register(t, "p@x.io").User.ID

	col, err := f.collections.Create(ctx, owner, "Favs", "")
	require.NoError(t, err)

	_, err = f.collections.Create(ctx, owner, "  ", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := f.collections.AddItem(ctx, owner, col.ID, c.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	_, err = f.collections.AddItem(ctx, owner, col.ID, c.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyInCollection)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.collections.AddItem(ctx, owner, col.ID, 9999)
	assert.ErrorIs(t, err, domain.ErrContentNotFound)

	// 别人的收藏夹一律 not found
	_, err = f.collections.Get(ctx, other, col.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.collections.AddItem(ctx, other, col.ID, c.ID)
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	assert.ErrorIs(t, f.collections.Delete(ctx, other, col.ID), domain.ErrCollectionNotFound)

	got, err = f.collections.RemoveItem(ctx, owner, col.ID, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	_, err = f.collections.RemoveItem(ctx, owner, col.ID, c.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotInCollection)

	list, err := f.collections.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.collections.Delete(ctx, owner, col.ID))
}

func TestAdmin_StatsAndUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.publish(t, "Pic", "misc", domain.ContentPhoto)
	f.publish(t, "Vid", "misc", domain.ContentVideo)
	u := f.register(t, "s@x.io").User
	_, err := f.dedup.RecordLike(ctx, p.ID, domain.UserActor(u.ID))
	require.NoError(t, err)
	_, err = f.dedup.RecordRating(ctx, p.ID, domain.UserActor(u.ID), 4)
	require.NoError(t, err)
	_, err = f.collections.Create(ctx, u.ID, "C", "")
	require.NoError(t, err)

	st, err := f.admin.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{
		TotalContent: 2, TotalPhotos: 1, TotalVideos: 1,
		TotalLikes: 1, TotalRatings: 1, AverageRating: 4,
		TotalUsers: 1, TotalCollections: 1,
	}, st)

	page, err := f.admin.ListUsers(ctx, "s@", 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	_, err = f.admin.SetActive(ctx, 4242, false)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	back, err := f.admin.SetActive(ctx, u.ID, true)
	require.NoError(t, err)
	assert.True(t, back.IsActive)
}

func TestSettings_DefaultsAndUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.settings.Get(ctx)
	require.NoError(t, err)
	assert.True(t, s.AllowAnonymousLikes)

	title := "My Studio"
	s, err = f.settings.Update(ctx, domain.SettingsPatch{SiteTitle: &title})
	require.NoError(t, err)
	assert.Equal(t, "My Studio", s.SiteTitle)
	assert.True(t, s.AllowAnonymousRatings)

	again, err := f.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My Studio", again.SiteTitle)
}

func TestSettings_ServedFromRedisAndInvalidatedOnUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pic := f.publish(t, "Pic", "misc", domain.ContentPhoto)

	mr := miniredis.RunT(t)
	rc := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rc.Close() })
	svc := &SettingsService{Repo: f.settings.Repo, Cache: rc, TTL: time.Minute}
	dedup := &Deduplicator{Content: f.dedup.Content, Interactions: f.dedup.Interactions, Settings: svc}

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, s.AllowAnonymousLikes)
	require.True(t, mr.Exists("photostudio:settings"))

	// 绕过服务直接改库，缓存未失效前仍读到旧值
	direct := domain.DefaultSettings()
	direct.SiteTitle = "Written Behind"
	require.NoError(t, svc.Repo.Save(ctx, direct))
	s, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PhotoStudio", s.SiteTitle)

	off := false
	s, err = svc.Update(ctx, domain.SettingsPatch{AllowAnonymousLikes: &off})
	require.NoError(t, err)
	assert.False(t, s.AllowAnonymousLikes)
	assert.False(t, mr.Exists("photostudio:settings"))

	s, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.False(t, s.AllowAnonymousLikes)
	assert.Equal(t, "Written Behind", s.SiteTitle)

	_, err = dedup.RecordLike(ctx, pic.ID, domain.AnonymousActor("10.2.2.2"))
	assert.ErrorIs(t, err, domain.ErrAnonymousDisabled)
}

func TestNormalizePage(t *testing.T) {
	skip, limit := NormalizePage(-5, 0)
	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultPageLimit, limit)
	_, limit = NormalizePage(0, 500)
	assert.Equal(t, MaxPageLimit, limit)
	_, limit = NormalizePage(0, 7)
	assert.Equal(t, 7, limit)
}
