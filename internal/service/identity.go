package service

import (
	"context"
	"strings"

	"photostudio/internal/core/auth"
	"photostudio/internal/domain"
)

// BearerToken 从 Authorization 头取 token；缺失或格式不对返回 false
func BearerToken(header string) (string, bool) {
	const prefix = "bearer "
	h := strings.TrimSpace(header)
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(h[len(prefix):])
	return tok, tok != ""
}

// Resolver 把 token 解析成身份
type Resolver struct {
	JWT   *auth.JWTer
	Users domain.UserRepository
}

// ResolveUser 只接受用户 token；管理员 token 不对应数据库行
func (r *Resolver) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	c, err := r.JWT.Parse(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if c.Type == auth.TypeAdmin {
		return nil, domain.ErrInvalidToken
	}
	u, err := r.Users.FindByEmail(ctx, c.Subject)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrInvalidToken
	}
	return u, nil
}

func (r *Resolver) ResolveActiveUser(u *domain.User) error {
	if u == nil {
		return domain.ErrInvalidToken
	}
	if !u.IsActive {
		return domain.ErrInactiveAccount
	}
	return nil
}

func (r *Resolver) ResolveAdmin(u *domain.User) error {
	if u == nil || !u.IsAdmin() {
		return domain.ErrAdminRequired
	}
	return nil
}

// ResolveAdminClaim 只看 token 声明，不查库
func (r *Resolver) ResolveAdminClaim(token string) (domain.AdminClaim, error) {
	c, err := r.JWT.Parse(token)
	if err != nil {
		return domain.AdminClaim{}, domain.ErrInvalidToken
	}
	if !c.IsAdminClaim() {
		return domain.AdminClaim{}, domain.ErrAdminRequired
	}
	return domain.AdminClaim{Username: c.Subject}, nil
}

// ResolveOptionalUser 没带 token 返回 nil, nil；带了就必须有效
func (r *Resolver) ResolveOptionalUser(ctx context.Context, token string) (*domain.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}
	return r.ResolveUser(ctx, token)
}

// Resolve 返回 UserIdentity 或 AdminClaim
func (r *Resolver) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	c, err := r.JWT.Parse(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if c.Type == auth.TypeAdmin {
		return domain.AdminClaim{Username: c.Subject}, nil
	}
	u, err := r.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return domain.UserIdentity{User: u}, nil
}
