package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"photostudio/internal/core/auth"
	"photostudio/internal/domain"
	"photostudio/pkg/utils"
)

const TokenTypeBearer = "bearer"

// Session 登录/注册成功的返回
type Session struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user,omitempty"`
}

// AdminCredentials 固定管理员凭证（来自配置）
type AdminCredentials struct {
	Username string
	Password string
}

var validate = validator.New()

type AuthService struct {
	Users domain.UserRepository
	JWT   *auth.JWTer
	Admin AdminCredentials
	Log   *zap.Logger
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

func (s *AuthService) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Register 新用户默认 client + active；邮箱冲突返回 ErrEmailTaken
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, domain.Validation("invalid email")
	}
	if name == "" {
		return nil, domain.Validation("name is required")
	}
	if in.Password == "" {
		return nil, domain.Validation("password is required")
	}

	existing, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleClient,
		IsActive:     true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// 并发注册同一邮箱
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	s.log().Info("user registered", zap.Uint("user_id", u.ID), zap.String("email", u.Email))
	return s.session(u)
}

// Login 邮箱不存在与密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *AuthService) session(u *domain.User) (*Session, error) {
	tok, err := s.JWT.Issue(u.Email, string(u.Role), 0)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: tok, TokenType: TokenTypeBearer, User: u}, nil
}

// AdminLogin 固定凭证，常量时间比较
func (s *AuthService) AdminLogin(username, password string) (*Session, error) {
	if s.Admin.Username == "" || s.Admin.Password == "" {
		return nil, domain.ErrInvalidAdminLogin
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.Admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.Admin.Password)) == 1
	if !userOK || !passOK {
		s.log().Warn("admin login failed", zap.String("username", username))
		return nil, domain.ErrInvalidAdminLogin
	}
	tok, err := s.JWT.IssueAdmin(username)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: tok, TokenType: TokenTypeBearer}, nil
}
